package agentloop

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
	toolx "github.com/tanpawarit/statlingua/agent/tool"
)

// ExecuteTool runs the first requested tool. Failures are recorded on the
// state as error text rather than returned.
func ExecuteTool(ctx context.Context, in *State, exec toolx.Executor) (*State, error) {
	if in == nil || in.Call == nil {
		return nil, fmt.Errorf("%w: no tool call to execute", contractx.ErrValidation)
	}

	call := *in.Call
	in.Messages = append(in.Messages, &schema.Message{
		Role:      schema.Assistant,
		Content:   in.Decision.Content,
		ToolCalls: []schema.ToolCall{call},
	})

	name := call.Function.Name
	result, err := exec(ctx, name, parseArgs(call.Function.Arguments))
	if err != nil {
		result = contractx.ToolResult{
			Tool:  name,
			Error: fmt.Sprintf("Error executing tool '%s': %v", name, err),
		}
	}
	in.Result = result

	if out, ok := result.Result.(toolx.PlotOutput); ok && !in.toolFailed() {
		in.Plot = out.Path
		in.Image = out.Image
	}
	return in, nil
}

func parseArgs(raw string) map[string]any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil
	}
	return args
}
