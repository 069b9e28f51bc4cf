package agentloop

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

func Prepare(in contractx.DiagnoseRequest) (*State, error) {
	if in.ModelObject == nil {
		return nil, fmt.Errorf("%w: model object is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, fmt.Errorf("%w: diagnosis question is required", contractx.ErrValidation)
	}

	return &State{
		Req: in,
		Messages: []*schema.Message{
			schema.SystemMessage(AgentSystemPrompt),
			schema.UserMessage(in.Prompt),
		},
	}, nil
}

// Decide asks the model whether one of tools answers the question.
func Decide(ctx context.Context, in *State, completer contractx.Completer, tools []*schema.ToolInfo) (*State, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: agent state is nil", contractx.ErrValidation)
	}

	msg, err := completer.Complete(ctx, contractx.CompletionRequest{
		Role:     contractx.RoleDiagnostician,
		Model:    in.Req.Model,
		Messages: in.Messages,
		Tools:    tools,
		Params:   in.Req.Params.Normalize(),
	})
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: empty agent decision", contractx.ErrSchemaViolation)
	}

	in.Decision = msg
	if len(msg.ToolCalls) > 0 {
		call := msg.ToolCalls[0]
		in.Call = &call
		log.Info().
			Str("tool", call.Function.Name).
			Int("tool_calls", len(msg.ToolCalls)).
			Msg("agent decided to call a tool")
	} else {
		log.Info().Msg("agent answered without a tool")
	}
	return in, nil
}

// Route picks the next step after Decide.
func Route(in *State, known func(string) bool) (string, error) {
	if in == nil {
		return "", fmt.Errorf("%w: agent state is nil", contractx.ErrValidation)
	}
	switch {
	case in.Call == nil:
		return NodeRespond, nil
	case !known(in.Call.Function.Name):
		return NodeRejectTool, nil
	default:
		return NodeExecuteTool, nil
	}
}
