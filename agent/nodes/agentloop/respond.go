package agentloop

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
	toolx "github.com/tanpawarit/statlingua/agent/tool"
)

// Respond returns the model's direct answer or its interpretation of the tool result.
func Respond(in *State) (contractx.AgentResult, error) {
	if in == nil {
		return contractx.AgentResult{}, fmt.Errorf("%w: agent state is nil", contractx.ErrValidation)
	}

	reply := in.Reply
	if reply == nil {
		reply = in.Decision
	}
	if reply == nil {
		return contractx.AgentResult{}, fmt.Errorf("%w: agent reply is missing", contractx.ErrSchemaViolation)
	}

	out := contractx.AgentResult{Text: strings.TrimSpace(reply.Content)}
	if in.Call != nil && !in.toolFailed() {
		out.Plot = in.Plot
	}
	return out, nil
}

func RejectTool(in *State) (contractx.AgentResult, error) {
	if in == nil || in.Call == nil {
		return contractx.AgentResult{}, fmt.Errorf("%w: no tool call to reject", contractx.ErrValidation)
	}

	name := in.Call.Function.Name
	log.Warn().Str("tool", name).Msg("agent requested an unknown tool")
	return contractx.AgentResult{Text: toolx.NotFoundMessage(name)}, nil
}
