package agentloop

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

const interpretRequest = "Please analyze the plot that was just generated and interpret it for me."

// Interpret reports the tool outcome and asks for the final answer. The
// rendered plot goes to the vision model; a failed tool goes back to the
// diagnosis model with the error text.
func Interpret(ctx context.Context, in *State, completer contractx.Completer) (*State, error) {
	if in == nil || in.Call == nil {
		return nil, fmt.Errorf("%w: no tool result to interpret", contractx.ErrValidation)
	}

	name := in.Call.Function.Name
	req := contractx.CompletionRequest{
		Role:   contractx.RoleDiagnostician,
		Model:  in.Req.Model,
		Params: in.Req.Params.Normalize(),
	}

	if in.toolFailed() {
		log.Warn().Str("tool", name).Str("error", in.Result.Error).Msg("interpreting failed tool call")
		in.Messages = append(in.Messages,
			toolMessage(in.Call.ID, in.Result.Error),
			schema.UserMessage(fmt.Sprintf(
				"The tool '%s' could not produce a plot: %s\nPlease answer my original question without it.",
				name, in.Result.Error,
			)),
		)
	} else {
		in.Messages = append(in.Messages,
			toolMessage(in.Call.ID, fmt.Sprintf(
				"Tool '%s' executed successfully. The resulting plot has been generated at '%s'. Now, I will analyze it.",
				name, in.Plot,
			)),
			imageMessage(in.Image),
		)
		req.Role = contractx.RoleVision
		req.Model = in.Req.VisionModel
		req.FallbackModel = in.Req.Model
	}
	req.Messages = in.Messages

	log.Debug().Str("tool", name).Str("plot", in.Plot).Msg("sending tool result for interpretation")

	reply, err := completer.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	in.Reply = reply
	return in, nil
}

func toolMessage(callID, content string) *schema.Message {
	return &schema.Message{
		Role:       schema.Tool,
		Content:    content,
		ToolCallID: callID,
	}
}

func imageMessage(png []byte) *schema.Message {
	return &schema.Message{
		Role: schema.User,
		MultiContent: []schema.ChatMessagePart{
			{Type: schema.ChatMessagePartTypeText, Text: interpretRequest},
			{
				Type: schema.ChatMessagePartTypeImageURL,
				ImageURL: &schema.ChatMessageImageURL{
					URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
				},
			},
		},
	}
}
