package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

func InvokeExplain(ctx context.Context, in *ExplainState, completer contractx.Completer) (*ExplainState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	log.Debug().
		Str("model_kind", string(in.Kind)).
		Str("audience", in.Config.Audience).
		Str("verbosity", in.Config.Verbosity).
		Str("style", in.Config.Style).
		Msg("requesting explanation")

	reply, err := completer.Complete(ctx, contractx.CompletionRequest{
		Role:  contractx.RoleExplainer,
		Model: in.Req.Model,
		Messages: []*schema.Message{
			schema.SystemMessage(in.Prompt.System),
			schema.UserMessage(in.Prompt.User),
		},
		Params: in.Req.Params.Normalize(),
	})
	if err != nil {
		return nil, err
	}
	in.Reply = reply
	return in, nil
}

func InvokeDiagnosis(ctx context.Context, in *DiagnoseState, completer contractx.Completer) (*DiagnoseState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply, err := completer.Complete(ctx, contractx.CompletionRequest{
		Role:     contractx.RoleDiagnostician,
		Model:    in.Req.Model,
		Messages: in.Messages,
		Params:   in.Req.Params.Normalize(),
	})
	if err != nil {
		return nil, err
	}
	in.Reply = reply
	return in, nil
}
