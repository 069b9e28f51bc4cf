package nodes

import (
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

func SummarizeForExplain(in *ExplainState, handlers contractx.HandlerResolver) (*ExplainState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	kind, summary, err := summarize(in.Req.ModelObject, handlers)
	if err != nil {
		return nil, err
	}
	in.Kind = kind
	in.Summary = summary
	return in, nil
}

func SummarizeForDiagnosis(in *DiagnoseState, handlers contractx.HandlerResolver) (*DiagnoseState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	kind, summary, err := summarize(in.Req.ModelObject, handlers)
	if err != nil {
		return nil, err
	}
	in.Kind = kind
	in.Summary = summary
	return in, nil
}

func summarize(obj any, handlers contractx.HandlerResolver) (contractx.ModelKind, string, error) {
	kind, summary, err := handlers.Summarize(obj)
	if err != nil {
		return "", "", err
	}

	log.Debug().
		Str("model_kind", string(kind)).
		Str("model_type", fmt.Sprintf("%T", obj)).
		Int("summary_len", len(summary)).
		Msg("model summarized")
	return kind, summary, nil
}
