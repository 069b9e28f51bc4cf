package nodes

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

// ValidateExplainRequest resolves the prompt axes: request values first, then
// defaults, then the built-in novice/moderate/markdown.
func ValidateExplainRequest(in contractx.ExplainRequest, defaults contractx.PromptConfig) (*ExplainState, error) {
	if in.ModelObject == nil {
		return nil, fmt.Errorf("%w: model object is required", contractx.ErrValidation)
	}

	cfg := contractx.PromptConfig{
		Audience:  pick(in.Audience, defaults.Audience),
		Verbosity: pick(in.Verbosity, defaults.Verbosity),
		Style:     pick(in.Style, defaults.Style),
	}.WithDefaults()

	return &ExplainState{
		Req:    in,
		Config: cfg,
	}, nil
}

func ValidateDiagnoseRequest(in contractx.DiagnoseRequest) (*DiagnoseState, error) {
	if in.ModelObject == nil {
		return nil, fmt.Errorf("%w: model object is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, fmt.Errorf("%w: diagnosis question is required", contractx.ErrValidation)
	}
	return &DiagnoseState{Req: in}, nil
}

func pick(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
