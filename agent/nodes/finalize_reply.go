package nodes

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

func FinalizeExplanation(in *ExplainState) (contractx.ExplanationResult, error) {
	if in == nil || in.Reply == nil {
		return contractx.ExplanationResult{}, fmt.Errorf("%w: explanation reply is missing", contractx.ErrSchemaViolation)
	}

	return contractx.ExplanationResult{
		Text:      strings.TrimSpace(in.Reply.Content),
		ModelType: in.Kind,
		Audience:  in.Config.Audience,
		Verbosity: in.Config.Verbosity,
		Style:     in.Config.Style,
	}, nil
}

func FinalizeDiagnosis(in *DiagnoseState) (contractx.DiagnosisResult, error) {
	if in == nil || in.Reply == nil {
		return contractx.DiagnosisResult{}, fmt.Errorf("%w: diagnosis reply is missing", contractx.ErrSchemaViolation)
	}
	return contractx.DiagnosisResult{Text: strings.TrimSpace(in.Reply.Content)}, nil
}
