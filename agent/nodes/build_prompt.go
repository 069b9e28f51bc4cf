package nodes

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

const DiagnosisSystemPrompt = "You are an expert statistical consultant. Your goal is to help a user " +
	"diagnose the assumptions of their statistical model. Based on the user's question and the model " +
	"summary, provide clear, actionable advice on what diagnostic checks they should perform. " +
	"Recommend specific plots (e.g., 'a residuals vs. fitted plot to check for non-linearity') or " +
	"statistical tests (e.g., 'calculate Variance Inflation Factors (VIFs) to check for multicollinearity')."

func AssembleExplainPrompt(in *ExplainState, assembler contractx.PromptAssembler) (*ExplainState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	in.Prompt = assembler.Assemble(in.Kind, in.Config, in.Summary, in.Req.Context)
	return in, nil
}

func BuildDiagnosisMessages(in *DiagnoseState) (*DiagnoseState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	in.Messages = []*schema.Message{
		schema.SystemMessage(DiagnosisSystemPrompt),
		schema.UserMessage(DiagnosisUserPrompt(in.Req.Prompt, in.Kind, in.Summary)),
	}
	return in, nil
}

func DiagnosisUserPrompt(question string, kind contractx.ModelKind, summary string) string {
	return fmt.Sprintf("My Question: \"%s\"\n\nHere is the summary of my %s model:\n\n---\n%s", question, kind, summary)
}
