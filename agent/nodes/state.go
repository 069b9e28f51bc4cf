package nodes

import (
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

// ExplainState flows through the explanation graph.
type ExplainState struct {
	Req    contractx.ExplainRequest
	Config contractx.PromptConfig

	Kind    contractx.ModelKind
	Summary string
	Prompt  contractx.AssembledPrompt

	Reply *schema.Message
}

// DiagnoseState flows through the diagnosis graph.
type DiagnoseState struct {
	Req contractx.DiagnoseRequest

	Kind     contractx.ModelKind
	Summary  string
	Messages []*schema.Message

	Reply *schema.Message
}
