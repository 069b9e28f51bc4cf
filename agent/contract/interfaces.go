package contract

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Handler extracts the model kind and a textual summary from a fitted model object.
type Handler func(model any) (ModelKind, string, error)

type HandlerResolver interface {
	Resolve(model any) Handler
	Summarize(model any) (ModelKind, string, error)
}

// FragmentReader reads prompt fragments. Missing fragments read as "".
type FragmentReader interface {
	Read(parts ...string) string
}

// Completer is the LLM request/response boundary.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*schema.Message, error)
}

type PromptAssembler interface {
	Assemble(kind ModelKind, cfg PromptConfig, summary, context string) AssembledPrompt
}
