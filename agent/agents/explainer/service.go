// Package explainer turns a fitted model into a plain-language explanation.
package explainer

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

type Config struct {
	// Defaults fill prompt axes the request leaves empty.
	Defaults contractx.PromptConfig
}

type Explainer struct {
	handlers  contractx.HandlerResolver
	assembler contractx.PromptAssembler
	completer contractx.Completer
	defaults  contractx.PromptConfig

	graphRunner compose.Runnable[contractx.ExplainRequest, contractx.ExplanationResult]
}

func New(
	handlers contractx.HandlerResolver,
	assembler contractx.PromptAssembler,
	completer contractx.Completer,
	cfg Config,
) (*Explainer, error) {
	if handlers == nil {
		return nil, errors.New("handler registry is required")
	}
	if assembler == nil {
		return nil, errors.New("prompt assembler is required")
	}
	if completer == nil {
		return nil, errors.New("completer is required")
	}

	e := &Explainer{
		handlers:  handlers,
		assembler: assembler,
		completer: completer,
		defaults:  cfg.Defaults.WithDefaults(),
	}

	graphRunner, err := e.compileExplainGraph(context.Background())
	if err != nil {
		return nil, err
	}
	e.graphRunner = graphRunner

	return e, nil
}

func (e *Explainer) Explain(ctx context.Context, req contractx.ExplainRequest) (contractx.ExplanationResult, error) {
	out, err := e.graphRunner.Invoke(ctx, req)
	if err != nil {
		return contractx.ExplanationResult{}, err
	}

	log.Info().
		Str("model_kind", string(out.ModelType)).
		Str("audience", out.Audience).
		Msg("explanation generated")
	return out, nil
}
