package explainer

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
	nodex "github.com/tanpawarit/statlingua/agent/nodes"
)

func (e *Explainer) compileExplainGraph(
	ctx context.Context,
) (compose.Runnable[contractx.ExplainRequest, contractx.ExplanationResult], error) {
	graph := compose.NewGraph[contractx.ExplainRequest, contractx.ExplanationResult]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in contractx.ExplainRequest) (*nodex.ExplainState, error) {
			return nodex.ValidateExplainRequest(in, e.defaults)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("summarize_model",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.ExplainState) (*nodex.ExplainState, error) {
			return nodex.SummarizeForExplain(in, e.handlers)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node summarize_model: %w", err)
	}

	if err := graph.AddLambdaNode("assemble_prompt",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.ExplainState) (*nodex.ExplainState, error) {
			return nodex.AssembleExplainPrompt(in, e.assembler)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node assemble_prompt: %w", err)
	}

	if err := graph.AddLambdaNode("invoke_model",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.ExplainState) (*nodex.ExplainState, error) {
			return nodex.InvokeExplain(ctx, in, e.completer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node invoke_model: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.ExplainState) (contractx.ExplanationResult, error) {
			return nodex.FinalizeExplanation(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "summarize_model"},
		{"summarize_model", "assemble_prompt"},
		{"assemble_prompt", "invoke_model"},
		{"invoke_model", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("explainer.explain"))
	if err != nil {
		return nil, fmt.Errorf("compile explainer graph: %w", err)
	}
	return runner, nil
}
