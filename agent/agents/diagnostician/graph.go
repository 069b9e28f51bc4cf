package diagnostician

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
	nodex "github.com/tanpawarit/statlingua/agent/nodes"
	loopx "github.com/tanpawarit/statlingua/agent/nodes/agentloop"
	toolx "github.com/tanpawarit/statlingua/agent/tool"
)

func (d *Diagnostician) compileDiagnoseGraph(
	ctx context.Context,
) (compose.Runnable[contractx.DiagnoseRequest, contractx.DiagnosisResult], error) {
	graph := compose.NewGraph[contractx.DiagnoseRequest, contractx.DiagnosisResult]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in contractx.DiagnoseRequest) (*nodex.DiagnoseState, error) {
			return nodex.ValidateDiagnoseRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("summarize_model",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.DiagnoseState) (*nodex.DiagnoseState, error) {
			return nodex.SummarizeForDiagnosis(in, d.handlers)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node summarize_model: %w", err)
	}

	if err := graph.AddLambdaNode("build_messages",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.DiagnoseState) (*nodex.DiagnoseState, error) {
			return nodex.BuildDiagnosisMessages(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node build_messages: %w", err)
	}

	if err := graph.AddLambdaNode("invoke_model",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.DiagnoseState) (*nodex.DiagnoseState, error) {
			return nodex.InvokeDiagnosis(ctx, in, d.completer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node invoke_model: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.DiagnoseState) (contractx.DiagnosisResult, error) {
			return nodex.FinalizeDiagnosis(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "summarize_model"},
		{"summarize_model", "build_messages"},
		{"build_messages", "invoke_model"},
		{"invoke_model", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("diagnostician.diagnose"))
	if err != nil {
		return nil, fmt.Errorf("compile diagnose graph: %w", err)
	}
	return runner, nil
}

func (d *Diagnostician) compileAgentGraph(
	ctx context.Context,
) (compose.Runnable[contractx.DiagnoseRequest, contractx.AgentResult], error) {
	graph := compose.NewGraph[contractx.DiagnoseRequest, contractx.AgentResult]()

	if err := graph.AddLambdaNode("prepare",
		compose.InvokableLambda(func(ctx context.Context, in contractx.DiagnoseRequest) (*loopx.State, error) {
			return loopx.Prepare(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node prepare: %w", err)
	}

	if err := graph.AddLambdaNode(loopx.NodeDecide,
		compose.InvokableLambda(func(ctx context.Context, in *loopx.State) (*loopx.State, error) {
			return loopx.Decide(ctx, in, d.completer, toolx.Infos())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", loopx.NodeDecide, err)
	}

	if err := graph.AddLambdaNode(loopx.NodeExecuteTool,
		compose.InvokableLambda(func(ctx context.Context, in *loopx.State) (*loopx.State, error) {
			return loopx.ExecuteTool(ctx, in, toolx.NewExecutor(in.Req.ModelObject, d.toolCfg))
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", loopx.NodeExecuteTool, err)
	}

	if err := graph.AddLambdaNode(loopx.NodeRejectTool,
		compose.InvokableLambda(func(ctx context.Context, in *loopx.State) (contractx.AgentResult, error) {
			return loopx.RejectTool(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", loopx.NodeRejectTool, err)
	}

	if err := graph.AddLambdaNode(loopx.NodeInterpret,
		compose.InvokableLambda(func(ctx context.Context, in *loopx.State) (*loopx.State, error) {
			return loopx.Interpret(ctx, in, d.completer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", loopx.NodeInterpret, err)
	}

	if err := graph.AddLambdaNode(loopx.NodeRespond,
		compose.InvokableLambda(func(ctx context.Context, in *loopx.State) (contractx.AgentResult, error) {
			return loopx.Respond(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", loopx.NodeRespond, err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *loopx.State) (string, error) {
			return loopx.Route(in, toolx.Has)
		},
		map[string]bool{
			loopx.NodeRespond:     true,
			loopx.NodeRejectTool:  true,
			loopx.NodeExecuteTool: true,
		},
	)
	if err := graph.AddBranch(loopx.NodeDecide, branch); err != nil {
		return nil, fmt.Errorf("add agent branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, "prepare"},
		{"prepare", loopx.NodeDecide},
		{loopx.NodeExecuteTool, loopx.NodeInterpret},
		{loopx.NodeInterpret, loopx.NodeRespond},
		{loopx.NodeRespond, compose.END},
		{loopx.NodeRejectTool, compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("diagnostician.agent"))
	if err != nil {
		return nil, fmt.Errorf("compile agent graph: %w", err)
	}
	return runner, nil
}
