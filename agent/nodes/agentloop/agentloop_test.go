package agentloop

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

func known(name string) bool { return name == "plot_residuals_vs_fitted" }

func TestRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call *schema.ToolCall
		want string
	}{
		{name: "no call", want: NodeRespond},
		{name: "unknown tool", call: &schema.ToolCall{Function: schema.FunctionCall{Name: "calculate_vif"}}, want: NodeRejectTool},
		{name: "known tool", call: &schema.ToolCall{Function: schema.FunctionCall{Name: "plot_residuals_vs_fitted"}}, want: NodeExecuteTool},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Route(&State{Call: tt.call}, known)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Route() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPrepareMessages(t *testing.T) {
	t.Parallel()

	st, err := Prepare(contractx.DiagnoseRequest{ModelObject: 1, Prompt: "Plot residuals"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.Messages) != 2 || st.Messages[0].Content != AgentSystemPrompt || st.Messages[1].Content != "Plot residuals" {
		t.Fatalf("unexpected messages: %#v", st.Messages)
	}

	if _, err := Prepare(contractx.DiagnoseRequest{ModelObject: 1}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestExecuteToolConvertsExecutorError(t *testing.T) {
	t.Parallel()

	call := schema.ToolCall{ID: "c1", Function: schema.FunctionCall{Name: "plot_residuals_vs_fitted", Arguments: "not json"}}
	st := &State{
		Decision: schema.AssistantMessage("", []schema.ToolCall{call}),
		Call:     &call,
	}

	var gotArgs map[string]any
	exec := func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		gotArgs = args
		return contractx.ToolResult{}, errors.New("boom")
	}

	out, err := ExecuteTool(context.Background(), st, exec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArgs != nil {
		t.Fatalf("invalid arguments should parse to nil, got %#v", gotArgs)
	}
	if out.Result.Error != "Error executing tool 'plot_residuals_vs_fitted': boom" {
		t.Fatalf("unexpected error text: %q", out.Result.Error)
	}
	if out.Plot != "" {
		t.Fatalf("unexpected plot: %q", out.Plot)
	}

	res, err := Respond(&State{Call: &call, Result: out.Result, Reply: schema.AssistantMessage("fallback", nil), Plot: "x.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Plot != "" || res.Text != "fallback" {
		t.Fatalf("unexpected result: %+v", res)
	}
}
