package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// Build returns the declared tools and an executor bound to one fitted model.
func Build(model any, cfg Config) ([]*schema.ToolInfo, Executor) {
	return Infos(), NewExecutor(model, cfg)
}

func NewExecutor(model any, cfg Config) Executor {
	fallback := DefaultExecutor()
	plotter := newResidualPlotter(cfg)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolPlotResidualsVsFitted:
			return plotter.execute(ctx, tool, model)
		default:
			return fallback(ctx, tool, args)
		}
	}
}

// DefaultExecutor reports any tool as unknown.
func DefaultExecutor() Executor {
	return func(ctx context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: NotFoundMessage(tool),
		}, nil
	}
}

func NotFoundMessage(tool string) string {
	return fmt.Sprintf("Error: Tool '%s' not found.", tool)
}

func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name:        ToolPlotResidualsVsFitted,
			Desc:        "Generates a scatter plot of model residuals versus fitted values to check for non-linearity and heteroscedasticity.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
	}
}

// Has reports whether tool is declared in the catalog.
func Has(tool string) bool {
	_, ok := Lookup(tool)
	return ok
}

func Lookup(tool string) (*schema.ToolInfo, bool) {
	for _, info := range Infos() {
		if info.Name == tool {
			return info, true
		}
	}
	return nil, false
}
