package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
	plotx "github.com/tanpawarit/statlingua/agent/plot"
)

const ToolPlotResidualsVsFitted = "plot_residuals_vs_fitted"

// ResidualModel is a fitted model that exposes its residuals and fitted values.
type ResidualModel interface {
	Residuals() []float64
	FittedValues() []float64
}

type Config struct {
	PlotDir  string
	Renderer plotx.Renderer
	// NewID names plot artifacts. Defaults to a random UUID.
	NewID func() string
}

type PlotOutput struct {
	Path  string `json:"path"`
	Image []byte `json:"-"`
}

type residualPlotter struct {
	dir      string
	renderer plotx.Renderer
	newID    func() string
}

func newResidualPlotter(cfg Config) *residualPlotter {
	p := &residualPlotter{
		dir:      strings.TrimSpace(cfg.PlotDir),
		renderer: cfg.Renderer,
		newID:    cfg.NewID,
	}
	if p.dir == "" {
		p.dir = "."
	}
	if p.renderer == nil {
		p.renderer = plotx.NewGGRenderer()
	}
	if p.newID == nil {
		p.newID = uuid.NewString
	}
	return p
}

func (p *residualPlotter) execute(ctx context.Context, tool string, model any) (contractx.ToolResult, error) {
	out, err := p.render(ctx, model)
	if err != nil {
		log.Warn().Err(err).Str("tool", tool).Msg("tool execution failed")
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("Error executing tool '%s': %v", tool, err),
		}, nil
	}

	log.Debug().Str("tool", tool).Str("plot", out.Path).Msg("plot rendered")
	return contractx.ToolResult{Tool: tool, Result: out}, nil
}

func (p *residualPlotter) render(ctx context.Context, model any) (PlotOutput, error) {
	if err := ctx.Err(); err != nil {
		return PlotOutput{}, err
	}

	rm, ok := model.(ResidualModel)
	if !ok || isNilModel(model) {
		return PlotOutput{}, fmt.Errorf("%w: model %T does not expose residuals and fitted values", contractx.ErrToolFailed, model)
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return PlotOutput{}, fmt.Errorf("%w: create plot dir: %w", contractx.ErrToolFailed, err)
	}

	path := filepath.Join(p.dir, fmt.Sprintf("residual_plot_%s.png", p.newID()))
	if err := p.renderer.ResidualsVsFitted(path, rm.FittedValues(), rm.Residuals()); err != nil {
		return PlotOutput{}, fmt.Errorf("%w: render plot: %w", contractx.ErrToolFailed, err)
	}

	img, err := os.ReadFile(path)
	if err != nil {
		return PlotOutput{}, fmt.Errorf("%w: read plot: %w", contractx.ErrToolFailed, err)
	}

	return PlotOutput{Path: path, Image: img}, nil
}

func isNilModel(model any) bool {
	rv := reflect.ValueOf(model)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
