package tool

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tanpawarit/statlingua/pkg/statmodel"
)

type fakeRenderer struct {
	err     error
	fitted  []float64
	resid   []float64
	written string
}

func (f *fakeRenderer) ResidualsVsFitted(path string, fitted, residuals []float64) error {
	f.fitted = fitted
	f.resid = residuals
	if f.err != nil {
		return f.err
	}
	f.written = path
	return os.WriteFile(path, []byte("\x89PNG fake"), 0o644)
}

func fixedID() string { return "fixed" }

func testModel() *statmodel.OLSResults {
	return &statmodel.OLSResults{
		DepVar: "y",
		NObs:   3,
		Resid:  []float64{0.1, -0.2, 0.1},
		Fitted: []float64{1, 2, 3},
	}
}

func TestBuildDeclaresPlotTool(t *testing.T) {
	t.Parallel()

	infos, executor := Build(testModel(), Config{})
	if len(infos) != 1 {
		t.Fatalf("expected 1 tool info, got %d", len(infos))
	}
	if infos[0].Name != ToolPlotResidualsVsFitted {
		t.Fatalf("unexpected tool: %s", infos[0].Name)
	}
	if !strings.Contains(infos[0].Desc, "heteroscedasticity") {
		t.Fatalf("unexpected description: %s", infos[0].Desc)
	}
	if executor == nil {
		t.Fatal("executor must not be nil")
	}
	if !Has(ToolPlotResidualsVsFitted) || Has("calculate_vif") {
		t.Fatal("Has() disagrees with catalog")
	}
}

func TestDefaultExecutorNotFoundMessage(t *testing.T) {
	t.Parallel()

	out, err := DefaultExecutor()(context.Background(), "calculate_vif", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error != "Error: Tool 'calculate_vif' not found." {
		t.Fatalf("unexpected message: %q", out.Error)
	}
}

func TestExecutorRendersPlot(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "plots")
	renderer := &fakeRenderer{}
	executor := NewExecutor(testModel(), Config{PlotDir: dir, Renderer: renderer, NewID: fixedID})

	out, err := executor(context.Background(), ToolPlotResidualsVsFitted, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error != "" {
		t.Fatalf("unexpected tool error: %s", out.Error)
	}

	res, ok := out.Result.(PlotOutput)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if want := filepath.Join(dir, "residual_plot_fixed.png"); res.Path != want {
		t.Fatalf("path = %s, want %s", res.Path, want)
	}
	if !bytes.HasPrefix(res.Image, []byte("\x89PNG")) {
		t.Fatalf("unexpected image bytes: %q", res.Image)
	}
	if len(renderer.fitted) != 3 || renderer.fitted[2] != 3 || renderer.resid[1] != -0.2 {
		t.Fatalf("renderer got wrong series: %v %v", renderer.fitted, renderer.resid)
	}
}

func TestExecutorUniquePaths(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(testModel(), Config{PlotDir: t.TempDir(), Renderer: &fakeRenderer{}})

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		out, _ := executor(context.Background(), ToolPlotResidualsVsFitted, nil)
		path := out.Result.(PlotOutput).Path
		if seen[path] {
			t.Fatalf("duplicate plot path %s", path)
		}
		seen[path] = true
	}
}

func TestExecutorFailuresBecomeErrorText(t *testing.T) {
	t.Parallel()

	var nilModel *statmodel.OLSResults

	tests := []struct {
		name     string
		model    any
		renderer *fakeRenderer
		want     string
	}{
		{name: "no residuals", model: struct{}{}, renderer: &fakeRenderer{}, want: "does not expose residuals"},
		{name: "nil model", model: nilModel, renderer: &fakeRenderer{}, want: "does not expose residuals"},
		{name: "render error", model: testModel(), renderer: &fakeRenderer{err: errors.New("disk full")}, want: "disk full"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			executor := NewExecutor(tt.model, Config{PlotDir: t.TempDir(), Renderer: tt.renderer, NewID: fixedID})
			out, err := executor(context.Background(), ToolPlotResidualsVsFitted, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Result != nil {
				t.Fatalf("expected no result, got %#v", out.Result)
			}
			if !strings.Contains(out.Error, tt.want) {
				t.Fatalf("error %q does not mention %q", out.Error, tt.want)
			}
			if !strings.HasPrefix(out.Error, "Error executing tool 'plot_residuals_vs_fitted'") {
				t.Fatalf("unexpected error prefix: %q", out.Error)
			}
		})
	}
}
