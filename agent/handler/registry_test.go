package handler

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/statlingua/agent/contract"
	"github.com/tanpawarit/statlingua/pkg/statmodel"
)

type summaryOnly struct{}

func (summaryOnly) Summary() string { return "--- MOCK SUMMARY ---" }

type summaryWithError struct{ err error }

func (s summaryWithError) Summary() (string, error) { return "ignored", s.err }

type stringerModel struct{}

func (stringerModel) String() string { return "stringer model" }

type plainModel struct {
	Coef float64
}

type customOLS struct {
	*statmodel.OLSResults
}

type panicModel struct{ inner *statmodel.OLSResults }

func (p *panicModel) Summary() string { return p.inner.Summary() }

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	r, err := NewRegistry(StatModels)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return r
}

func TestResolveRegisteredKinds(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)

	tests := []struct {
		name string
		obj  any
		want contractx.ModelKind
	}{
		{"ols", &statmodel.OLSResults{DepVar: "dist"}, contractx.KindLM},
		{"glm", &statmodel.GLMResults{DepVar: "count", Family: statmodel.Poisson{}}, contractx.KindGLM},
		{"unregistered", summaryOnly{}, contractx.KindDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, _, err := r.Summarize(tt.obj)
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if kind != tt.want {
				t.Fatalf("kind = %s, want %s", kind, tt.want)
			}
		})
	}
}

func TestResolveMatchesExactTypeOnly(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	obj := customOLS{OLSResults: &statmodel.OLSResults{DepVar: "dist"}}

	kind, summary, err := r.Summarize(obj)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if kind != contractx.KindDefault {
		t.Fatalf("embedded ols kind = %s, want default", kind)
	}
	if !strings.Contains(summary, "OLS Regression Results") {
		t.Fatalf("default handler should use the promoted Summary method, got:\n%s", summary)
	}
}

func TestResolveValueOfPointerRegisteredTypeFallsBack(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	kind, _, err := r.Summarize(statmodel.OLSResults{DepVar: "dist"})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if kind != contractx.KindDefault {
		t.Fatalf("kind = %s, want default", kind)
	}
}

func TestGLMHandlerPrependsFamily(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	_, summary, err := r.Summarize(&statmodel.GLMResults{DepVar: "count", Family: statmodel.Poisson{}})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !strings.HasPrefix(summary, "Generalized Linear Model (GLM) with Poisson family\n\n") {
		t.Fatalf("unexpected summary:\n%s", summary)
	}
}

func TestGLMHandlerMissingFamily(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	_, _, err := r.Summarize(&statmodel.GLMResults{DepVar: "count"})
	if !errors.Is(err, contractx.ErrHandler) {
		t.Fatalf("expected ErrHandler, got %v", err)
	}
}

func TestNilRegisteredPointerFails(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	var m *statmodel.OLSResults
	_, _, err := r.Summarize(m)
	if !errors.Is(err, contractx.ErrHandler) {
		t.Fatalf("expected ErrHandler, got %v", err)
	}
}

func TestSummarizeRecoversHandlerPanic(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t)
	_, _, err := r.Summarize(&panicModel{})
	if !errors.Is(err, contractx.ErrHandler) {
		t.Fatalf("expected ErrHandler, got %v", err)
	}
}

func TestDefaultHandler(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	tests := []struct {
		name    string
		obj     any
		want    string
		wantErr error
	}{
		{"summary method", summaryOnly{}, "--- MOCK SUMMARY ---", nil},
		{"summary with nil error", summaryWithError{}, "ignored", nil},
		{"summary error propagates", summaryWithError{err: boom}, "", boom},
		{"stringer", stringerModel{}, "stringer model", nil},
		{"plain struct", plainModel{Coef: 1.5}, "{1.5}", nil},
		{"nil", nil, "<nil>", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, got, err := DefaultHandler(tt.obj)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != contractx.KindDefault {
				t.Fatalf("kind = %s", kind)
			}
			if got != tt.want {
				t.Fatalf("summary = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	fn := func(summaryOnly) (string, error) { return "", nil }
	if err := Register(b, "custom", fn); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	err := Register(b, "custom", fn)
	if !errors.Is(err, contractx.ErrDuplicateHandler) {
		t.Fatalf("expected ErrDuplicateHandler, got %v", err)
	}
}

func TestNewRegistrySkipsUnavailableProvider(t *testing.T) {
	t.Parallel()

	missing := Provider{
		Name: "survival",
		Register: func(*Builder) error {
			return fmt.Errorf("%w: survival models not linked", contractx.ErrUnavailable)
		},
	}

	r, err := NewRegistry(missing, StatModels)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}

func TestNewRegistryFailsOnProviderError(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(StatModels, StatModels)
	if !errors.Is(err, contractx.ErrDuplicateHandler) {
		t.Fatalf("expected ErrDuplicateHandler, got %v", err)
	}
}

func TestRegistryIsIsolatedFromBuilder(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	r := b.Build()
	if err := Register(b, "late", func(summaryOnly) (string, error) { return "late", nil }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if kind, _, _ := r.Summarize(summaryOnly{}); kind != contractx.KindDefault {
		t.Fatalf("registry changed after Build(): kind = %s", kind)
	}
}
