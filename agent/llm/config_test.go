package llm

import (
	"testing"

	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

func TestModelForPrecedence(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Model:         "default-model",
		ExplainModel:  "explain-model",
		DiagnoseModel: " ",
	}

	tests := []struct {
		name      string
		role      contractx.AgentRole
		requested string
		fallback  string
		want      string
	}{
		{name: "requested wins", role: contractx.RoleExplainer, requested: "req-model", fallback: "fb", want: "req-model"},
		{name: "role override", role: contractx.RoleExplainer, fallback: "fb", want: "explain-model"},
		{name: "blank override falls back", role: contractx.RoleDiagnostician, want: "default-model"},
		{name: "fallback before default", role: contractx.RoleVision, fallback: "fb", want: "fb"},
		{name: "unset vision", role: contractx.RoleVision, want: "default-model"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cfg.ModelFor(tt.role, tt.requested, tt.fallback); got != tt.want {
				t.Fatalf("ModelFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenRouterForTemperature(t *testing.T) {
	t.Parallel()

	cfg := Config{
		APIKey:              "k",
		Model:               "m",
		Temperature:         0.2,
		ExplainTemperature:  0.5,
		DiagnoseTemperature: -1,
		VisionTemperature:   -1,
	}

	if got := *cfg.OpenRouterFor(contractx.RoleExplainer, "", "").Temperature; got != 0.5 {
		t.Fatalf("explainer temperature = %v", got)
	}
	if got := *cfg.OpenRouterFor(contractx.RoleDiagnostician, "", "").Temperature; got != 0.2 {
		t.Fatalf("diagnostician temperature = %v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	if err := (Config{APIKey: "k"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Config{}).Validate(); err == nil {
		t.Fatal("expected error for empty api key")
	}
	if err := (Config{APIKey: "k", MaxCompletionToken: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative max tokens")
	}
}
