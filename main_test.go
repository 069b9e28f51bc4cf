package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

const olsFixture = `{
  "kind": "ols",
  "dep_var": "mpg",
  "n_obs": 4,
  "df_resid": 2,
  "r_squared": 0.82,
  "coefficients": [
    {"name": "Intercept", "estimate": 37.2, "std_err": 1.9, "statistic": 19.6, "p_value": 0.0001},
    {"name": "wt", "estimate": -5.3, "std_err": 0.56, "statistic": -9.5, "p_value": 0.0002}
  ],
  "residuals": [0.5, -0.5, 0.2, -0.2],
  "fitted": [20, 22, 18, 25]
}`

func writeModelFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(olsFixture), 0o600); err != nil {
		t.Fatalf("write model file: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	params, err := parseParams([]string{"temperature=0.3", "base_url = http://localhost:4000", "stop=END,STOP"})
	if err != nil {
		t.Fatalf("parseParams() error = %v", err)
	}
	if params["temperature"] != "0.3" {
		t.Fatalf("unexpected temperature: %#v", params["temperature"])
	}
	if params["base_url"] != "http://localhost:4000" {
		t.Fatalf("unexpected base_url: %#v", params["base_url"])
	}
	stop, ok := params["stop"].([]string)
	if !ok || len(stop) != 2 || stop[1] != "STOP" {
		t.Fatalf("unexpected stop: %#v", params["stop"])
	}

	if _, err := parseParams([]string{"novalue"}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if p, err := parseParams(nil); err != nil || p != nil {
		t.Fatalf("expected nil params, got %#v %v", p, err)
	}
}

func TestPromptCommandPrintsAssembledPrompts(t *testing.T) {
	path := writeModelFile(t)

	out, err := runCLI(t, "prompt", path, "--audience", "researcher", "--context", "Fuel economy data.")
	if err != nil {
		t.Fatalf("prompt command error = %v\n%s", err, out)
	}

	for _, want := range []string{
		"=== SYSTEM ===",
		"Target Audience: Researcher",
		"=== USER ===",
		"Explain the following lm model output:",
		"OLS Regression Results",
		"Fuel economy data.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPromptCommandJSON(t *testing.T) {
	path := writeModelFile(t)

	out, err := runCLI(t, "prompt", path, "--json", "--style", "latex")
	if err != nil {
		t.Fatalf("prompt command error = %v\n%s", err, out)
	}

	var prompt contractx.AssembledPrompt
	if err := json.Unmarshal([]byte(out), &prompt); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, out)
	}
	if !strings.Contains(prompt.System, "(Style: Latex)") {
		t.Fatalf("unexpected system prompt:\n%s", prompt.System)
	}
}

func TestExplainCommandRequiresModelFile(t *testing.T) {
	if _, err := runCLI(t, "explain"); err == nil {
		t.Fatal("expected argument error")
	}
}
