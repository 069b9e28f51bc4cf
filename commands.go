package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	diagnosticianx "github.com/tanpawarit/statlingua/agent/agents/diagnostician"
	explainerx "github.com/tanpawarit/statlingua/agent/agents/explainer"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
	llmx "github.com/tanpawarit/statlingua/agent/llm"
	toolx "github.com/tanpawarit/statlingua/agent/tool"
	openrouterx "github.com/tanpawarit/statlingua/pkg/openrouter"
	"github.com/tanpawarit/statlingua/pkg/statmodel"
)

type rootOptions struct {
	envFile string
	asJSON  bool
	model   string
	params  []string

	app *app
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "statlingua",
		Short: "Explain and diagnose fitted statistical models with an LLM",
		Long: `statlingua turns fitted model results into plain-language explanations.

  statlingua explain model.json --audience researcher    Explain a fitted model
  statlingua diagnose model.json "Is there multicollinearity?"
  statlingua agent model.yaml "Check for heteroscedasticity"
  statlingua prompt model.json                            Print prompts without calling the LLM
  statlingua models                                       List provider models`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(opts.envFile)
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env", "", "path to a .env or YAML config file")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print results as JSON")
	root.PersistentFlags().StringVar(&opts.model, "model", "", "LLM model identifier (overrides OPENROUTER_MODEL)")
	root.PersistentFlags().StringArrayVarP(&opts.params, "param", "p", nil, "extra completion parameter as key=value (repeatable)")

	root.AddCommand(
		newExplainCmd(opts),
		newDiagnoseCmd(opts),
		newAgentCmd(opts),
		newPromptCmd(opts),
		newModelsCmd(opts),
	)
	return root
}

type explainOptions struct {
	context   string
	audience  string
	verbosity string
	style     string
}

func (o *explainOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.context, "context", "", "background about the data and research question")
	cmd.Flags().StringVar(&o.audience, "audience", "", "novice, student, researcher, manager or domain_expert")
	cmd.Flags().StringVar(&o.verbosity, "verbosity", "", "brief, moderate or detailed")
	cmd.Flags().StringVar(&o.style, "style", "", "markdown, html, json, text or latex")
}

func (o *explainOptions) request(obj any, opts *rootOptions) (contractx.ExplainRequest, error) {
	params, err := parseParams(opts.params)
	if err != nil {
		return contractx.ExplainRequest{}, err
	}
	return contractx.ExplainRequest{
		ModelObject: obj,
		Model:       opts.model,
		Context:     o.context,
		Audience:    o.audience,
		Verbosity:   o.verbosity,
		Style:       o.style,
		Params:      params,
	}, nil
}

func newExplainCmd(opts *rootOptions) *cobra.Command {
	eo := &explainOptions{}
	cmd := &cobra.Command{
		Use:   "explain <model-file>",
		Short: "Explain a fitted model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := statmodel.LoadFile(args[0])
			if err != nil {
				return err
			}
			req, err := eo.request(obj, opts)
			if err != nil {
				return err
			}

			completer, err := opts.app.completer()
			if err != nil {
				return err
			}
			explainer, err := explainerx.New(opts.app.handlers, opts.app.assembler, completer, explainerx.Config{
				Defaults: opts.app.cfg.PromptDefaults(),
			})
			if err != nil {
				return err
			}

			out, err := explainer.Explain(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.asJSON, out, out.Text)
		},
	}
	eo.bind(cmd)
	return cmd
}

func newDiagnoseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose <model-file> <question>",
		Short: "Recommend diagnostic checks for a fitted model",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, req, err := diagnoseSetup(opts, args, "")
			if err != nil {
				return err
			}
			out, err := d.Diagnose(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.asJSON, out, out.Text)
		},
	}
}

func newAgentCmd(opts *rootOptions) *cobra.Command {
	var visionModel string
	cmd := &cobra.Command{
		Use:   "agent <model-file> <question>",
		Short: "Diagnose a fitted model with a tool-calling agent that can plot residuals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, req, err := diagnoseSetup(opts, args, visionModel)
			if err != nil {
				return err
			}
			out, err := d.DiagnoseAgent(cmd.Context(), req)
			if err != nil {
				return err
			}

			text := out.Text
			if out.Plot != "" {
				text += "\n\nPlot: " + out.Plot
			}
			return render(cmd.OutOrStdout(), opts.asJSON, out, text)
		},
	}
	cmd.Flags().StringVar(&visionModel, "vision-model", "", "model used to interpret the rendered plot")
	return cmd
}

func diagnoseSetup(opts *rootOptions, args []string, visionModel string) (*diagnosticianx.Diagnostician, contractx.DiagnoseRequest, error) {
	obj, err := statmodel.LoadFile(args[0])
	if err != nil {
		return nil, contractx.DiagnoseRequest{}, err
	}
	params, err := parseParams(opts.params)
	if err != nil {
		return nil, contractx.DiagnoseRequest{}, err
	}

	completer, err := opts.app.completer()
	if err != nil {
		return nil, contractx.DiagnoseRequest{}, err
	}
	d, err := diagnosticianx.New(opts.app.handlers, completer, diagnosticianx.Config{
		Tool: toolx.Config{PlotDir: opts.app.cfg.PlotDir},
	})
	if err != nil {
		return nil, contractx.DiagnoseRequest{}, err
	}

	return d, contractx.DiagnoseRequest{
		ModelObject: obj,
		Prompt:      args[1],
		Model:       opts.model,
		VisionModel: visionModel,
		Params:      params,
	}, nil
}

func newPromptCmd(opts *rootOptions) *cobra.Command {
	eo := &explainOptions{}
	cmd := &cobra.Command{
		Use:   "prompt <model-file>",
		Short: "Print the explanation prompts without calling the LLM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := statmodel.LoadFile(args[0])
			if err != nil {
				return err
			}
			kind, summary, err := opts.app.handlers.Summarize(obj)
			if err != nil {
				return err
			}

			defaults := opts.app.cfg.PromptDefaults()
			cfg := contractx.PromptConfig{
				Audience:  firstNonEmpty(eo.audience, defaults.Audience),
				Verbosity: firstNonEmpty(eo.verbosity, defaults.Verbosity),
				Style:     firstNonEmpty(eo.style, defaults.Style),
			}
			prompt := opts.app.assembler.Assemble(kind, cfg, summary, eo.context)

			text := "=== SYSTEM ===\n" + prompt.System + "\n\n=== USER ===\n" + prompt.User
			return render(cmd.OutOrStdout(), opts.asJSON, prompt, text)
		},
	}
	eo.bind(cmd)
	return cmd
}

func newModelsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models served by the configured endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadLLMConfig()
			if err != nil {
				return err
			}
			client := openrouterx.NewClient(cfg.OpenRouterFor("", "", ""))

			models, err := llmx.ListModels(cmd.Context(), client)
			if err != nil {
				return err
			}

			var b strings.Builder
			for _, m := range models {
				b.WriteString(m.ID)
				b.WriteString("\n")
			}
			return render(cmd.OutOrStdout(), opts.asJSON, models, strings.TrimRight(b.String(), "\n"))
		},
	}
}

// parseParams turns key=value pairs into completion params. Values stay
// strings; the completion client coerces the keys it knows.
func parseParams(raw []string) (contractx.Params, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	params := make(contractx.Params, len(raw))
	for _, kv := range raw {
		key, val, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: param %q must be key=value", contractx.ErrValidation, kv)
		}
		if key == contractx.ParamStop {
			params[key] = strings.Split(val, ",")
			continue
		}
		params[key] = strings.TrimSpace(val)
	}
	return params, nil
}

func render(w io.Writer, asJSON bool, v any, text string) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
