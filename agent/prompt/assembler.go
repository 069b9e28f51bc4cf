// Package prompt composes the system and user prompts sent to the LLM.
//
// What to say (role and instructions) is keyed by model kind; how to say it
// (audience, verbosity, style) is keyed independently. Every fragment is
// optional and a missing one leaves its section blank.
package prompt

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/statlingua/agent/contract"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const fragmentExt = ".md"

type Assembler struct {
	store contractx.FragmentReader
}

func NewAssembler(store contractx.FragmentReader) *Assembler {
	if store == nil {
		store = NewStore()
	}
	return &Assembler{store: store}
}

// Assemble builds both prompts for a model of the given kind.
func (a *Assembler) Assemble(kind contractx.ModelKind, cfg contractx.PromptConfig, summary, context string) contractx.AssembledPrompt {
	return contractx.AssembledPrompt{
		System: a.SystemPrompt(kind, cfg),
		User:   BuildUserPrompt(fmt.Sprintf("%s model", kind), summary, context),
	}
}

func (a *Assembler) SystemPrompt(kind contractx.ModelKind, cfg contractx.PromptConfig) string {
	model := string(kind)

	roleBase := a.read("common", "role_base")
	roleSpecific := a.read("models", model, "role_specific")
	roleSection := strings.TrimSpace(fmt.Sprintf("## Role\n\n%s\n\n%s", roleBase, roleSpecific))

	audienceText := a.read("audience", cfg.Audience)
	verbosityText := a.read("verbosity", cfg.Verbosity)
	audienceSection := strings.TrimSpace(fmt.Sprintf(
		"## Intended Audience and Verbosity\n\n### Target Audience: %s\n%s\n\n### Level of Detail (Verbosity): %s\n%s",
		title(cfg.Audience), audienceText, title(cfg.Verbosity), verbosityText,
	))

	styleText := a.read("style", cfg.Style)
	styleSection := strings.TrimSpace(fmt.Sprintf("## Response Format Specification (Style: %s)\n\n%s", title(cfg.Style), styleText))

	instructions := a.read("models", model, "instructions")
	if strings.TrimSpace(instructions) == "" {
		instructions = a.read("models", string(contractx.KindDefault), "instructions")
	}
	instructionsSection := strings.TrimSpace("## Instructions\n\n" + instructions)

	cautionSection := strings.TrimSpace("## Caution\n\n" + a.read("common", "caution"))

	return strings.TrimSpace(strings.Join([]string{
		roleSection,
		audienceSection,
		styleSection,
		instructionsSection,
		cautionSection,
	}, "\n\n"))
}

// BuildUserPrompt embeds the model summary and optional context.
func BuildUserPrompt(description, summary, context string) string {
	prompt := fmt.Sprintf("Explain the following %s output:\n\n---\n\n%s", description, summary)
	if ctx := strings.TrimSpace(context); ctx != "" {
		prompt += "\n\n---\n\n## Additional context to consider\n\n" + ctx
	}
	return prompt
}

func (a *Assembler) read(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	last := parts[len(parts)-1]
	if last == "" {
		return ""
	}
	parts[len(parts)-1] = last + fragmentExt
	return a.store.Read(parts...)
}

func title(s string) string {
	return cases.Title(language.English).String(s)
}
