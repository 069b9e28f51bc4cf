package contract

import (
	"github.com/cloudwego/eino/schema"
)

type ModelKind string

const (
	KindDefault ModelKind = "default"
	KindLM      ModelKind = "lm"
	KindGLM     ModelKind = "glm"
)

// AgentRole selects per-role model overrides in the completion client.
type AgentRole string

const (
	RoleExplainer     AgentRole = "explainer"
	RoleDiagnostician AgentRole = "diagnostician"
	RoleVision        AgentRole = "vision"
)

const (
	DefaultAudience  = "novice"
	DefaultVerbosity = "moderate"
	DefaultStyle     = "markdown"
)

type PromptConfig struct {
	Audience  string `json:"audience"`
	Verbosity string `json:"verbosity"`
	Style     string `json:"style"`
}

// WithDefaults fills empty axes with novice/moderate/markdown.
func (c PromptConfig) WithDefaults() PromptConfig {
	if c.Audience == "" {
		c.Audience = DefaultAudience
	}
	if c.Verbosity == "" {
		c.Verbosity = DefaultVerbosity
	}
	if c.Style == "" {
		c.Style = DefaultStyle
	}
	return c
}

type AssembledPrompt struct {
	System string `json:"system"`
	User   string `json:"user"`
}

type ExplainRequest struct {
	ModelObject any
	Model       string
	Context     string
	Audience    string
	Verbosity   string
	Style       string
	Params      Params
}

type DiagnoseRequest struct {
	ModelObject any
	Prompt      string
	Model       string
	// VisionModel overrides the model used to interpret the rendered plot.
	VisionModel string
	Params      Params
}

type ExplanationResult struct {
	Text      string    `json:"text"`
	ModelType ModelKind `json:"model_type"`
	Audience  string    `json:"audience"`
	Verbosity string    `json:"verbosity"`
	Style     string    `json:"style"`
}

type DiagnosisResult struct {
	Text string `json:"text"`
}

type AgentResult struct {
	Text string `json:"text"`
	Plot string `json:"plot,omitempty"`
}

type CompletionRequest struct {
	Role          AgentRole
	Model         string
	// FallbackModel is used when neither Model nor a role override is set.
	FallbackModel string
	Messages      []*schema.Message
	Tools         []*schema.ToolInfo
	Params        Params
}

type ToolRequest struct {
	ID   string         `json:"id,omitempty"`
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
