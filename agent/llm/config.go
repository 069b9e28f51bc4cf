package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/statlingua/agent/contract"
	openrouterx "github.com/tanpawarit/statlingua/pkg/openrouter"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"openai/gpt-4o"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.2"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	ExplainModel        string  `envconfig:"EXPLAIN_MODEL" split_words:"true"`
	DiagnoseModel       string  `envconfig:"DIAGNOSE_MODEL" split_words:"true"`
	VisionModel         string  `envconfig:"VISION_MODEL" split_words:"true"`
	ExplainTemperature  float32 `envconfig:"EXPLAIN_TEMPERATURE" split_words:"true" default:"-1"`
	DiagnoseTemperature float32 `envconfig:"DIAGNOSE_TEMPERATURE" split_words:"true" default:"-1"`
	VisionTemperature   float32 `envconfig:"VISION_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if c.MaxCompletionToken < 0 {
		return fmt.Errorf("%w: max completion token must be >= 0", contractx.ErrValidation)
	}
	return nil
}

// ModelFor picks the model for a call: the requested model, then the role
// override, then fallback, then the default.
func (c Config) ModelFor(role contractx.AgentRole, requested, fallback string) string {
	for _, v := range []string{requested, c.roleModel(role), fallback} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.Model)
}

func (c Config) roleModel(role contractx.AgentRole) string {
	switch role {
	case contractx.RoleExplainer:
		return c.ExplainModel
	case contractx.RoleDiagnostician:
		return c.DiagnoseModel
	case contractx.RoleVision:
		return c.VisionModel
	default:
		return ""
	}
}

func (c Config) temperatureFor(role contractx.AgentRole) float32 {
	temp := c.Temperature
	switch role {
	case contractx.RoleExplainer:
		if c.ExplainTemperature >= 0 {
			temp = c.ExplainTemperature
		}
	case contractx.RoleDiagnostician:
		if c.DiagnoseTemperature >= 0 {
			temp = c.DiagnoseTemperature
		}
	case contractx.RoleVision:
		if c.VisionTemperature >= 0 {
			temp = c.VisionTemperature
		}
	}
	return temp
}

// OpenRouterFor builds the transport config for one call before param overrides are applied.
func (c Config) OpenRouterFor(role contractx.AgentRole, requested, fallback string) openrouterx.Config {
	maxCompletionToken := c.MaxCompletionToken
	temp := c.temperatureFor(role)
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              c.ModelFor(role, requested, fallback),
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        &temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
