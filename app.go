package main

import (
	"fmt"

	contractx "github.com/tanpawarit/statlingua/agent/contract"
	handlerx "github.com/tanpawarit/statlingua/agent/handler"
	llmx "github.com/tanpawarit/statlingua/agent/llm"
	promptx "github.com/tanpawarit/statlingua/agent/prompt"
	configx "github.com/tanpawarit/statlingua/pkg/config"
	logx "github.com/tanpawarit/statlingua/pkg/logger"
)

type AppConfig struct {
	PromptDir string `split_words:"true"`
	PlotDir   string `split_words:"true" default:"plots"`
	Audience  string `default:"novice"`
	Verbosity string `default:"moderate"`
	Style     string `default:"markdown"`
}

func (c AppConfig) PromptDefaults() contractx.PromptConfig {
	return contractx.PromptConfig{
		Audience:  c.Audience,
		Verbosity: c.Verbosity,
		Style:     c.Style,
	}.WithDefaults()
}

// app holds the pieces every command shares. The LLM client is built on
// demand so that offline commands need no API key.
type app struct {
	cfg       AppConfig
	handlers  *handlerx.Registry
	assembler *promptx.Assembler
}

func loadApp(envFile string) (*app, error) {
	configx.SetEnvFile(envFile)

	logCfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		return nil, fmt.Errorf("load log config: %w", err)
	}
	logx.Init(*logCfg)

	appCfg, err := configx.New[AppConfig]("STATLINGUA")
	if err != nil {
		return nil, fmt.Errorf("load app config: %w", err)
	}

	handlers, err := handlerx.NewRegistry(handlerx.DefaultProviders()...)
	if err != nil {
		return nil, fmt.Errorf("build handler registry: %w", err)
	}

	return &app{
		cfg:       *appCfg,
		handlers:  handlers,
		assembler: promptx.NewAssembler(promptx.NewStoreFromDir(appCfg.PromptDir)),
	}, nil
}

func loadLLMConfig() (*llmx.Config, error) {
	cfg, err := configx.New[llmx.Config]("OPENROUTER")
	if err != nil {
		return nil, fmt.Errorf("load openrouter config: %w", err)
	}
	return cfg, nil
}

func (a *app) completer() (*llmx.Client, error) {
	cfg, err := loadLLMConfig()
	if err != nil {
		return nil, err
	}
	return llmx.NewClient(*cfg)
}
