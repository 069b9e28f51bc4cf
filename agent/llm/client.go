// Package llm implements the completion interface over eino chat models
// served through an OpenAI-compatible endpoint.
package llm

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
	openrouterx "github.com/tanpawarit/statlingua/pkg/openrouter"
)

// ModelBuilder creates the chat model for one call.
type ModelBuilder func(ctx context.Context, cfg openrouterx.Config) (einomodel.ToolCallingChatModel, error)

type ClientOption func(*Client)

func WithModelBuilder(b ModelBuilder) ClientOption {
	return func(c *Client) {
		if b != nil {
			c.build = b
		}
	}
}

type Client struct {
	cfg   Config
	build ModelBuilder
}

var _ contractx.Completer = (*Client)(nil)

func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg: cfg,
		build: func(ctx context.Context, orCfg openrouterx.Config) (einomodel.ToolCallingChatModel, error) {
			return orCfg.New(ctx)
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

func (c *Client) Complete(ctx context.Context, req contractx.CompletionRequest) (*schema.Message, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: completion request has no messages", contractx.ErrValidation)
	}

	orCfg := c.cfg.OpenRouterFor(req.Role, req.Model, req.FallbackModel)
	callOpts, err := applyParams(&orCfg, req.Params.Normalize())
	if err != nil {
		return nil, err
	}
	if orCfg.Model == "" {
		return nil, fmt.Errorf("%w: model is required", contractx.ErrValidation)
	}

	chatModel, err := c.build(ctx, orCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create model=%s: %w", contractx.ErrModelInvoke, orCfg.Model, err)
	}
	if len(req.Tools) > 0 {
		chatModel, err = chatModel.WithTools(req.Tools)
		if err != nil {
			return nil, fmt.Errorf("%w: bind tools for model=%s: %w", contractx.ErrModelInvoke, orCfg.Model, err)
		}
	}

	log.Debug().
		Str("role", string(req.Role)).
		Str("model", orCfg.Model).
		Int("messages", len(req.Messages)).
		Int("tools", len(req.Tools)).
		Msg("llm completion request")

	msg, err := chatModel.Generate(ctx, req.Messages, callOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: generate model=%s: %w", contractx.ErrModelInvoke, orCfg.Model, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: empty response from model=%s", contractx.ErrSchemaViolation, orCfg.Model)
	}
	return msg, nil
}

// applyParams folds passthrough params into the transport config and call options.
// Unrecognised keys are sent as extra request fields.
func applyParams(cfg *openrouterx.Config, params contractx.Params) ([]einomodel.Option, error) {
	var opts []einomodel.Option
	for key, val := range params {
		switch key {
		case contractx.ParamAPIBase:
			v, err := cast.ToStringE(val)
			if err != nil {
				return nil, paramErr(key, err)
			}
			if v = strings.TrimSpace(v); v != "" {
				cfg.BaseURL = v
			}
		case contractx.ParamAPIKey:
			v, err := cast.ToStringE(val)
			if err != nil {
				return nil, paramErr(key, err)
			}
			if v = strings.TrimSpace(v); v != "" {
				cfg.APIKey = v
			}
		case contractx.ParamTemperature:
			v, err := cast.ToFloat32E(val)
			if err != nil {
				return nil, paramErr(key, err)
			}
			cfg.Temperature = &v
		case contractx.ParamMaxTokens:
			v, err := cast.ToIntE(val)
			if err != nil {
				return nil, paramErr(key, err)
			}
			cfg.MaxCompletionToken = &v
		case contractx.ParamTopP:
			v, err := cast.ToFloat32E(val)
			if err != nil {
				return nil, paramErr(key, err)
			}
			opts = append(opts, einomodel.WithTopP(v))
		case contractx.ParamStop:
			v, err := cast.ToStringSliceE(val)
			if err != nil {
				return nil, paramErr(key, err)
			}
			opts = append(opts, einomodel.WithStop(v))
		default:
			if cfg.ExtraFields == nil {
				cfg.ExtraFields = map[string]any{}
			}
			cfg.ExtraFields[key] = val
		}
	}
	return opts, nil
}

func paramErr(key string, err error) error {
	return fmt.Errorf("%w: param %s: %v", contractx.ErrValidation, key, err)
}
