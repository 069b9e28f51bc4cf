// Package handler maps the runtime type of a fitted model object to the
// function that extracts its model kind and summary text.
//
// Lookup is by exact type: a struct that embeds a registered type is a
// different type and falls through to DefaultHandler.
package handler

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

// Provider registers the handlers for one family of model types.
// Register returns an error wrapping contract.ErrUnavailable when the family cannot be supported.
type Provider struct {
	Name     string
	Register func(b *Builder) error
}

// Builder collects handlers before the registry is frozen.
type Builder struct {
	handlers map[reflect.Type]contractx.Handler
}

func NewBuilder() *Builder {
	return &Builder{handlers: make(map[reflect.Type]contractx.Handler)}
}

// Register adds a handler for values of exactly type T.
func Register[T any](b *Builder, kind contractx.ModelKind, fn func(T) (string, error)) error {
	if fn == nil {
		return fmt.Errorf("%w: nil handler for kind=%s", contractx.ErrValidation, kind)
	}
	typ := reflect.TypeOf((*T)(nil)).Elem()
	return b.add(typ, func(obj any) (contractx.ModelKind, string, error) {
		m, ok := obj.(T)
		if !ok {
			return "", "", fmt.Errorf("%w: handler for %s received %T", contractx.ErrHandler, typ, obj)
		}
		summary, err := fn(m)
		if err != nil {
			return "", "", err
		}
		return kind, summary, nil
	})
}

func (b *Builder) add(typ reflect.Type, h contractx.Handler) error {
	if _, exists := b.handlers[typ]; exists {
		return fmt.Errorf("%w: type=%s", contractx.ErrDuplicateHandler, typ)
	}
	b.handlers[typ] = h
	return nil
}

// Build freezes the collected handlers. The builder must not be reused.
func (b *Builder) Build() *Registry {
	handlers := make(map[reflect.Type]contractx.Handler, len(b.handlers))
	for k, v := range b.handlers {
		handlers[k] = v
	}
	return &Registry{handlers: handlers}
}

// Registry is read-only after construction and safe for concurrent use.
type Registry struct {
	handlers map[reflect.Type]contractx.Handler
}

var _ contractx.HandlerResolver = (*Registry)(nil)

// NewRegistry runs providers in order. Unavailable providers are skipped.
func NewRegistry(providers ...Provider) (*Registry, error) {
	b := NewBuilder()
	for _, p := range providers {
		if p.Register == nil {
			continue
		}
		if err := p.Register(b); err != nil {
			if errors.Is(err, contractx.ErrUnavailable) {
				log.Debug().Str("provider", p.Name).Err(err).Msg("skipping unavailable model handlers")
				continue
			}
			return nil, fmt.Errorf("register %s handlers: %w", p.Name, err)
		}
		log.Debug().Str("provider", p.Name).Msg("registered model handlers")
	}
	return b.Build(), nil
}

// MustNewRegistry is NewRegistry for process start-up.
func MustNewRegistry(providers ...Provider) *Registry {
	r, err := NewRegistry(providers...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Resolve(obj any) contractx.Handler {
	if r == nil || obj == nil {
		return DefaultHandler
	}
	if h, ok := r.handlers[reflect.TypeOf(obj)]; ok {
		return h
	}
	return DefaultHandler
}

// Summarize resolves and runs the handler for obj. A panicking handler is reported as ErrHandler.
func (r *Registry) Summarize(obj any) (kind contractx.ModelKind, summary string, err error) {
	h := r.Resolve(obj)
	defer func() {
		if rec := recover(); rec != nil {
			kind, summary = "", ""
			err = fmt.Errorf("%w: %T: %v", contractx.ErrHandler, obj, rec)
		}
	}()
	return h(obj)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.handlers)
}
