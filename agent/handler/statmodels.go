package handler

import (
	"fmt"

	contractx "github.com/tanpawarit/statlingua/agent/contract"
	"github.com/tanpawarit/statlingua/pkg/statmodel"
)

// StatModels registers the OLS and GLM result types of pkg/statmodel.
var StatModels = Provider{
	Name: "statmodel",
	Register: func(b *Builder) error {
		if err := Register(b, contractx.KindLM, summarizeOLS); err != nil {
			return err
		}
		return Register(b, contractx.KindGLM, summarizeGLM)
	},
}

// DefaultProviders is the provider list used at process start-up.
func DefaultProviders() []Provider {
	return []Provider{StatModels}
}

func summarizeOLS(m *statmodel.OLSResults) (string, error) {
	if m == nil {
		return "", fmt.Errorf("%w: ols results is nil", contractx.ErrHandler)
	}
	return m.Summary(), nil
}

func summarizeGLM(m *statmodel.GLMResults) (string, error) {
	if m == nil {
		return "", fmt.Errorf("%w: glm results is nil", contractx.ErrHandler)
	}
	family := statmodel.FamilyName(m.Family)
	if family == "" {
		return "", fmt.Errorf("%w: glm results has no family", contractx.ErrHandler)
	}
	description := fmt.Sprintf("Generalized Linear Model (GLM) with %s family", family)
	return description + "\n\n" + m.Summary(), nil
}
