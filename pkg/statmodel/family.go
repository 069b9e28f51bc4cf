package statmodel

import (
	"fmt"
	"reflect"
	"strings"
)

// Family is the error distribution of a generalized linear model.
type Family interface {
	Link() string
}

type (
	Gaussian         struct{}
	Binomial         struct{}
	Poisson          struct{}
	Gamma            struct{}
	InverseGaussian  struct{}
	NegativeBinomial struct{ Alpha float64 }
	Tweedie          struct{ Power float64 }
)

func (Gaussian) Link() string         { return "Identity" }
func (Binomial) Link() string         { return "Logit" }
func (Poisson) Link() string          { return "Log" }
func (Gamma) Link() string            { return "InversePower" }
func (InverseGaussian) Link() string  { return "InverseSquared" }
func (NegativeBinomial) Link() string { return "Log" }
func (Tweedie) Link() string          { return "Log" }

// FamilyName is the concrete type name of f, e.g. "Poisson".
func FamilyName(f Family) string {
	if f == nil {
		return ""
	}
	t := reflect.TypeOf(f)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// ParseFamily maps a family name (case-insensitive) to a Family.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gaussian", "normal":
		return Gaussian{}, nil
	case "binomial", "logit":
		return Binomial{}, nil
	case "poisson":
		return Poisson{}, nil
	case "gamma":
		return Gamma{}, nil
	case "inversegaussian", "inverse_gaussian":
		return InverseGaussian{}, nil
	case "negativebinomial", "negative_binomial":
		return NegativeBinomial{Alpha: 1}, nil
	case "tweedie":
		return Tweedie{Power: 1}, nil
	default:
		return nil, fmt.Errorf("unknown glm family %q", name)
	}
}
