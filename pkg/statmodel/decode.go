package statmodel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// resultFile is the on-disk form of a fitted model exported from a modeling library.
type resultFile struct {
	Kind          string        `json:"kind" yaml:"kind"`
	DepVar        string        `json:"dep_var" yaml:"dep_var"`
	NObs          int           `json:"n_obs" yaml:"n_obs"`
	DfResid       int           `json:"df_resid" yaml:"df_resid"`
	Family        string        `json:"family,omitempty" yaml:"family,omitempty"`
	Coefficients  []Coefficient `json:"coefficients" yaml:"coefficients"`
	RSquared      float64       `json:"r_squared,omitempty" yaml:"r_squared,omitempty"`
	AdjRSquared   float64       `json:"adj_r_squared,omitempty" yaml:"adj_r_squared,omitempty"`
	FStatistic    float64       `json:"f_statistic,omitempty" yaml:"f_statistic,omitempty"`
	FPValue       float64       `json:"f_p_value,omitempty" yaml:"f_p_value,omitempty"`
	LogLikelihood float64       `json:"log_likelihood,omitempty" yaml:"log_likelihood,omitempty"`
	Deviance      float64       `json:"deviance,omitempty" yaml:"deviance,omitempty"`
	PearsonChi2   float64       `json:"pearson_chi2,omitempty" yaml:"pearson_chi2,omitempty"`
	Residuals     []float64     `json:"residuals,omitempty" yaml:"residuals,omitempty"`
	Fitted        []float64     `json:"fitted,omitempty" yaml:"fitted,omitempty"`
}

// LoadFile decodes a result file; ".yaml"/".yml" files are read as YAML, anything else as JSON.
func LoadFile(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(raw)
	default:
		return DecodeJSON(raw)
	}
}

func DecodeJSON(raw []byte) (any, error) {
	var f resultFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode model json: %w", err)
	}
	return f.build()
}

func DecodeYAML(raw []byte) (any, error) {
	var f resultFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode model yaml: %w", err)
	}
	return f.build()
}

func (f resultFile) build() (any, error) {
	if len(f.Residuals) != len(f.Fitted) {
		return nil, fmt.Errorf("residuals (%d) and fitted values (%d) differ in length", len(f.Residuals), len(f.Fitted))
	}

	switch strings.ToLower(strings.TrimSpace(f.Kind)) {
	case "ols", "lm":
		return &OLSResults{
			DepVar:       f.DepVar,
			NObs:         f.NObs,
			DfResid:      f.DfResid,
			Coefficients: f.Coefficients,
			RSquared:     f.RSquared,
			AdjRSquared:  f.AdjRSquared,
			FStatistic:   f.FStatistic,
			FPValue:      f.FPValue,
			Resid:        f.Residuals,
			Fitted:       f.Fitted,
		}, nil
	case "glm":
		family, err := ParseFamily(f.Family)
		if err != nil {
			return nil, err
		}
		return &GLMResults{
			DepVar:        f.DepVar,
			NObs:          f.NObs,
			DfResid:       f.DfResid,
			Family:        family,
			Coefficients:  f.Coefficients,
			LogLikelihood: f.LogLikelihood,
			Deviance:      f.Deviance,
			PearsonChi2:   f.PearsonChi2,
			Resid:         f.Residuals,
			Fitted:        f.Fitted,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported model kind %q", f.Kind)
	}
}
