// Package statmodel holds fitted regression results exported from a modeling
// library and renders them the way that library prints its summaries.
package statmodel

import (
	"fmt"
	"strings"
)

type Coefficient struct {
	Name      string  `json:"name" yaml:"name"`
	Estimate  float64 `json:"estimate" yaml:"estimate"`
	StdErr    float64 `json:"std_err" yaml:"std_err"`
	Statistic float64 `json:"statistic" yaml:"statistic"`
	PValue    float64 `json:"p_value" yaml:"p_value"`
}

// OLSResults is a fitted ordinary least squares model.
type OLSResults struct {
	DepVar       string
	NObs         int
	DfResid      int
	Coefficients []Coefficient
	RSquared     float64
	AdjRSquared  float64
	FStatistic   float64
	FPValue      float64
	Resid        []float64
	Fitted       []float64
}

func (r *OLSResults) Residuals() []float64    { return r.Resid }
func (r *OLSResults) FittedValues() []float64 { return r.Fitted }

func (r *OLSResults) Summary() string {
	var b strings.Builder
	writeHeader(&b, "OLS Regression Results")
	writeRow(&b, "Dep. Variable:", r.DepVar, "R-squared:", fmtFloat(r.RSquared))
	writeRow(&b, "Model:", "OLS", "Adj. R-squared:", fmtFloat(r.AdjRSquared))
	writeRow(&b, "Method:", "Least Squares", "F-statistic:", fmtFloat(r.FStatistic))
	writeRow(&b, "No. Observations:", fmt.Sprint(r.NObs), "Prob (F-statistic):", fmtPValue(r.FPValue))
	writeRow(&b, "Df Residuals:", fmt.Sprint(r.DfResid), "", "")
	writeCoefficients(&b, r.Coefficients, "t", "P>|t|")
	return strings.TrimRight(b.String(), "\n")
}

// GLMResults is a fitted generalized linear model.
type GLMResults struct {
	DepVar        string
	NObs          int
	DfResid       int
	Family        Family
	Coefficients  []Coefficient
	LogLikelihood float64
	Deviance      float64
	PearsonChi2   float64
	Resid         []float64
	Fitted        []float64
}

func (r *GLMResults) Residuals() []float64    { return r.Resid }
func (r *GLMResults) FittedValues() []float64 { return r.Fitted }

func (r *GLMResults) Summary() string {
	link := ""
	if r.Family != nil {
		link = r.Family.Link()
	}
	var b strings.Builder
	writeHeader(&b, "Generalized Linear Model Regression Results")
	writeRow(&b, "Dep. Variable:", r.DepVar, "No. Observations:", fmt.Sprint(r.NObs))
	writeRow(&b, "Model:", "GLM", "Df Residuals:", fmt.Sprint(r.DfResid))
	writeRow(&b, "Model Family:", FamilyName(r.Family), "Log-Likelihood:", fmtFloat(r.LogLikelihood))
	writeRow(&b, "Link Function:", link, "Deviance:", fmtFloat(r.Deviance))
	writeRow(&b, "Method:", "IRLS", "Pearson chi2:", fmtFloat(r.PearsonChi2))
	writeCoefficients(&b, r.Coefficients, "z", "P>|z|")
	return strings.TrimRight(b.String(), "\n")
}

const summaryWidth = 78

func writeHeader(b *strings.Builder, title string) {
	pad := (summaryWidth - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad) + title + "\n")
	b.WriteString(strings.Repeat("=", summaryWidth) + "\n")
}

func writeRow(b *strings.Builder, k1, v1, k2, v2 string) {
	fmt.Fprintf(b, "%-20s%18s   %-20s%17s\n", k1, v1, k2, v2)
}

func writeCoefficients(b *strings.Builder, coefs []Coefficient, stat, pcol string) {
	b.WriteString(strings.Repeat("=", summaryWidth) + "\n")
	fmt.Fprintf(b, "%-16s%12s%12s%12s%12s\n", "", "coef", "std err", stat, pcol)
	b.WriteString(strings.Repeat("-", summaryWidth) + "\n")
	for _, c := range coefs {
		fmt.Fprintf(b, "%-16s%12.4f%12.3f%12.3f%12s\n", c.Name, c.Estimate, c.StdErr, c.Statistic, fmtPValue(c.PValue))
	}
	b.WriteString(strings.Repeat("=", summaryWidth) + "\n")
}

func fmtFloat(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

func fmtPValue(p float64) string {
	if p < 0.001 {
		return "0.000"
	}
	return fmt.Sprintf("%.3f", p)
}
