// Package plot renders diagnostic plots for fitted models.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

var (
	ErrEmptyInput     = errors.New("plot input is empty")
	ErrLengthMismatch = errors.New("fitted and residual lengths differ")
	ErrNonFinite      = errors.New("plot input has non-finite values")
)

// Renderer writes a residuals-vs-fitted PNG to path.
type Renderer interface {
	ResidualsVsFitted(path string, fitted, residuals []float64) error
}

const (
	defaultWidth  = 800
	defaultHeight = 600

	marginLeft   = 80.0
	marginRight  = 30.0
	marginTop    = 50.0
	marginBottom = 60.0

	lowessFrac  = 2.0 / 3.0
	lowessIters = 3
	tickCount   = 5
)

var (
	pointColor = color.NRGBA{R: 31, G: 119, B: 180, A: 150}
	trendColor = color.NRGBA{R: 220, A: 255}
	axisColor  = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	zeroColor  = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	tickColor  = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
)

type GGRenderer struct {
	Width  int
	Height int
}

var _ Renderer = (*GGRenderer)(nil)

func NewGGRenderer() *GGRenderer {
	return &GGRenderer{Width: defaultWidth, Height: defaultHeight}
}

func (r *GGRenderer) ResidualsVsFitted(path string, fitted, residuals []float64) error {
	if err := checkInput(fitted, residuals); err != nil {
		return err
	}

	w, h := r.Width, r.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	xMin, xMax := paddedRange(fitted)
	yMin, yMax := paddedRange(append(append([]float64(nil), residuals...), 0))
	area := plotArea{
		left:   marginLeft,
		right:  float64(w) - marginRight,
		top:    marginTop,
		bottom: float64(h) - marginBottom,
		xMin:   xMin,
		xMax:   xMax,
		yMin:   yMin,
		yMax:   yMax,
	}

	drawAxes(dc, area)

	dc.SetColor(zeroColor)
	dc.SetLineWidth(1)
	dc.SetDash(6, 4)
	dc.DrawLine(area.left, area.py(0), area.right, area.py(0))
	dc.Stroke()
	dc.SetDash()

	dc.SetColor(pointColor)
	for i := range fitted {
		dc.DrawCircle(area.px(fitted[i]), area.py(residuals[i]), 3.5)
		dc.Fill()
	}

	xs, ys := Lowess(fitted, residuals, lowessFrac, lowessIters)
	if len(xs) > 1 {
		dc.SetColor(trendColor)
		dc.SetLineWidth(2)
		dc.MoveTo(area.px(xs[0]), area.py(ys[0]))
		for i := 1; i < len(xs); i++ {
			dc.LineTo(area.px(xs[i]), area.py(ys[i]))
		}
		dc.Stroke()
	}

	dc.SetColor(axisColor)
	dc.DrawStringAnchored("Residuals vs. Fitted Plot", float64(w)/2, marginTop/2, 0.5, 0.5)
	dc.DrawStringAnchored("Fitted values", (area.left+area.right)/2, float64(h)-marginBottom/3, 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(-math.Pi/2, marginLeft/4, (area.top+area.bottom)/2)
	dc.DrawStringAnchored("Residuals", marginLeft/4, (area.top+area.bottom)/2, 0.5, 0.5)
	dc.Pop()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	if err := dc.EncodePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode plot png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close plot file: %w", err)
	}
	return nil
}

type plotArea struct {
	left, right, top, bottom float64
	xMin, xMax, yMin, yMax   float64
}

func (a plotArea) px(x float64) float64 {
	return a.left + (x-a.xMin)/(a.xMax-a.xMin)*(a.right-a.left)
}

func (a plotArea) py(y float64) float64 {
	return a.bottom - (y-a.yMin)/(a.yMax-a.yMin)*(a.bottom-a.top)
}

func drawAxes(dc *gg.Context, a plotArea) {
	dc.SetColor(axisColor)
	dc.SetLineWidth(1)
	dc.DrawRectangle(a.left, a.top, a.right-a.left, a.bottom-a.top)
	dc.Stroke()

	dc.SetColor(tickColor)
	for i := 0; i <= tickCount; i++ {
		frac := float64(i) / tickCount

		x := a.xMin + frac*(a.xMax-a.xMin)
		px := a.px(x)
		dc.DrawLine(px, a.bottom, px, a.bottom+5)
		dc.Stroke()
		dc.DrawStringAnchored(tickLabel(x), px, a.bottom+16, 0.5, 0.5)

		y := a.yMin + frac*(a.yMax-a.yMin)
		py := a.py(y)
		dc.DrawLine(a.left-5, py, a.left, py)
		dc.Stroke()
		dc.DrawStringAnchored(tickLabel(y), a.left-8, py, 1, 0.5)
	}
}

func tickLabel(v float64) string {
	if math.Abs(v) < 1e-9 {
		v = 0
	}
	return fmt.Sprintf("%.3g", v)
}

func paddedRange(vals []float64) (float64, float64) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(lo)*0.05, 1)
	}
	return lo - pad, hi + pad
}

func checkInput(fitted, residuals []float64) error {
	if len(fitted) == 0 || len(residuals) == 0 {
		return ErrEmptyInput
	}
	if len(fitted) != len(residuals) {
		return fmt.Errorf("%w: fitted=%d residuals=%d", ErrLengthMismatch, len(fitted), len(residuals))
	}
	for i := range fitted {
		if !isFinite(fitted[i]) || !isFinite(residuals[i]) {
			return fmt.Errorf("%w: index %d", ErrNonFinite, i)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
