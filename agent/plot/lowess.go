package plot

import (
	"math"
	"sort"
)

// Lowess returns the locally weighted linear fit of y on x evaluated at the
// sorted x values. frac is the share of points in each local window and iters
// the number of robustness reweighting passes.
func Lowess(x, y []float64, frac float64, iters int) ([]float64, []float64) {
	n := len(x)
	if n == 0 || n != len(y) {
		return nil, nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, j := range idx {
		xs[i] = x[j]
		ys[i] = y[j]
	}

	if n < 3 {
		return xs, append([]float64(nil), ys...)
	}

	r := int(math.Ceil(frac * float64(n)))
	if r < 2 {
		r = 2
	}
	if r > n {
		r = n
	}

	fitted := make([]float64, n)
	robust := make([]float64, n)
	for i := range robust {
		robust[i] = 1
	}
	weights := make([]float64, n)
	resid := make([]float64, n)

	for it := 0; it <= iters; it++ {
		for i := 0; i < n; i++ {
			h := windowRadius(xs, i, r)
			fitted[i] = localFit(xs, ys, i, h, robust, weights)
		}
		if it == iters {
			break
		}

		for i := range resid {
			resid[i] = math.Abs(ys[i] - fitted[i])
		}
		s := median(resid)
		if s <= 1e-12*meanAbs(ys) || s == 0 {
			break
		}
		for i := range robust {
			u := resid[i] / (6 * s)
			if u >= 1 {
				robust[i] = 0
				continue
			}
			b := 1 - u*u
			robust[i] = b * b
		}
	}

	return xs, fitted
}

// windowRadius is the distance from xs[i] to its r-th nearest neighbour.
func windowRadius(xs []float64, i, r int) float64 {
	lo, hi := i, i
	for hi-lo+1 < r {
		switch {
		case lo == 0:
			hi++
		case hi == len(xs)-1:
			lo--
		case xs[i]-xs[lo-1] <= xs[hi+1]-xs[i]:
			lo--
		default:
			hi++
		}
	}
	return math.Max(xs[i]-xs[lo], xs[hi]-xs[i])
}

func localFit(xs, ys []float64, i int, h float64, robust, weights []float64) float64 {
	x0 := xs[i]
	var sw, swx, swy float64
	for j := range xs {
		w := 0.0
		d := math.Abs(xs[j] - x0)
		switch {
		case h == 0:
			if d == 0 {
				w = 1
			}
		case d < h:
			u := d / h
			t := 1 - u*u*u
			w = t * t * t
		}
		w *= robust[j]
		weights[j] = w
		sw += w
		swx += w * xs[j]
		swy += w * ys[j]
	}
	if sw == 0 {
		return ys[i]
	}

	xbar := swx / sw
	ybar := swy / sw
	var sxx, sxy float64
	for j := range xs {
		dx := xs[j] - xbar
		sxx += weights[j] * dx * dx
		sxy += weights[j] * dx * (ys[j] - ybar)
	}
	if sxx <= 1e-12*sw {
		return ybar
	}
	return ybar + sxy/sxx*(x0-xbar)
}

func median(vals []float64) float64 {
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	m := len(s) / 2
	if len(s)%2 == 1 {
		return s[m]
	}
	return (s[m-1] + s[m]) / 2
}

func meanAbs(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += math.Abs(v)
	}
	return sum / float64(len(vals))
}
