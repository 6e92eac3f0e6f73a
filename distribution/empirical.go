// Copyright 2025 Sonic Labs
// This file is part of Alea Stochastic Analysis Infrastructure for Sonic
//
// Alea is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Alea is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Alea. If not, see <http://www.gnu.org/licenses/>.

package distribution

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"golang.org/x/exp/rand"
)

// NumECDFPoints sets the number of points kept in the piecewise linear
// representation of a fitted empirical distribution.
const NumECDFPoints = 300

// Empirical is a univariate distribution fitted to observed data. The CDF
// is a piecewise linear function over the observed range, compressed with
// the Visvalingam-Whyatt algorithm to at most NumECDFPoints points. The
// piecewise linear function is stored as a list of points (x_i, y_i) over
// the unit square; the first point is (0,0), the last point is (1,1), and
// points in between are monotonically increasing.
type Empirical struct {
	ecdf [][2]float64 // piecewise linear CDF over the unit interval
	min  float64      // smallest observation
	span float64      // observed range mapped onto the unit interval
}

// FitEmpirical estimates a distribution from observed data. Each
// observation contributes equal probability mass; ties are permitted and
// show up as steep segments in the fitted CDF.
func FitEmpirical(data []float64) (*Empirical, error) {
	n := len(data)
	if n < 2 {
		return nil, fmt.Errorf("FitEmpirical: need at least two observations; got %v", n)
	}
	for i, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("FitEmpirical: observation %v is not finite; got %v", i, x)
		}
	}
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	min := sorted[0]
	max := sorted[n-1]
	if min == max {
		return nil, fmt.Errorf("FitEmpirical: observations have no spread; all equal %v", min)
	}
	span := max - min

	ls := orb.LineString{}
	ls = append(ls, orb.Point{0.0, 0.0})
	// Accumulate the per-observation mass with Kahan's summation to avoid
	// errors for long observation lists.
	// https://en.wikipedia.org/wiki/Kahan_summation_algorithm
	// The largest observation carries the terminal point (1,1) itself, so
	// the loop stops one short of it.
	mass := 1.0 / float64(n)
	sumP := float64(0.0)
	cP := float64(0.0)
	for i := range n - 1 {
		x := (sorted[i] - min) / span
		yP := mass - cP
		tP := sumP + yP
		cP = (tP - sumP) - yP
		sumP = tP
		ls = append(ls, orb.Point{x, sumP})
	}
	ls = append(ls, orb.Point{1.0, 1.0})

	// Reduce the full ECDF using the Visvalingam-Whyatt algorithm. See:
	// https://en.wikipedia.org/wiki/Visvalingam-Whyatt_algorithm
	simplifier := simplify.VisvalingamKeep(NumECDFPoints)
	compressed := simplifier.Simplify(ls).(orb.LineString)
	ecdf := make([][2]float64, len(compressed))
	for i := range compressed {
		ecdf[i] = [2]float64(compressed[i])
	}
	if err := checkECDF(ecdf); err != nil {
		return nil, fmt.Errorf("FitEmpirical: cannot construct valid CDF from observations; %v", err)
	}
	return &Empirical{ecdf: ecdf, min: min, span: span}, nil
}

// Dim returns the dimension of a single realization.
func (e *Empirical) Dim() int { return 1 }

// Sample draws n realizations by inverse transform sampling.
func (e *Empirical) Sample(rg *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = e.Quantile(rg.Float64())
	}
	return out
}

// CDF evaluates the fitted cumulative distribution function at x.
func (e *Empirical) CDF(x float64) float64 {
	return evalCDF(e.ecdf, (x-e.min)/e.span)
}

// Quantile evaluates the inverse of the fitted CDF at probability p.
func (e *Empirical) Quantile(p float64) float64 {
	return e.min + e.span*evalQuantile(e.ecdf, p)
}

// Support returns the smallest and largest observation the distribution
// was fitted to.
func (e *Empirical) Support() (float64, float64) {
	return e.min, e.min + e.span
}

// evalCDF computes the Cumulative Distribution Function of parameter x for
// a piecewise linear function over the unit square given as a list of
// points (x_i, y_i).
func evalCDF(f [][2]float64, x float64) float64 {
	if x <= 0 {
		return 0.0
	}
	for i := range len(f) - 1 {
		if f[i+1][0] >= x {
			scale := (x - f[i][0]) / (f[i+1][0] - f[i][0])
			return f[i][1] + scale*(f[i+1][1]-f[i][1])
		}
	}
	return 1.0 // x is 1.0 or greater
}

// evalQuantile computes the inverse Cumulative Distribution Function of
// parameter y for a cdf given as a piecewise linear function.
func evalQuantile(f [][2]float64, y float64) float64 {
	if y <= 0 {
		return 0.0
	}
	for i := range len(f) - 1 {
		if f[i+1][1] >= y {
			scale := (y - f[i][1]) / (f[i+1][1] - f[i][1])
			return f[i][0] + scale*(f[i+1][0]-f[i][0])
		}
	}
	return 1.0 // y is 1.0 or greater
}

// checkECDF checks whether a piecewise linear function is valid as a CDF.
// The function must start at (0,0), end at (1,1), and its points must be
// monotonically increasing.
func checkECDF(f [][2]float64) error {
	if len(f) < 2 {
		return fmt.Errorf("CDF must have at least start and end point")
	}
	if f[0] != [2]float64{0.0, 0.0} {
		return fmt.Errorf("CDF must start at (0,0), but starts at (%v,%v)", f[0][0], f[0][1])
	}
	last := len(f) - 1
	if f[last] != [2]float64{1.0, 1.0} {
		return fmt.Errorf("CDF must end at (1,1), but ends at (%v,%v)", f[last][0], f[last][1])
	}
	for i := range len(f) - 1 {
		if f[i][0] >= f[i+1][0] && f[i][1] >= f[i+1][1] {
			return fmt.Errorf("CDF points must be strictly monotonically increasing, but point %v (%v,%v) is not smaller than point %v (%v,%v)", i, f[i][0], f[i][1], i+1, f[i+1][0], f[i+1][1])
		}
	}
	return nil
}
