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

	"golang.org/x/exp/rand"
)

// Newton search controls for fitting the rate from observations.
const (
	fitInitRate  = 1.0
	fitTolerance = 1e-9
	fitMaxSteps  = 10000
)

// TruncExponential is a one-sided truncated exponential distribution on
// the unit interval. Large rates concentrate the probability mass near
// zero; as the rate tends to zero the distribution approaches the uniform
// distribution.
type TruncExponential struct {
	rate float64
}

// NewTruncExponential creates a truncated exponential distribution with
// the given rate.
func NewTruncExponential(rate float64) (*TruncExponential, error) {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return nil, fmt.Errorf("NewTruncExponential: rate must be positive and finite; got %v", rate)
	}
	return &TruncExponential{rate: rate}, nil
}

// FitTruncExponential estimates a truncated exponential distribution from
// observations in the unit interval via maximum likelihood. The
// likelihood equation is transcendental, so the rate is searched with a
// classical Newton iteration; the search fails when it exceeds the
// maximum number of steps without meeting the convergence criterion.
func FitTruncExponential(data []float64) (*TruncExponential, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("FitTruncExponential: need at least one observation")
	}
	// Accumulate the observed mean with Kahan's summation.
	sum := float64(0.0)
	c := float64(0.0)
	for i, x := range data {
		if math.IsNaN(x) || x < 0.0 || x > 1.0 {
			return nil, fmt.Errorf("FitTruncExponential: observation %v is outside the unit interval; got %v", i, x)
		}
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	mean := sum / float64(len(data))
	if mean == 0.0 {
		return nil, fmt.Errorf("FitTruncExponential: observations have no spread; all equal 0")
	}
	// The mean of a unit-bounded exponential distribution lies below one
	// half for every positive rate, so a larger observed mean has no
	// positive-rate explanation.
	if mean >= 0.5 {
		return nil, fmt.Errorf("FitTruncExponential: observed mean %v is not below 1/2; observations must be skewed toward zero", mean)
	}
	l := fitInitRate
	for range fitMaxSteps {
		f := meanResidual(l, mean)
		if math.Abs(f) < fitTolerance {
			return NewTruncExponential(l)
		}
		l -= f / meanResidualSlope(l)
		if math.IsNaN(l) || math.IsInf(l, 0) {
			return nil, fmt.Errorf("FitTruncExponential: rate search diverged")
		}
	}
	return nil, fmt.Errorf("FitTruncExponential: no convergence after %v steps", fitMaxSteps)
}

// meanResidual is the distance between the mean of a unit-bounded
// exponential distribution with the given rate and the observed mean.
// Its root is the maximum likelihood estimate of the rate.
func meanResidual(rate, mean float64) float64 {
	return 1.0/rate - 1.0/(math.Exp(rate)-1.0) - mean
}

// meanResidualSlope is the derivative of meanResidual with respect to the
// rate.
func meanResidualSlope(rate float64) float64 {
	e := math.Exp(rate)
	return e/((e-1.0)*(e-1.0)) - 1.0/(rate*rate)
}

// Dim returns the dimension of a single realization.
func (d *TruncExponential) Dim() int { return 1 }

// Sample draws n realizations by inverse transform sampling.
func (d *TruncExponential) Sample(rg *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Quantile(rg.Float64())
	}
	return out
}

// CDF evaluates the cumulative distribution function at x.
func (d *TruncExponential) CDF(x float64) float64 {
	if x <= 0.0 {
		return 0.0
	}
	if x >= 1.0 {
		return 1.0
	}
	return (math.Exp(-d.rate*x) - 1.0) / (math.Exp(-d.rate) - 1.0)
}

// Quantile evaluates the inverse CDF at probability p.
func (d *TruncExponential) Quantile(p float64) float64 {
	if p < 0.0 || p > 1.0 {
		panic("distribution: percentile out of bounds")
	}
	return math.Log(p*math.Exp(-d.rate)-p+1.0) / -d.rate
}

// Rate returns the rate parameter the distribution was constructed or
// fitted with.
func (d *TruncExponential) Rate() float64 { return d.rate }
