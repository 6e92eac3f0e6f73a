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

// Package distribution provides the probability distributions feeding the
// samplers and sensitivity estimators. Distributions are immutable once
// constructed and never own a random source; every sampling call receives
// an explicit generator.
package distribution

import (
	"golang.org/x/exp/rand"
)

// Distribution is the capability shared by all distributions.
type Distribution interface {
	// Dim returns the dimension of a single realization.
	Dim() int
}

// Continuous1D is a univariate continuous distribution that can draw
// samples with an explicit generator.
type Continuous1D interface {
	Distribution
	// Sample draws n independent realizations.
	Sample(rg *rand.Rand, n int) []float64
}

// Multivariate is a vector-valued distribution. Sample returns n rows of
// Dim() columns each.
type Multivariate interface {
	Distribution
	Sample(rg *rand.Rand, n int) [][]float64
}

// CDFer is the cumulative-distribution capability of univariate
// distributions. Not every distribution carries it; callers that need it
// must check and report its absence.
type CDFer interface {
	CDF(x float64) float64
}

// Quantiler is the inverse-CDF capability used for inverse-transform
// sampling in stratified designs.
type Quantiler interface {
	Quantile(p float64) float64
}

// MarginalCDFer evaluates the componentwise CDFs of a multivariate
// distribution for unit-hypercube transforms.
type MarginalCDFer interface {
	MarginalCDF(i int, x float64) (float64, error)
}
