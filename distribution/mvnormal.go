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
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// MultivariateNormal is a correlated Gaussian distribution on R^d.
type MultivariateNormal struct {
	mean []float64
	cov  *mat.SymDense
	chol mat.Cholesky
}

// NewMultivariateNormal creates a Gaussian with the given mean vector and
// covariance matrix. The covariance must be symmetric positive definite.
func NewMultivariateNormal(mean []float64, cov *mat.SymDense) (*MultivariateNormal, error) {
	d := len(mean)
	if d == 0 {
		return nil, fmt.Errorf("NewMultivariateNormal: mean vector must not be empty")
	}
	if cov == nil || cov.Symmetric() != d {
		return nil, fmt.Errorf("NewMultivariateNormal: covariance must be a %vx%v symmetric matrix", d, d)
	}
	mv := &MultivariateNormal{
		mean: append([]float64(nil), mean...),
		cov:  mat.NewSymDense(d, nil),
	}
	mv.cov.CopySym(cov)
	if ok := mv.chol.Factorize(mv.cov); !ok {
		return nil, fmt.Errorf("NewMultivariateNormal: covariance matrix is not positive definite")
	}
	return mv, nil
}

// Dim returns the dimension of a single realization.
func (m *MultivariateNormal) Dim() int { return len(m.mean) }

// Mean returns a copy of the mean vector.
func (m *MultivariateNormal) Mean() []float64 {
	return append([]float64(nil), m.mean...)
}

// Sample draws n realizations; row i holds the i-th d-dimensional draw.
func (m *MultivariateNormal) Sample(rg *rand.Rand, n int) [][]float64 {
	nd := distmv.NewNormalChol(m.mean, &m.chol, rg)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = nd.Rand(nil)
	}
	return rows
}

// MarginalCDF evaluates the Gaussian CDF of component i at x using the
// component's own mean and variance.
func (m *MultivariateNormal) MarginalCDF(i int, x float64) (float64, error) {
	if i < 0 || i >= len(m.mean) {
		return 0, fmt.Errorf("MarginalCDF: component %v out of range [0,%v)", i, len(m.mean))
	}
	nd := distuv.Normal{Mu: m.mean[i], Sigma: math.Sqrt(m.cov.At(i, i))}
	return nd.CDF(x), nil
}
