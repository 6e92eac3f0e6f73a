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
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func TestNewMultivariateNormal_Validation(t *testing.T) {
	_, err := NewMultivariateNormal(nil, nil)
	assert.Error(t, err)

	cov := mat.NewSymDense(3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	_, err = NewMultivariateNormal([]float64{0, 0}, cov)
	assert.Error(t, err)

	// eigenvalues -1 and 3; not a covariance matrix
	indefinite := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	_, err = NewMultivariateNormal([]float64{0, 0}, indefinite)
	assert.Error(t, err)

	mv, err := NewMultivariateNormal([]float64{1, 2}, mat.NewSymDense(2, []float64{4, 0, 0, 9}))
	assert.NoError(t, err)
	assert.Equal(t, 2, mv.Dim())
	assert.Equal(t, []float64{1, 2}, mv.Mean())
}

func TestMultivariateNormal_SampleShapeAndDeterminism(t *testing.T) {
	mv, err := NewMultivariateNormal([]float64{0, 0, 0}, mat.NewSymDense(3, []float64{1, 0, 0, 0, 2, 0, 0, 0, 3}))
	assert.NoError(t, err)

	a := mv.Sample(rand.New(rand.NewSource(7)), 4)
	b := mv.Sample(rand.New(rand.NewSource(7)), 4)
	assert.Len(t, a, 4)
	for i := range a {
		assert.Len(t, a[i], 3)
		assert.Equal(t, a[i], b[i])
	}
}

func TestMultivariateNormal_SampleCorrelationSign(t *testing.T) {
	mv, err := NewMultivariateNormal([]float64{0, 0}, mat.NewSymDense(2, []float64{1, 0.9, 0.9, 1}))
	assert.NoError(t, err)

	n := 2000
	rows := mv.Sample(rand.New(rand.NewSource(999)), n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, r := range rows {
		xs[i] = r[0]
		ys[i] = r[1]
	}
	r := stat.Correlation(xs, ys, nil)
	assert.Greater(t, r, 0.8)
}

func TestMultivariateNormal_MarginalCDF(t *testing.T) {
	mv, err := NewMultivariateNormal([]float64{1, 2}, mat.NewSymDense(2, []float64{4, 0, 0, 9}))
	assert.NoError(t, err)

	v, err := mv.MarginalCDF(0, 1.0)
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)

	v, err = mv.MarginalCDF(1, 2.0)
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)

	_, err = mv.MarginalCDF(5, 0.0)
	assert.Error(t, err)
}
