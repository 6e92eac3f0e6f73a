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

package sampling

import (
	"testing"

	"github.com/0xsoniclabs/alea/distribution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// dimOnly is a distribution that can neither sample nor evaluate a CDF.
type dimOnly struct{}

func (dimOnly) Dim() int { return 1 }

// vectorSampler is a multivariate distribution without componentwise CDFs.
type vectorSampler struct{ d int }

func (v vectorSampler) Dim() int { return v.d }

func (v vectorSampler) Sample(rg *rand.Rand, n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, v.d)
		for j := range row {
			row[j] = rg.Float64()
		}
		rows[i] = row
	}
	return rows
}

func twoMarginals(t *testing.T) []distribution.Continuous1D {
	t.Helper()
	u, err := distribution.NewUniform(0.0, 1.0)
	require.NoError(t, err)
	nd, err := distribution.NewNormal(0.0, 1.0)
	require.NoError(t, err)
	return []distribution.Continuous1D{u, nd}
}

func TestNewMonteCarlo_Validation(t *testing.T) {
	_, err := NewMonteCarlo(nil, 0, 42)
	assert.Error(t, err)

	u, _ := distribution.NewUniform(0.0, 1.0)
	_, err = NewMonteCarlo([]distribution.Continuous1D{u, nil}, 0, 42)
	assert.Error(t, err)

	_, err = NewMonteCarlo([]distribution.Continuous1D{u}, 0, "seed")
	assert.Error(t, err)

	_, err = NewMultivariateMonteCarlo(nil, 0, 42)
	assert.Error(t, err)
}

func TestNewMixedMonteCarlo_RejectsNonSamplingElement(t *testing.T) {
	u, _ := distribution.NewUniform(0.0, 1.0)
	_, err := NewMixedMonteCarlo([]distribution.Distribution{u, dimOnly{}}, 0, 42)
	assert.Error(t, err)

	_, err = NewMixedMonteCarlo([]distribution.Distribution{u, nil}, 0, 42)
	assert.Error(t, err)
}

func TestMonteCarlo_InitialCountDrawsImmediately(t *testing.T) {
	mc, err := NewMonteCarlo(twoMarginals(t), 5, 42)
	require.NoError(t, err)
	assert.Equal(t, 5, mc.Count())

	// an immediate draw matches a deferred Run on the same seed
	deferred, err := NewMonteCarlo(twoMarginals(t), 0, 42)
	require.NoError(t, err)
	require.NoError(t, deferred.Run(5))
	assert.Equal(t, deferred.Samples(), mc.Samples())

	_, err = NewMonteCarlo(twoMarginals(t), -1, 42)
	assert.Error(t, err)
	_, err = NewMultivariateMonteCarlo(vectorSampler{d: 2}, -1, 42)
	assert.Error(t, err)
	u, _ := distribution.NewUniform(0.0, 1.0)
	_, err = NewMixedMonteCarlo([]distribution.Distribution{u}, -1, 42)
	assert.Error(t, err)
}

func TestMonteCarlo_RunRejectsNonPositiveCounts(t *testing.T) {
	mc, err := NewMonteCarlo(twoMarginals(t), 0, 42)
	require.NoError(t, err)
	assert.Error(t, mc.Run(0))
	assert.Error(t, mc.Run(-1))
	assert.Equal(t, 0, mc.Count())
}

func TestMonteCarlo_RunAppends(t *testing.T) {
	mc, err := NewMonteCarlo(twoMarginals(t), 0, 42)
	require.NoError(t, err)

	require.NoError(t, mc.Run(3))
	assert.Equal(t, 3, mc.Count())
	require.NoError(t, mc.Run(4))
	assert.Equal(t, 7, mc.Count())
	assert.Len(t, mc.Samples(), 7)
}

func TestMonteCarlo_AppendNeverRewritesHistory(t *testing.T) {
	split, err := NewMonteCarlo(twoMarginals(t), 0, 42)
	require.NoError(t, err)
	require.NoError(t, split.Run(5))
	require.NoError(t, split.Run(3))

	whole, err := NewMonteCarlo(twoMarginals(t), 0, 42)
	require.NoError(t, err)
	require.NoError(t, whole.Run(5))

	for i, want := range whole.Samples() {
		assert.Equal(t, want, split.Samples()[i], "row %d rewritten by append", i)
	}
}

func TestMonteCarlo_ColumnsMatchStandaloneDraws(t *testing.T) {
	dists := twoMarginals(t)
	mc, err := NewMonteCarlo(dists, 0, 42)
	require.NoError(t, err)
	require.NoError(t, mc.Run(5))

	rows := mc.Samples()
	assert.Len(t, rows, 5)

	// replay draws distribution by distribution on an identically seeded
	// generator
	rg := rand.New(rand.NewSource(42))
	col0 := dists[0].Sample(rg, 5)
	col1 := dists[1].Sample(rg, 5)
	for i := range rows {
		assert.Len(t, rows[i], 2)
		assert.Equal(t, col0[i], rows[i][0])
		assert.Equal(t, col1[i], rows[i][1])
	}
}

func TestMonteCarlo_TransformU01(t *testing.T) {
	mc, err := NewMonteCarlo(twoMarginals(t), 0, 42)
	require.NoError(t, err)
	require.NoError(t, mc.Run(20))
	require.NoError(t, mc.TransformU01())

	u01 := mc.SamplesU01()
	require.Len(t, u01, 20)
	for _, row := range u01 {
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestMonteCarlo_TransformU01Idempotent(t *testing.T) {
	mc, err := NewMonteCarlo(twoMarginals(t), 0, 42)
	require.NoError(t, err)
	require.NoError(t, mc.Run(10))

	require.NoError(t, mc.TransformU01())
	first := make([][]float64, len(mc.SamplesU01()))
	for i, row := range mc.SamplesU01() {
		first[i] = append([]float64(nil), row...)
	}
	require.NoError(t, mc.TransformU01())
	for i, row := range mc.SamplesU01() {
		assert.Equal(t, first[i], row)
	}
}

func TestMonteCarlo_TransformU01StaleAfterAppend(t *testing.T) {
	mc, err := NewMonteCarlo(twoMarginals(t), 0, 42)
	require.NoError(t, err)
	require.NoError(t, mc.Run(4))
	require.NoError(t, mc.TransformU01())
	require.Len(t, mc.SamplesU01(), 4)

	// appending does not refresh the image until the next transform
	require.NoError(t, mc.Run(2))
	assert.Len(t, mc.SamplesU01(), 4)
	require.NoError(t, mc.TransformU01())
	assert.Len(t, mc.SamplesU01(), 6)
}

func TestMonteCarlo_Multivariate(t *testing.T) {
	mv, err := distribution.NewMultivariateNormal(
		[]float64{0, 1}, mat.NewSymDense(2, []float64{1, 0.5, 0.5, 2}))
	require.NoError(t, err)
	mc, err := NewMultivariateMonteCarlo(mv, 0, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, mc.Dim())

	require.NoError(t, mc.Run(6))
	require.NoError(t, mc.TransformU01())
	require.Len(t, mc.SamplesU01(), 6)
	for _, row := range mc.SamplesU01() {
		for _, v := range row {
			assert.Greater(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestMonteCarlo_MultivariateWithoutCDFFailsTransform(t *testing.T) {
	mc, err := NewMultivariateMonteCarlo(vectorSampler{d: 3}, 0, 7)
	require.NoError(t, err)
	require.NoError(t, mc.Run(2))
	assert.Error(t, mc.TransformU01())
}

func TestMonteCarlo_Mixed(t *testing.T) {
	u, _ := distribution.NewUniform(0.0, 1.0)
	mv, err := distribution.NewMultivariateNormal(
		[]float64{0, 0}, mat.NewSymDense(2, []float64{1, 0, 0, 1}))
	require.NoError(t, err)
	ex, _ := distribution.NewExponential(2.0)

	mc, err := NewMixedMonteCarlo([]distribution.Distribution{u, mv, ex}, 0, 11)
	require.NoError(t, err)
	assert.Equal(t, 4, mc.Dim())

	require.NoError(t, mc.Run(5))
	rows := mc.Samples()
	require.Len(t, rows, 5)
	for _, row := range rows {
		require.Len(t, row, 4)
		// uniform block stays in its support, exponential block is positive
		assert.GreaterOrEqual(t, row[0], 0.0)
		assert.Less(t, row[0], 1.0)
		assert.Greater(t, row[3], 0.0)
	}

	require.NoError(t, mc.TransformU01())
	for _, row := range mc.SamplesU01() {
		require.Len(t, row, 4)
		for _, v := range row {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestMonteCarlo_MixedWithoutCDFFailsTransform(t *testing.T) {
	u, _ := distribution.NewUniform(0.0, 1.0)
	mc, err := NewMixedMonteCarlo([]distribution.Distribution{u, vectorSampler{d: 2}}, 0, 11)
	require.NoError(t, err)
	require.NoError(t, mc.Run(2))
	assert.Error(t, mc.TransformU01())
}

func TestMonteCarlo_ReseedAffectsOnlyUpcomingBatches(t *testing.T) {
	mc, err := NewMonteCarlo(twoMarginals(t), 0, 1)
	require.NoError(t, err)
	require.NoError(t, mc.Run(3))
	before := make([][]float64, 3)
	for i, row := range mc.Samples() {
		before[i] = append([]float64(nil), row...)
	}

	require.NoError(t, mc.Reseed(1234))
	require.NoError(t, mc.Run(3))

	// prior rows untouched
	for i := range before {
		assert.Equal(t, before[i], mc.Samples()[i])
	}

	// the new batch reproduces a fresh sampler seeded the same way
	fresh, err := NewMonteCarlo(twoMarginals(t), 0, 1234)
	require.NoError(t, err)
	require.NoError(t, fresh.Run(3))
	assert.Equal(t, fresh.Samples(), mc.Samples()[3:])

	assert.Error(t, mc.Reseed("bad"))
}
