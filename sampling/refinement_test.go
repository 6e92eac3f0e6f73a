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
	"fmt"
	"testing"

	"github.com/0xsoniclabs/alea/model"
	"github.com/0xsoniclabs/alea/sampling/strata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/rand"
)

func sumModel(t *testing.T) *model.FuncModel {
	t.Helper()
	m, err := model.NewScalarModel("sum", func(x []float64) float64 {
		s := 0.0
		for _, v := range x {
			s += v
		}
		return s
	})
	require.NoError(t, err)
	return m
}

func drawnDesign(t *testing.T) *Stratified {
	t.Helper()
	s, err := NewStratified(grid2x2(t), twoMarginals(t), 999)
	require.NoError(t, err)
	require.NoError(t, s.Run(1))
	return s
}

func TestNewRefinedStratified_Validation(t *testing.T) {
	_, err := NewRefinedStratified(nil, sumModel(t), VolumeRefiner{}, 42)
	assert.Error(t, err)

	undrawn, err := NewStratified(grid2x2(t), twoMarginals(t), 42)
	require.NoError(t, err)
	_, err = NewRefinedStratified(undrawn, sumModel(t), VolumeRefiner{}, 42)
	assert.Error(t, err)

	dense, err := NewStratified(grid2x2(t), twoMarginals(t), 42)
	require.NoError(t, err)
	require.NoError(t, dense.Run(2))
	_, err = NewRefinedStratified(dense, sumModel(t), VolumeRefiner{}, 42)
	assert.Error(t, err)

	_, err = NewRefinedStratified(drawnDesign(t), nil, VolumeRefiner{}, 42)
	assert.Error(t, err)

	_, err = NewRefinedStratified(drawnDesign(t), sumModel(t), nil, 42)
	assert.Error(t, err)

	_, err = NewRefinedStratified(drawnDesign(t), sumModel(t), VolumeRefiner{}, 3.14)
	assert.Error(t, err)
}

func TestRefinedStratified_GrowsDesign(t *testing.T) {
	design := drawnDesign(t)
	initial := make([][]float64, design.Count())
	for i, row := range design.Samples() {
		initial[i] = append([]float64(nil), row...)
	}

	eng, err := NewRefinedStratified(design, sumModel(t), VolumeRefiner{}, 999)
	require.NoError(t, err)
	require.NoError(t, eng.Run(12))

	assert.Equal(t, 12, design.Count())
	assert.Equal(t, 12, design.Strata().Size())
	assert.Len(t, eng.Outputs(), 12)

	// the refined design keeps one point per stratum, in index order
	for i, u := range design.SamplesU01() {
		assert.True(t, design.Strata().Contains(i, u), "point %d left stratum %d", i, i)
	}

	// weights follow the shrinking stratum volumes and stay normalized
	sum := 0.0
	for i, w := range design.Weights() {
		assert.InDelta(t, design.Strata().Volume(i), w, 1e-12)
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	// refinement only appends; the initial points survive untouched
	for i, want := range initial {
		assert.Equal(t, want, design.Samples()[i], "initial point %d rewritten", i)
	}

	// the output snapshot tracks the model on every design point
	for i, x := range design.Samples() {
		assert.InDelta(t, x[0]+x[1], eng.Outputs()[i][0], 1e-12)
	}
}

func TestRefinedStratified_SecondRunContinues(t *testing.T) {
	design := drawnDesign(t)
	eng, err := NewRefinedStratified(design, sumModel(t), VolumeRefiner{}, 999)
	require.NoError(t, err)

	require.NoError(t, eng.Run(8))
	assert.Equal(t, 8, design.Count())
	require.NoError(t, eng.Run(12))
	assert.Equal(t, 12, design.Count())
	assert.Len(t, eng.Outputs(), 12)
}

func TestRefinedStratified_RejectsLowTargets(t *testing.T) {
	eng, err := NewRefinedStratified(drawnDesign(t), sumModel(t), VolumeRefiner{}, 42)
	require.NoError(t, err)
	assert.Error(t, eng.Run(4))
	assert.Error(t, eng.Run(3))
	assert.Equal(t, 4, eng.Design().Count())
}

func TestRefinedStratified_ModelFailurePoisonsEngine(t *testing.T) {
	ctrl := gomock.NewController(t)
	eval := model.NewMockEvaluator(ctrl)
	eval.EXPECT().Run(gomock.Any(), false).Return(nil)
	eval.EXPECT().QoIList().Return([][]float64{{1}, {2}, {3}, {4}})
	eval.EXPECT().Run(gomock.Any(), true).Return(fmt.Errorf("model exploded"))

	eng, err := NewRefinedStratified(drawnDesign(t), eval, VolumeRefiner{}, 42)
	require.NoError(t, err)

	err = eng.Run(6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model exploded")

	err = eng.Run(6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "previously failed")
}

func TestRefinedStratified_OutputsIsolatedFromEvaluator(t *testing.T) {
	m := sumModel(t)
	eng, err := NewRefinedStratified(drawnDesign(t), m, VolumeRefiner{}, 999)
	require.NoError(t, err)
	require.NoError(t, eng.Run(6))

	want := eng.Outputs()[0][0]
	m.QoIList()[0][0] = 1e9
	assert.Equal(t, want, eng.Outputs()[0][0])
}

func TestDeviationRefiner_PicksStrongestSignal(t *testing.T) {
	st, err := strata.NewRectangular([]int{3})
	require.NoError(t, err)
	rg := rand.New(rand.NewSource(999))

	r := &DeviationRefiner{}
	pick, err := r.Pick(rg, st, [][]float64{{0}, {0}, {9}})
	require.NoError(t, err)
	assert.Equal(t, 2, pick)
}

func TestDeviationRefiner_CountsEachOutputOnce(t *testing.T) {
	st, err := strata.NewRectangular([]int{3})
	require.NoError(t, err)
	rg := rand.New(rand.NewSource(999))

	r := &DeviationRefiner{}
	_, err = r.Pick(rg, st, [][]float64{{0}, {0}, {9}})
	require.NoError(t, err)

	_, err = st.Split(rg, 2, nil)
	require.NoError(t, err)

	// mean over {0, 0, 9, 9} is 4.5; the full-width strata now carry the
	// highest volume-weighted deviation
	pick, err := r.Pick(rg, st, [][]float64{{0}, {0}, {9}, {9}})
	require.NoError(t, err)
	assert.LessOrEqual(t, pick, 1)
}

func TestDeviationRefiner_ConstantOutputsFallBackToVolume(t *testing.T) {
	st, err := strata.NewRectangular([]int{3})
	require.NoError(t, err)
	rg := rand.New(rand.NewSource(999))

	r := &DeviationRefiner{}
	pick, err := r.Pick(rg, st, [][]float64{{5}, {5}, {5}})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pick, 0)
	assert.Less(t, pick, 3)
}

func TestDeviationRefiner_RejectsMalformedOutputs(t *testing.T) {
	st, err := strata.NewRectangular([]int{3})
	require.NoError(t, err)
	rg := rand.New(rand.NewSource(999))

	_, err = (&DeviationRefiner{}).Pick(rg, st, [][]float64{{1}, {2}})
	assert.Error(t, err)

	_, err = (&DeviationRefiner{}).Pick(rg, st, [][]float64{{1}, {}, {3}})
	assert.Error(t, err)
}

func TestVolumeRefiner_FavorsLargeStrata(t *testing.T) {
	st, err := strata.NewRectangular([]int{2})
	require.NoError(t, err)
	rg := rand.New(rand.NewSource(999))
	_, err = st.Split(rg, 1, nil)
	require.NoError(t, err)

	// volumes are 1/2, 1/4, 1/4
	counts := make([]int, st.Size())
	for range 3000 {
		pick, err := VolumeRefiner{}.Pick(rg, st, nil)
		require.NoError(t, err)
		counts[pick]++
	}
	assert.Greater(t, counts[0], counts[1])
	assert.Greater(t, counts[0], counts[2])
}

func TestPickByWeight_RejectsZeroMass(t *testing.T) {
	rg := rand.New(rand.NewSource(42))
	_, err := pickByWeight(rg, nil)
	assert.Error(t, err)
	_, err = pickByWeight(rg, []float64{0.0, 0.0})
	assert.Error(t, err)
}
