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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFuncModel_Validation(t *testing.T) {
	_, err := NewFuncModel("m", nil)
	assert.Error(t, err)
	_, err = NewScalarModel("m", nil)
	assert.Error(t, err)
}

func TestFuncModel_RunReplacesHistory(t *testing.T) {
	m, err := NewScalarModel("sum", func(x []float64) float64 {
		return x[0] + x[1]
	})
	assert.NoError(t, err)

	err = m.Run([][]float64{{1, 2}, {3, 4}}, false)
	assert.NoError(t, err)
	assert.Equal(t, [][]float64{{3}, {7}}, m.QoIList())

	// a second replace run drops the first batch
	err = m.Run([][]float64{{5, 5}}, false)
	assert.NoError(t, err)
	assert.Equal(t, [][]float64{{10}}, m.QoIList())
}

func TestFuncModel_RunAppendsHistory(t *testing.T) {
	m, _ := NewScalarModel("first", func(x []float64) float64 {
		return x[0]
	})
	assert.NoError(t, m.Run([][]float64{{1}}, false))
	assert.NoError(t, m.Run([][]float64{{2}, {3}}, true))
	assert.Equal(t, [][]float64{{1}, {2}, {3}}, m.QoIList())
}

func TestFuncModel_RunRejectsEmptyBatch(t *testing.T) {
	m, _ := NewScalarModel("id", func(x []float64) float64 { return x[0] })
	assert.Error(t, m.Run(nil, false))
	assert.Error(t, m.Run([][]float64{}, true))
}

func TestFuncModel_RunRejectsInconsistentWidth(t *testing.T) {
	calls := 0
	m, _ := NewFuncModel("ragged", func(x []float64) []float64 {
		calls++
		if calls > 1 {
			return []float64{1, 2}
		}
		return []float64{1}
	})
	err := m.Run([][]float64{{0}, {0}}, false)
	assert.Error(t, err)

	empty, _ := NewFuncModel("empty", func(x []float64) []float64 { return nil })
	assert.Error(t, empty.Run([][]float64{{0}}, false))
}

func TestFuncModel_VectorOutputs(t *testing.T) {
	m, err := NewFuncModel("pair", func(x []float64) []float64 {
		return []float64{x[0], 2 * x[0]}
	})
	assert.NoError(t, err)
	assert.NoError(t, m.Run([][]float64{{1}, {2}}, false))
	assert.Equal(t, [][]float64{{1, 2}, {2, 4}}, m.QoIList())
}
