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

package sensitivity

import (
	"bytes"
	"testing"

	"github.com/0xsoniclabs/alea/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSobol_WriteReportRequiresRun(t *testing.T) {
	sob, err := NewSobol(sumEval(t), jointUniform(t), 42)
	require.NoError(t, err)
	assert.Error(t, sob.WriteReport(&bytes.Buffer{}))
}

func TestSobol_WriteReportScalarOutput(t *testing.T) {
	sob, err := NewSobol(sumEval(t), jointUniform(t), 999)
	require.NoError(t, err)
	require.NoError(t, sob.Run(128, 0, 0.95))

	var buf bytes.Buffer
	require.NoError(t, sob.WriteReport(&buf))
	out := buf.String()
	assert.Contains(t, out, "x0")
	assert.Contains(t, out, "x1")
	assert.Contains(t, out, "FIRST ORDER")
	assert.Contains(t, out, "TOTAL ORDER")
	assert.NotContains(t, out, "CONF. INTERVAL")
	assert.NotContains(t, out, "output channel")
}

func TestSobol_WriteReportVectorOutputsWithIntervals(t *testing.T) {
	m, err := model.NewFuncModel("pair", func(x []float64) []float64 {
		return []float64{x[0] + 2.0*x[1], 3.0*x[0] + x[1]}
	})
	require.NoError(t, err)
	sob, err := NewSobol(m, jointUniform(t), 999)
	require.NoError(t, err)
	require.NoError(t, sob.Run(128, 8, 0.95))

	var buf bytes.Buffer
	require.NoError(t, sob.WriteReport(&buf))
	out := buf.String()
	assert.Contains(t, out, "CONF. INTERVAL")
	assert.Contains(t, out, "output channel 0")
	assert.Contains(t, out, "output channel 1")
}
