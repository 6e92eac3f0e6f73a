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
	"fmt"

	"github.com/0xsoniclabs/alea/distribution"
	"github.com/0xsoniclabs/alea/logger"
	"github.com/0xsoniclabs/alea/model"
	"github.com/0xsoniclabs/alea/random"
	"gonum.org/v1/gonum/stat"
)

// Sobol estimates first-order and total-order variance-based indices
// through a pick-and-freeze design: the model is evaluated on two
// independent sample matrices A and B plus, per variable i, on A with
// its i-th column taken from B. First-order indices follow Saltelli's
// 2010 estimator, total-order indices follow Jansen's 1999 estimator.
type Sobol struct {
	*Sensitivity

	// First[i][o] and Total[i][o] hold the index of variable i on output
	// channel o. The interval grids are indexed output-first: FirstCI[o][i]
	// bounds First[i][o]. The grids stay nil until Run is called with a
	// positive bootstrap count.
	First   [][]float64
	Total   [][]float64
	FirstCI [][]Interval
	TotalCI [][]Interval
}

// NewSobol creates a variance-based index estimator for the given model
// and input distribution.
func NewSobol(eval model.Evaluator, dist distribution.Distribution, state random.State) (*Sobol, error) {
	base, err := New(eval, dist, state)
	if err != nil {
		return nil, fmt.Errorf("NewSobol: %v", err)
	}
	base.log = logger.NewLogger("info", "Sobol")
	return &Sobol{Sensitivity: base}, nil
}

// Run draws the pick-and-freeze design with n points per matrix,
// evaluates the model on all of its n*(dim+2) points, and estimates the
// indices. A positive numBootstrap additionally computes two-sided
// confidence bounds at the given level.
func (s *Sobol) Run(n, numBootstrap int, confidenceLevel float64) error {
	if n <= 0 {
		return fmt.Errorf("Run: number of samples must be positive; got %v", n)
	}
	d := s.Dim()
	s.log.Infof("estimating indices for %v variables from %v model evaluations", d, n*(d+2))

	matA := s.drawMatrix(n)
	matB := s.drawMatrix(n)
	fA, err := s.runModel(matA)
	if err != nil {
		return fmt.Errorf("Run: %v", err)
	}
	fB, err := s.runModel(matB)
	if err != nil {
		return fmt.Errorf("Run: %v", err)
	}
	if len(fA[0]) == 0 {
		return fmt.Errorf("Run: evaluator produced empty outputs")
	}
	fC := make([][][]float64, d)
	for i := range d {
		frozen := make([][]float64, n)
		for r := range frozen {
			row := append([]float64(nil), matA[r]...)
			row[i] = matB[r][i]
			frozen[r] = row
		}
		fC[i], err = s.runModel(frozen)
		if err != nil {
			return fmt.Errorf("Run: %v", err)
		}
	}

	s.First = firstOrder(fA, fB, fC)
	s.Total = totalOrder(fA, fB, fC)
	if numBootstrap <= 0 {
		return nil
	}

	first := func(args ...any) ([][]float64, error) {
		return firstOrder(args[0].([][]float64), args[1].([][]float64), args[2].([][][]float64)), nil
	}
	s.FirstCI, err = s.Bootstrap(first, []any{fA, fB, fC}, s.First, numBootstrap, confidenceLevel)
	if err != nil {
		return fmt.Errorf("Run: %v", err)
	}
	total := func(args ...any) ([][]float64, error) {
		return totalOrder(args[0].([][]float64), args[1].([][]float64), args[2].([][][]float64)), nil
	}
	s.TotalCI, err = s.Bootstrap(total, []any{fA, fB, fC}, s.Total, numBootstrap, confidenceLevel)
	if err != nil {
		return fmt.Errorf("Run: %v", err)
	}
	return nil
}

// firstOrder computes Saltelli's 2010 first-order estimator
// mean(f_B * (f_Ci - f_A)) / Var(f) per variable and output channel.
func firstOrder(fA, fB [][]float64, fC [][][]float64) [][]float64 {
	n := len(fA)
	out := make([][]float64, len(fC))
	for i := range fC {
		row := make([]float64, len(fA[0]))
		for o := range row {
			sum := 0.0
			c := 0.0
			for r := range n {
				y := fB[r][o]*(fC[i][r][o]-fA[r][o]) - c
				t := sum + y
				c = (t - sum) - y
				sum = t
			}
			row[o] = sum / float64(n) / pooledVariance(fA, fB, o)
		}
		out[i] = row
	}
	return out
}

// totalOrder computes Jansen's 1999 total-order estimator
// mean((f_A - f_Ci)^2) / (2 * Var(f)) per variable and output channel.
func totalOrder(fA, fB [][]float64, fC [][][]float64) [][]float64 {
	n := len(fA)
	out := make([][]float64, len(fC))
	for i := range fC {
		row := make([]float64, len(fA[0]))
		for o := range row {
			sum := 0.0
			c := 0.0
			for r := range n {
				dv := fA[r][o] - fC[i][r][o]
				y := dv*dv - c
				t := sum + y
				c = (t - sum) - y
				sum = t
			}
			row[o] = sum / (2.0 * float64(n)) / pooledVariance(fA, fB, o)
		}
		out[i] = row
	}
	return out
}

// pooledVariance estimates the output variance of channel o from the A
// and B evaluations together.
func pooledVariance(fA, fB [][]float64, o int) float64 {
	xs := make([]float64, 0, len(fA)+len(fB))
	for _, row := range fA {
		xs = append(xs, row[o])
	}
	for _, row := range fB {
		xs = append(xs, row[o])
	}
	return stat.Variance(xs, nil)
}
