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

// Package sensitivity estimates how strongly each input variable of a
// model drives the variance of its outputs. It provides the shared
// bootstrap machinery for estimator confidence intervals and a
// variance-based index estimator built on pick-and-freeze designs.
package sensitivity

import (
	"fmt"

	"github.com/0xsoniclabs/alea/distribution"
	"github.com/0xsoniclabs/alea/logger"
	"github.com/0xsoniclabs/alea/model"
	"github.com/0xsoniclabs/alea/random"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a two-sided confidence bound on a point estimate.
type Interval struct {
	Lower float64
	Upper float64
}

// Estimator computes point estimates from (resampled) model outputs. It
// returns one row per estimated quantity with one column per model
// output channel.
type Estimator func(args ...any) ([][]float64, error)

// Sensitivity carries the collaborators every concrete index estimator
// needs: the model evaluator, the input marginals, and a random source.
type Sensitivity struct {
	eval      model.Evaluator
	marginals []distribution.Continuous1D
	rg        *rand.Rand
	log       logger.Logger
}

// New validates the collaborators of an index estimator. The
// distribution must be a single 1-D continuous variable or a jointly
// independent multivariate one; state seeds the estimator's random
// source as in random.Process.
func New(eval model.Evaluator, dist distribution.Distribution, state random.State) (*Sensitivity, error) {
	if eval == nil {
		return nil, fmt.Errorf("New: evaluator is nil")
	}
	var marginals []distribution.Continuous1D
	switch v := dist.(type) {
	case nil:
		return nil, fmt.Errorf("New: distribution is nil")
	case *distribution.JointIndependent:
		marginals = v.Marginals()
	case distribution.Continuous1D:
		marginals = []distribution.Continuous1D{v}
	default:
		return nil, fmt.Errorf("New: distribution of type %T is not supported; want a 1-D continuous or jointly independent distribution", dist)
	}
	rg, err := random.Process(state)
	if err != nil {
		return nil, fmt.Errorf("New: %v", err)
	}
	return &Sensitivity{
		eval:      eval,
		marginals: marginals,
		rg:        rg,
		log:       logger.NewLogger("info", "Sensitivity"),
	}, nil
}

// Dim returns the number of input variables.
func (s *Sensitivity) Dim() int { return len(s.marginals) }

// runModel evaluates the model on a fresh batch, replacing any prior
// evaluator history, and snapshots the outputs. The copy isolates the
// estimator from later mutation of the evaluator's own output list.
func (s *Sensitivity) runModel(samples [][]float64) ([][]float64, error) {
	if err := s.eval.Run(samples, false); err != nil {
		return nil, fmt.Errorf("runModel: %v", err)
	}
	list := s.eval.QoIList()
	if len(list) != len(samples) {
		return nil, fmt.Errorf("runModel: evaluator holds %v outputs for %v samples", len(list), len(samples))
	}
	out := make([][]float64, len(list))
	for i, row := range list {
		out[i] = append([]float64(nil), row...)
	}
	return out, nil
}

// drawMatrix draws n points from the input marginals, one column per
// variable.
func (s *Sensitivity) drawMatrix(n int) [][]float64 {
	cols := make([][]float64, len(s.marginals))
	for k, d := range s.marginals {
		cols[k] = d.Sample(s.rg, n)
	}
	rows := make([][]float64, n)
	for r := range rows {
		row := make([]float64, len(cols))
		for k := range cols {
			row[k] = cols[k][r]
		}
		rows[r] = row
	}
	return rows
}

// resamplerFor builds the bootstrap resampler matching the shape of one
// estimator input. The closures gather rows from the original array on
// every draw instead of copying it up front.
//
// A vector is resampled row-wise with replacement. A matrix is resampled
// within each column independently. For a slice-of-matrices, one index
// grid is drawn per replicate and applied to every matrix, preserving
// the correspondence between output channels within a draw. A nil input
// is handed to the estimator unchanged on every call.
func (s *Sensitivity) resamplerFor(pos int, input any) (func() any, error) {
	switch v := input.(type) {
	case nil:
		return func() any { return nil }, nil
	case []float64:
		n := len(v)
		if n == 0 {
			return nil, fmt.Errorf("Bootstrap: input %v is empty", pos)
		}
		return func() any {
			out := make([]float64, n)
			for i := range out {
				out[i] = v[s.rg.Intn(n)]
			}
			return out
		}, nil
	case [][]float64:
		n := len(v)
		if n == 0 || len(v[0]) == 0 {
			return nil, fmt.Errorf("Bootstrap: input %v is empty", pos)
		}
		m := len(v[0])
		return func() any {
			out := make([][]float64, n)
			for i := range out {
				row := make([]float64, m)
				for j := range row {
					row[j] = v[s.rg.Intn(n)][j]
				}
				out[i] = row
			}
			return out
		}, nil
	case [][][]float64:
		if len(v) == 0 || len(v[0]) == 0 || len(v[0][0]) == 0 {
			return nil, fmt.Errorf("Bootstrap: input %v is empty", pos)
		}
		n := len(v[0])
		m := len(v[0][0])
		return func() any {
			idx := make([]int, n*m)
			for i := range idx {
				idx[i] = s.rg.Intn(n)
			}
			out := make([][][]float64, len(v))
			for k := range out {
				slice := make([][]float64, n)
				for i := range slice {
					row := make([]float64, m)
					for j := range row {
						row[j] = v[k][idx[i*m+j]][j]
					}
					slice[i] = row
				}
				out[k] = slice
			}
			return out
		}, nil
	default:
		return nil, fmt.Errorf("Bootstrap: input %v of type %T cannot be resampled", pos, input)
	}
}

// Bootstrap quantifies the sampling spread of an estimator by
// re-invoking it on resampled inputs. qoiMean carries the point
// estimates in the estimator's own orientation, one row per quantity
// with one column per output channel. Each replicate resamples every
// array-valued input (nil inputs pass through verbatim) and the
// estimates are accumulated per quantity and output channel. The
// half-width of the returned normal-approximation interval is the
// Bessel-corrected standard deviation across replicates scaled by the
// two-sided standard-normal quantile of the confidence level.
//
// The interval grid is indexed output-first: the entry [o][q] bounds
// qoiMean[q][o]. Resamplers are built fresh on every call, so separate
// calls share nothing but the estimator's random source.
func (s *Sensitivity) Bootstrap(estimator Estimator, inputs []any, qoiMean [][]float64, numBootstrap int, confidenceLevel float64) ([][]Interval, error) {
	if estimator == nil {
		return nil, fmt.Errorf("Bootstrap: estimator is nil")
	}
	if numBootstrap <= 0 {
		return nil, fmt.Errorf("Bootstrap: number of bootstrap samples must be positive; got %v", numBootstrap)
	}
	if !(confidenceLevel > 0.0 && confidenceLevel < 1.0) {
		return nil, fmt.Errorf("Bootstrap: confidence level must lie in (0,1); got %v", confidenceLevel)
	}
	nQoI := len(qoiMean)
	if nQoI == 0 {
		return nil, fmt.Errorf("Bootstrap: qoiMean is empty")
	}
	nOut := len(qoiMean[0])
	if nOut == 0 {
		return nil, fmt.Errorf("Bootstrap: qoiMean rows are empty")
	}
	for q, row := range qoiMean {
		if len(row) != nOut {
			return nil, fmt.Errorf("Bootstrap: qoiMean row %v has %v columns; want %v", q, len(row), nOut)
		}
	}

	draws := make([]func() any, len(inputs))
	for pos, in := range inputs {
		draw, err := s.resamplerFor(pos, in)
		if err != nil {
			return nil, err
		}
		draws[pos] = draw
	}

	acc := make([][][]float64, nOut)
	for o := range acc {
		acc[o] = make([][]float64, nQoI)
		for q := range acc[o] {
			acc[o][q] = make([]float64, numBootstrap)
		}
	}
	args := make([]any, len(inputs))
	for b := 0; b < numBootstrap; b++ {
		for pos, draw := range draws {
			args[pos] = draw()
		}
		est, err := estimator(args...)
		if err != nil {
			return nil, fmt.Errorf("Bootstrap: estimator failed on replicate %v; %v", b, err)
		}
		if len(est) != nQoI {
			return nil, fmt.Errorf("Bootstrap: estimator returned %v rows; want %v", len(est), nQoI)
		}
		for q, row := range est {
			if len(row) != nOut {
				return nil, fmt.Errorf("Bootstrap: estimator row %v has %v columns; want %v", q, len(row), nOut)
			}
			for o, val := range row {
				acc[o][q][b] = val
			}
		}
	}

	delta := -distuv.UnitNormal.Quantile((1.0 - confidenceLevel) / 2.0)
	ci := make([][]Interval, nOut)
	for o := range ci {
		ci[o] = make([]Interval, nQoI)
		for q := range ci[o] {
			half := delta * stat.StdDev(acc[o][q], nil)
			ci[o][q] = Interval{
				Lower: qoiMean[q][o] - half,
				Upper: qoiMean[q][o] + half,
			}
		}
	}
	return ci, nil
}
