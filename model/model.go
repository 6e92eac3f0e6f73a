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

// Package model defines the contract between the statistical algorithms
// and the computational model under study.
package model

import (
	"fmt"

	"github.com/0xsoniclabs/alea/logger"
	"github.com/0xsoniclabs/alea/utils"
)

// Evaluator runs a computational model on batches of input points and
// accumulates one output vector per point.
//
//go:generate mockgen -source model.go -destination model_mock.go -package model
type Evaluator interface {
	// Run evaluates the model on the given points. With appendSamples the
	// new outputs extend the accumulated history; otherwise the history is
	// replaced.
	Run(samples [][]float64, appendSamples bool) error
	// QoIList returns the accumulated outputs, one row per evaluated
	// point. The returned slice aliases the evaluator's history; callers
	// that must survive a later Run have to copy it.
	QoIList() [][]float64
}

// FuncModel is an Evaluator backed by an in-process function. The output
// width of the model is fixed by the first evaluated point.
type FuncModel struct {
	name  string
	fn    func([]float64) []float64
	qoi   [][]float64
	width int // number of outputs per point; 0 until the first evaluation
	log   logger.Logger
}

// NewFuncModel creates an evaluator around a vector-valued function.
func NewFuncModel(name string, fn func([]float64) []float64) (*FuncModel, error) {
	if fn == nil {
		return nil, fmt.Errorf("NewFuncModel: model function must not be nil")
	}
	if name == "" {
		name = "FuncModel"
	}
	return &FuncModel{
		name: name,
		fn:   fn,
		log:  logger.NewLogger("info", name),
	}, nil
}

// NewScalarModel creates an evaluator around a scalar-valued function.
func NewScalarModel(name string, fn func([]float64) float64) (*FuncModel, error) {
	if fn == nil {
		return nil, fmt.Errorf("NewScalarModel: model function must not be nil")
	}
	return NewFuncModel(name, func(x []float64) []float64 {
		return []float64{fn(x)}
	})
}

// Run evaluates the model on all given points.
func (m *FuncModel) Run(samples [][]float64, appendSamples bool) error {
	if len(samples) == 0 {
		return fmt.Errorf("Run: no samples to evaluate")
	}
	if !appendSamples {
		m.qoi = nil
	}
	pt := utils.NewProgressTracker(len(samples), m.log)
	for i, x := range samples {
		out := m.fn(x)
		if len(out) == 0 {
			return fmt.Errorf("Run: model %v returned no outputs for point %v", m.name, i)
		}
		if m.width == 0 {
			m.width = len(out)
		} else if len(out) != m.width {
			return fmt.Errorf("Run: model %v returned %v outputs for point %v; want %v", m.name, len(out), i, m.width)
		}
		m.qoi = append(m.qoi, out)
		pt.PrintProgress()
	}
	return nil
}

// QoIList returns the accumulated model outputs.
func (m *FuncModel) QoIList() [][]float64 {
	return m.qoi
}
