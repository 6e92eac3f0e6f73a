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
	"math"

	"github.com/0xsoniclabs/alea/logger"
	"github.com/0xsoniclabs/alea/model"
	"github.com/0xsoniclabs/alea/random"
	"github.com/0xsoniclabs/alea/sampling/strata"
	"github.com/0xsoniclabs/alea/utils"
	"github.com/0xsoniclabs/alea/utils/analytics"
	"golang.org/x/exp/rand"
)

// Refiner picks the stratum a refinement step should subdivide. Row i of
// qoi holds the model output of the point seeded in stratum i.
type Refiner interface {
	Pick(rg *rand.Rand, st *strata.Rectangular, qoi [][]float64) (int, error)
}

// VolumeRefiner picks strata at random with probability proportional to
// their volume, ignoring the model outputs.
type VolumeRefiner struct{}

// Pick draws a stratum index proportional to stratum volume.
func (VolumeRefiner) Pick(rg *rand.Rand, st *strata.Rectangular, qoi [][]float64) (int, error) {
	return pickByWeight(rg, st.Volumes())
}

// DeviationRefiner scores each stratum by its volume times the absolute
// deviation of the stratum's output from the running output mean and
// splits the highest-scoring stratum, breaking ties at random. The
// refinement signal is the first output column. Constant model outputs
// degrade to a volume-proportional pick. An instance accumulates running
// statistics and must not be shared between engines.
type DeviationRefiner struct {
	stats analytics.IncrementalStats
	seen  int
}

// Pick selects the stratum with the strongest volume-weighted deviation
// signal.
func (r *DeviationRefiner) Pick(rg *rand.Rand, st *strata.Rectangular, qoi [][]float64) (int, error) {
	if len(qoi) != st.Size() {
		return 0, fmt.Errorf("Pick: got %v output rows for %v strata", len(qoi), st.Size())
	}
	for ; r.seen < len(qoi); r.seen++ {
		if len(qoi[r.seen]) == 0 {
			return 0, fmt.Errorf("Pick: output row %v is empty", r.seen)
		}
		r.stats.Update(qoi[r.seen][0])
	}
	mean := r.stats.Mean()
	best := math.Inf(-1)
	ties := make([]int, 0, 4)
	for i := range qoi {
		score := st.Volume(i) * math.Abs(qoi[i][0]-mean)
		if score > best {
			best = score
			ties = ties[:0]
		}
		if score == best {
			ties = append(ties, i)
		}
	}
	if best <= 0 {
		return pickByWeight(rg, st.Volumes())
	}
	return ties[rg.Intn(len(ties))], nil
}

// pickByWeight draws an index with probability proportional to the given
// non-negative weights. The mass is accumulated with Kahan's summation so
// many small strata volumes do not lose probability.
func pickByWeight(rg *rand.Rand, weights []float64) (int, error) {
	total := 0.0
	c := 0.0
	for _, w := range weights {
		y := w - c
		t := total + y
		c = (t - total) - y
		total = t
	}
	if !(total > 0) {
		return 0, fmt.Errorf("pickByWeight: weights carry no positive mass")
	}
	u := rg.Float64() * total
	sum := 0.0
	c = 0.0
	for i, w := range weights {
		y := w - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		if u < sum {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}

// RefinedStratified grows a stratified design adaptively. Each step picks
// a stratum through the refiner, halves it, draws one point in the empty
// half, and evaluates the model on the new point. The design keeps one
// point per stratum throughout; point i always sits in stratum i.
type RefinedStratified struct {
	design  *Stratified
	eval    model.Evaluator
	refiner Refiner
	rg      *rand.Rand
	qoi     [][]float64 // snapshot of model outputs, one row per point
	failed  error       // set after an aborted run; the engine refuses further work
	log     logger.Logger
}

// NewRefinedStratified creates a refinement engine over a stratified
// design that was drawn with exactly one point per stratum.
func NewRefinedStratified(design *Stratified, eval model.Evaluator, refiner Refiner, state random.State) (*RefinedStratified, error) {
	if design == nil {
		return nil, fmt.Errorf("NewRefinedStratified: design is nil")
	}
	if !design.drawn || design.perStratum != 1 {
		return nil, fmt.Errorf("NewRefinedStratified: design must be drawn with exactly one point per stratum")
	}
	if eval == nil {
		return nil, fmt.Errorf("NewRefinedStratified: evaluator is nil")
	}
	if refiner == nil {
		return nil, fmt.Errorf("NewRefinedStratified: refiner is nil")
	}
	rg, err := random.Process(state)
	if err != nil {
		return nil, fmt.Errorf("NewRefinedStratified: %v", err)
	}
	return &RefinedStratified{
		design:  design,
		eval:    eval,
		refiner: refiner,
		rg:      rg,
		log:     logger.NewLogger("info", "RefinedStratified"),
	}, nil
}

// Run refines the design until it holds totalSamples points, one new
// point per step. On the first call the initial design is evaluated
// first. A failing model evaluation aborts the run and poisons the
// engine.
func (r *RefinedStratified) Run(totalSamples int) error {
	if r.failed != nil {
		return fmt.Errorf("Run: refinement previously failed: %v", r.failed)
	}
	cur := r.design.Count()
	if totalSamples <= cur {
		return fmt.Errorf("Run: target of %v samples must exceed the current %v", totalSamples, cur)
	}
	if r.qoi == nil {
		if err := r.eval.Run(r.design.Samples(), false); err != nil {
			r.failed = err
			return fmt.Errorf("Run: initial model evaluation failed; %v", err)
		}
		if err := r.snapshot(); err != nil {
			r.failed = err
			return fmt.Errorf("Run: %v", err)
		}
	}

	r.log.Noticef("refining design from %v to %v samples", cur, totalSamples)
	pt := utils.NewProgressTracker(totalSamples-cur, r.log)
	st := r.design.Strata()
	for r.design.Count() < totalSamples {
		pick, err := r.refiner.Pick(r.rg, st, r.qoi)
		if err != nil {
			r.failed = err
			return fmt.Errorf("Run: %v", err)
		}
		newIdx, err := st.Split(r.rg, pick, r.design.samplesU01[pick])
		if err != nil {
			r.failed = err
			return fmt.Errorf("Run: %v", err)
		}
		u := st.SampleUnit(r.rg, newIdx)
		x, err := r.design.transformPoint(u)
		if err != nil {
			r.failed = err
			return fmt.Errorf("Run: %v", err)
		}
		if err := r.eval.Run([][]float64{x}, true); err != nil {
			r.failed = err
			return fmt.Errorf("Run: model evaluation failed; %v", err)
		}
		r.design.appendRefined(u, x, pick, newIdx)
		if err := r.snapshot(); err != nil {
			r.failed = err
			return fmt.Errorf("Run: %v", err)
		}
		pt.PrintProgress()
	}
	r.log.Noticef("refinement finished with %v samples", r.design.Count())
	return nil
}

// snapshot copies the evaluator's new output rows into the engine's own
// history, isolating the refiners from later mutation of the evaluator's
// state.
func (r *RefinedStratified) snapshot() error {
	list := r.eval.QoIList()
	if len(list) != r.design.Count() {
		return fmt.Errorf("snapshot: evaluator holds %v outputs for %v design points", len(list), r.design.Count())
	}
	for i := len(r.qoi); i < len(list); i++ {
		r.qoi = append(r.qoi, append([]float64(nil), list[i]...))
	}
	return nil
}

// Outputs returns the engine's snapshot of the model outputs, one row per
// design point.
func (r *RefinedStratified) Outputs() [][]float64 { return r.qoi }

// Design returns the refined stratified design.
func (r *RefinedStratified) Design() *Stratified { return r.design }
