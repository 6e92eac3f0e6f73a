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

	"github.com/0xsoniclabs/alea/distribution"
	"github.com/0xsoniclabs/alea/logger"
	"github.com/0xsoniclabs/alea/random"
	"github.com/0xsoniclabs/alea/sampling/strata"
	"golang.org/x/exp/rand"
)

// Stratified draws a stratified sample design: a fixed number of points
// per stratum, drawn uniformly inside each cell of the unit hypercube and
// mapped to the physical space through the marginal quantile functions.
// Every point carries a weight of stratum volume over points per stratum.
type Stratified struct {
	strata     *strata.Rectangular
	dists      []distribution.Continuous1D
	rg         *rand.Rand
	drawn      bool
	perStratum int
	samples    [][]float64 // physical space realizations
	samplesU01 [][]float64 // unit hypercube image, same order
	weights    []float64   // per-sample weight
	log        logger.Logger
}

// NewStratified creates a stratified sampler over the given design. The
// number of marginal distributions must match the stratification
// dimension; each marginal maps its unit coordinate through its quantile
// function.
func NewStratified(st *strata.Rectangular, dists []distribution.Continuous1D, state random.State) (*Stratified, error) {
	if st == nil {
		return nil, fmt.Errorf("NewStratified: stratification is nil")
	}
	if len(dists) != st.Dim() {
		return nil, fmt.Errorf("NewStratified: got %v marginals for a %v-dimensional stratification", len(dists), st.Dim())
	}
	for i, d := range dists {
		if d == nil {
			return nil, fmt.Errorf("NewStratified: marginal %v is nil", i)
		}
	}
	rg, err := random.Process(state)
	if err != nil {
		return nil, fmt.Errorf("NewStratified: %v", err)
	}
	return &Stratified{
		strata: st,
		dists:  append([]distribution.Continuous1D(nil), dists...),
		rg:     rg,
		log:    logger.NewLogger("info", "Stratified"),
	}, nil
}

// Run draws perStratum points in every stratum. The design can be drawn
// only once; adaptive growth afterwards is the job of RefinedStratified.
func (s *Stratified) Run(perStratum int) error {
	if perStratum <= 0 {
		return fmt.Errorf("Run: points per stratum must be positive; got %v", perStratum)
	}
	if s.drawn {
		return fmt.Errorf("Run: design already drawn")
	}
	st := s.strata
	n := st.Size() * perStratum
	samples := make([][]float64, 0, n)
	samplesU01 := make([][]float64, 0, n)
	weights := make([]float64, 0, n)
	for i := 0; i < st.Size(); i++ {
		w := st.Volume(i) / float64(perStratum)
		for range perStratum {
			u := st.SampleUnit(s.rg, i)
			x, err := s.transformPoint(u)
			if err != nil {
				return fmt.Errorf("Run: %v", err)
			}
			samples = append(samples, x)
			samplesU01 = append(samplesU01, u)
			weights = append(weights, w)
		}
	}
	s.samples = samples
	s.samplesU01 = samplesU01
	s.weights = weights
	s.perStratum = perStratum
	s.drawn = true
	s.log.Debugf("Run: drew %v points across %v strata", n, st.Size())
	return nil
}

// transformPoint maps a unit-hypercube point to the physical space
// through the marginal quantile functions. It fails if a marginal lacks
// the quantile capability.
func (s *Stratified) transformPoint(u []float64) ([]float64, error) {
	x := make([]float64, len(u))
	for k := range u {
		q, ok := s.dists[k].(distribution.Quantiler)
		if !ok {
			return nil, fmt.Errorf("marginal %v of type %T has no quantile function", k, s.dists[k])
		}
		x[k] = q.Quantile(u[k])
	}
	return x, nil
}

// appendRefined adds one refined point that was drawn in the given
// stratum and refreshes the weights of the strata touched by the
// preceding split.
func (s *Stratified) appendRefined(u, x []float64, oldStratum, newStratum int) {
	s.samples = append(s.samples, x)
	s.samplesU01 = append(s.samplesU01, u)
	s.weights[oldStratum] = s.strata.Volume(oldStratum)
	s.weights = append(s.weights, s.strata.Volume(newStratum))
}

// Strata returns the underlying stratification.
func (s *Stratified) Strata() *strata.Rectangular { return s.strata }

// Samples returns the drawn physical-space points; the slice aliases the
// design's history.
func (s *Stratified) Samples() [][]float64 { return s.samples }

// SamplesU01 returns the unit-hypercube image of the drawn points.
func (s *Stratified) SamplesU01() [][]float64 { return s.samplesU01 }

// Weights returns the per-point weights. Weights of a stratum's points
// sum to the stratum volume, so all weights sum to 1 over a full design.
func (s *Stratified) Weights() []float64 { return s.weights }

// Count returns the number of points drawn so far.
func (s *Stratified) Count() int { return len(s.samples) }

// Dim returns the dimension of the design.
func (s *Stratified) Dim() int { return s.strata.Dim() }
