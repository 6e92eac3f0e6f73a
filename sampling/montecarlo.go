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

// Package sampling draws sample designs from probability distributions:
// plain Monte Carlo, stratified designs, and adaptive refinement of
// stratified designs.
package sampling

import (
	"fmt"

	"github.com/0xsoniclabs/alea/distribution"
	"github.com/0xsoniclabs/alea/logger"
	"github.com/0xsoniclabs/alea/random"
	"golang.org/x/exp/rand"
)

// variant fixes the sample assembly strategy of a MonteCarlo sampler at
// construction time.
type variant int

const (
	homogeneous1D      variant = iota // ordered list of univariate distributions
	singleMultivariate                // one multivariate distribution
	heterogeneous                     // mixed list of uni- and multivariate distributions
)

// mixedBlock maps one distribution of a heterogeneous list to its column
// range in the assembled sample rows. Exactly one of uni and multi is set.
type mixedBlock struct {
	uni    distribution.Continuous1D
	multi  distribution.Multivariate
	offset int // first column of the block
	dim    int // number of columns of the block
}

// MonteCarlo draws independent identically distributed realizations from
// one or several distributions. Repeated Run calls append new
// realizations below the existing ones; prior realizations are never
// rewritten.
type MonteCarlo struct {
	kind    variant
	uni     []distribution.Continuous1D // set for homogeneous1D
	multi   distribution.Multivariate   // set for singleMultivariate
	mixed   []mixedBlock                // set for heterogeneous
	dim     int                         // columns of one realization
	rg      *rand.Rand
	samples [][]float64
	u01     [][]float64
	log     logger.Logger
}

// NewMonteCarlo creates a sampler over an ordered list of univariate
// distributions. Column k of every realization is drawn from
// distribution k. When n is positive, n realizations are drawn right
// away; with n == 0 the sampler starts empty and waits for Run.
func NewMonteCarlo(dists []distribution.Continuous1D, n int, state random.State) (*MonteCarlo, error) {
	if len(dists) == 0 {
		return nil, fmt.Errorf("NewMonteCarlo: at least one distribution is required")
	}
	for i, d := range dists {
		if d == nil {
			return nil, fmt.Errorf("NewMonteCarlo: distribution %v is nil", i)
		}
	}
	if n < 0 {
		return nil, fmt.Errorf("NewMonteCarlo: initial sample count must not be negative; got %v", n)
	}
	rg, err := random.Process(state)
	if err != nil {
		return nil, fmt.Errorf("NewMonteCarlo: %v", err)
	}
	mc := &MonteCarlo{
		kind: homogeneous1D,
		uni:  append([]distribution.Continuous1D(nil), dists...),
		dim:  len(dists),
		rg:   rg,
		log:  logger.NewLogger("info", "MonteCarlo"),
	}
	if n > 0 {
		if err := mc.Run(n); err != nil {
			return nil, fmt.Errorf("NewMonteCarlo: %v", err)
		}
	}
	return mc, nil
}

// NewMultivariateMonteCarlo creates a sampler over a single multivariate
// distribution. When n is positive, n realizations are drawn right away.
func NewMultivariateMonteCarlo(dist distribution.Multivariate, n int, state random.State) (*MonteCarlo, error) {
	if dist == nil {
		return nil, fmt.Errorf("NewMultivariateMonteCarlo: distribution is nil")
	}
	if n < 0 {
		return nil, fmt.Errorf("NewMultivariateMonteCarlo: initial sample count must not be negative; got %v", n)
	}
	rg, err := random.Process(state)
	if err != nil {
		return nil, fmt.Errorf("NewMultivariateMonteCarlo: %v", err)
	}
	mc := &MonteCarlo{
		kind:  singleMultivariate,
		multi: dist,
		dim:   dist.Dim(),
		rg:    rg,
		log:   logger.NewLogger("info", "MonteCarlo"),
	}
	if n > 0 {
		if err := mc.Run(n); err != nil {
			return nil, fmt.Errorf("NewMultivariateMonteCarlo: %v", err)
		}
	}
	return mc, nil
}

// NewMixedMonteCarlo creates a sampler over an ordered list mixing
// univariate and multivariate distributions. Every realization is the
// concatenation of one draw per distribution, in list order. When n is
// positive, n realizations are drawn right away.
func NewMixedMonteCarlo(dists []distribution.Distribution, n int, state random.State) (*MonteCarlo, error) {
	if len(dists) == 0 {
		return nil, fmt.Errorf("NewMixedMonteCarlo: at least one distribution is required")
	}
	blocks := make([]mixedBlock, 0, len(dists))
	dim := 0
	for i, d := range dists {
		switch v := d.(type) {
		case nil:
			return nil, fmt.Errorf("NewMixedMonteCarlo: distribution %v is nil", i)
		case distribution.Continuous1D:
			blocks = append(blocks, mixedBlock{uni: v, offset: dim, dim: 1})
			dim++
		case distribution.Multivariate:
			blocks = append(blocks, mixedBlock{multi: v, offset: dim, dim: v.Dim()})
			dim += v.Dim()
		default:
			return nil, fmt.Errorf("NewMixedMonteCarlo: distribution %v of type %T supports no sampling", i, d)
		}
	}
	if n < 0 {
		return nil, fmt.Errorf("NewMixedMonteCarlo: initial sample count must not be negative; got %v", n)
	}
	rg, err := random.Process(state)
	if err != nil {
		return nil, fmt.Errorf("NewMixedMonteCarlo: %v", err)
	}
	mc := &MonteCarlo{
		kind:  heterogeneous,
		mixed: blocks,
		dim:   dim,
		rg:    rg,
		log:   logger.NewLogger("info", "MonteCarlo"),
	}
	if n > 0 {
		if err := mc.Run(n); err != nil {
			return nil, fmt.Errorf("NewMixedMonteCarlo: %v", err)
		}
	}
	return mc, nil
}

// Run draws n new realizations and appends them to the sample history.
func (mc *MonteCarlo) Run(n int) error {
	if n <= 0 {
		return fmt.Errorf("Run: number of samples must be positive; got %v", n)
	}
	var rows [][]float64
	switch mc.kind {
	case homogeneous1D:
		rows = mc.drawHomogeneous(n)
	case singleMultivariate:
		rows = mc.multi.Sample(mc.rg, n)
	case heterogeneous:
		rows = mc.drawMixed(n)
	}
	mc.samples = append(mc.samples, rows...)
	mc.log.Debugf("Run: drew %v new samples; total %v", n, len(mc.samples))
	return nil
}

// drawHomogeneous draws n realizations from every univariate distribution
// in turn; column k of the result holds distribution k's draws.
func (mc *MonteCarlo) drawHomogeneous(n int) [][]float64 {
	cols := make([][]float64, len(mc.uni))
	for k, d := range mc.uni {
		cols[k] = d.Sample(mc.rg, n)
	}
	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, len(cols))
		for k := range cols {
			row[k] = cols[k][i]
		}
		rows[i] = row
	}
	return rows
}

// drawMixed draws n realizations per block and concatenates each
// realization in distribution order.
func (mc *MonteCarlo) drawMixed(n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, mc.dim)
	}
	for _, b := range mc.mixed {
		if b.multi != nil {
			draw := b.multi.Sample(mc.rg, n)
			for i := range rows {
				copy(rows[i][b.offset:b.offset+b.dim], draw[i])
			}
		} else {
			draw := b.uni.Sample(mc.rg, n)
			for i := range rows {
				rows[i][b.offset] = draw[i]
			}
		}
	}
	return rows
}

// TransformU01 maps every drawn realization to the unit hypercube through
// the componentwise CDFs and stores the result. The image is not
// refreshed when new samples are appended later; callers must invoke
// TransformU01 again after a Run (see SamplesU01).
func (mc *MonteCarlo) TransformU01() error {
	switch mc.kind {
	case homogeneous1D:
		return mc.transformHomogeneous()
	case singleMultivariate:
		return mc.transformMultivariate()
	default:
		return mc.transformMixed()
	}
}

func (mc *MonteCarlo) transformHomogeneous() error {
	cdfs := make([]distribution.CDFer, len(mc.uni))
	for k, d := range mc.uni {
		c, ok := d.(distribution.CDFer)
		if !ok {
			return fmt.Errorf("TransformU01: distribution %v of type %T has no CDF", k, d)
		}
		cdfs[k] = c
	}
	u := make([][]float64, len(mc.samples))
	for i, row := range mc.samples {
		ui := make([]float64, len(row))
		for k := range row {
			ui[k] = cdfs[k].CDF(row[k])
		}
		u[i] = ui
	}
	mc.u01 = u
	return nil
}

func (mc *MonteCarlo) transformMultivariate() error {
	mcdf, ok := mc.multi.(distribution.MarginalCDFer)
	if !ok {
		return fmt.Errorf("TransformU01: distribution of type %T has no componentwise CDF", mc.multi)
	}
	u := make([][]float64, len(mc.samples))
	for i, row := range mc.samples {
		ui := make([]float64, len(row))
		for j := range row {
			v, err := mcdf.MarginalCDF(j, row[j])
			if err != nil {
				return fmt.Errorf("TransformU01: %v", err)
			}
			ui[j] = v
		}
		u[i] = ui
	}
	mc.u01 = u
	return nil
}

func (mc *MonteCarlo) transformMixed() error {
	for k, b := range mc.mixed {
		if b.multi != nil {
			if _, ok := b.multi.(distribution.MarginalCDFer); !ok {
				return fmt.Errorf("TransformU01: distribution %v of type %T has no componentwise CDF", k, b.multi)
			}
		} else {
			if _, ok := b.uni.(distribution.CDFer); !ok {
				return fmt.Errorf("TransformU01: distribution %v of type %T has no CDF", k, b.uni)
			}
		}
	}
	u := make([][]float64, len(mc.samples))
	for i, row := range mc.samples {
		ui := make([]float64, mc.dim)
		for _, b := range mc.mixed {
			if b.multi != nil {
				mcdf := b.multi.(distribution.MarginalCDFer)
				for j := 0; j < b.dim; j++ {
					v, err := mcdf.MarginalCDF(j, row[b.offset+j])
					if err != nil {
						return fmt.Errorf("TransformU01: %v", err)
					}
					ui[b.offset+j] = v
				}
			} else {
				ui[b.offset] = b.uni.(distribution.CDFer).CDF(row[b.offset])
			}
		}
		u[i] = ui
	}
	mc.u01 = u
	return nil
}

// Samples returns all realizations drawn so far; row i is the i-th
// realization. The slice aliases the sampler's history.
func (mc *MonteCarlo) Samples() [][]float64 { return mc.samples }

// SamplesU01 returns the unit-hypercube image computed by the last
// TransformU01 call. The image is stale after appending new samples until
// TransformU01 runs again.
func (mc *MonteCarlo) SamplesU01() [][]float64 { return mc.u01 }

// Count returns the number of realizations drawn so far.
func (mc *MonteCarlo) Count() int { return len(mc.samples) }

// Dim returns the number of columns of one realization.
func (mc *MonteCarlo) Dim() int { return mc.dim }

// Reseed replaces the generator used for upcoming draws. Realizations
// drawn before the call are untouched.
func (mc *MonteCarlo) Reseed(state random.State) error {
	rg, err := random.Process(state)
	if err != nil {
		return fmt.Errorf("Reseed: %v", err)
	}
	mc.rg = rg
	return nil
}
