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

// Package strata partitions the unit hypercube into non-overlapping cells
// carrying a volume each. The cells structure variance-reducing sample
// designs and can be subdivided during adaptive refinement.
package strata

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// boundTolerance absorbs round-off when validating that cells stay inside
// the unit hypercube.
const boundTolerance = 1e-9

// Rectangular is a rectangular stratification of the unit hypercube. Each
// stratum is an axis-aligned cell given by its lower corner and its edge
// lengths.
type Rectangular struct {
	seeds  [][]float64 // lower corner per stratum
	widths [][]float64 // edge lengths per stratum
}

// NewRectangular builds an equal-width grid with cells[k] strata along
// dimension k.
func NewRectangular(cells []int) (*Rectangular, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("NewRectangular: at least one dimension is required")
	}
	total := 1
	for k, c := range cells {
		if c < 1 {
			return nil, fmt.Errorf("NewRectangular: dimension %v must have at least one cell; got %v", k, c)
		}
		total *= c
	}
	dim := len(cells)
	seeds := make([][]float64, 0, total)
	widths := make([][]float64, 0, total)
	idx := make([]int, dim)
	for range total {
		seed := make([]float64, dim)
		width := make([]float64, dim)
		for k := range idx {
			width[k] = 1.0 / float64(cells[k])
			seed[k] = float64(idx[k]) * width[k]
		}
		seeds = append(seeds, seed)
		widths = append(widths, width)
		for k := dim - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < cells[k] {
				break
			}
			idx[k] = 0
		}
	}
	return &Rectangular{seeds: seeds, widths: widths}, nil
}

// NewRectangularFromCells builds a stratification from explicit lower
// corners and edge lengths. The cells must lie inside the unit hypercube;
// disjointness is the caller's responsibility.
func NewRectangularFromCells(seeds, widths [][]float64) (*Rectangular, error) {
	if len(seeds) == 0 || len(seeds) != len(widths) {
		return nil, fmt.Errorf("NewRectangularFromCells: need matching non-empty seed and width lists; got %v and %v", len(seeds), len(widths))
	}
	dim := len(seeds[0])
	if dim == 0 {
		return nil, fmt.Errorf("NewRectangularFromCells: cells must have at least one dimension")
	}
	rs := make([][]float64, len(seeds))
	rw := make([][]float64, len(widths))
	for i := range seeds {
		if len(seeds[i]) != dim || len(widths[i]) != dim {
			return nil, fmt.Errorf("NewRectangularFromCells: cell %v has inconsistent dimension", i)
		}
		for k := range seeds[i] {
			if seeds[i][k] < -boundTolerance || widths[i][k] <= 0 ||
				seeds[i][k]+widths[i][k] > 1.0+boundTolerance {
				return nil, fmt.Errorf("NewRectangularFromCells: cell %v exceeds the unit hypercube in dimension %v", i, k)
			}
		}
		rs[i] = append([]float64(nil), seeds[i]...)
		rw[i] = append([]float64(nil), widths[i]...)
	}
	return &Rectangular{seeds: rs, widths: rw}, nil
}

// Size returns the number of strata.
func (r *Rectangular) Size() int { return len(r.seeds) }

// Dim returns the dimension of the stratified hypercube.
func (r *Rectangular) Dim() int { return len(r.seeds[0]) }

// Volume returns the volume of stratum i.
func (r *Rectangular) Volume(i int) float64 {
	v := 1.0
	for _, w := range r.widths[i] {
		v *= w
	}
	return v
}

// Volumes returns the volume of every stratum.
func (r *Rectangular) Volumes() []float64 {
	vs := make([]float64, len(r.seeds))
	for i := range vs {
		vs[i] = r.Volume(i)
	}
	return vs
}

// SampleUnit draws one point uniformly inside stratum i, in unit
// hypercube coordinates.
func (r *Rectangular) SampleUnit(rg *rand.Rand, i int) []float64 {
	u := make([]float64, len(r.seeds[i]))
	for k := range u {
		u[k] = r.seeds[i][k] + r.widths[i][k]*rg.Float64()
	}
	return u
}

// Contains reports whether the unit-hypercube point u lies in stratum i.
// Cells are half-open except at the upper boundary of the hypercube.
func (r *Rectangular) Contains(i int, u []float64) bool {
	if len(u) != len(r.seeds[i]) {
		return false
	}
	for k := range u {
		lo := r.seeds[i][k]
		hi := lo + r.widths[i][k]
		if u[k] < lo {
			return false
		}
		if u[k] >= hi && !(u[k] == hi && hi >= 1.0) {
			return false
		}
	}
	return true
}

// Split halves stratum i along its widest dimension, breaking width ties
// at random. The half containing the unit-hypercube point u keeps index
// i; the other half is appended as a new stratum whose index is
// returned. A nil u keeps the lower half at index i.
func (r *Rectangular) Split(rg *rand.Rand, i int, u []float64) (int, error) {
	if i < 0 || i >= len(r.seeds) {
		return 0, fmt.Errorf("Split: stratum %v out of range [0,%v)", i, len(r.seeds))
	}
	widths := r.widths[i]
	maxW := widths[0]
	for _, w := range widths[1:] {
		if w > maxW {
			maxW = w
		}
	}
	ties := make([]int, 0, len(widths))
	for k, w := range widths {
		if w == maxW {
			ties = append(ties, k)
		}
	}
	dir := ties[rg.Intn(len(ties))]

	half := widths[dir] / 2
	r.widths[i][dir] = half
	newSeed := append([]float64(nil), r.seeds[i]...)
	newWidth := append([]float64(nil), r.widths[i]...)
	mid := r.seeds[i][dir] + half
	if u == nil || u[dir] < mid {
		// existing point stays in the lower half; the upper half is new
		newSeed[dir] = mid
	} else {
		// existing point sits in the upper half; move stratum i up and
		// hand the lower half to the new stratum
		r.seeds[i][dir] = mid
	}
	r.seeds = append(r.seeds, newSeed)
	r.widths = append(r.widths, newWidth)
	return len(r.seeds) - 1, nil
}
