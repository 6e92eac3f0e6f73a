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

package distribution

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform is the continuous uniform distribution on the half-open
// interval [min, max).
type Uniform struct {
	dist distuv.Uniform
}

// NewUniform creates a uniform distribution on [min, max).
func NewUniform(min, max float64) (*Uniform, error) {
	if math.IsNaN(min) || math.IsNaN(max) || min >= max {
		return nil, fmt.Errorf("NewUniform: min must be smaller than max; got [%v, %v)", min, max)
	}
	return &Uniform{dist: distuv.Uniform{Min: min, Max: max}}, nil
}

// Dim returns the dimension of a single realization.
func (u *Uniform) Dim() int { return 1 }

// Sample draws n independent realizations.
func (u *Uniform) Sample(rg *rand.Rand, n int) []float64 {
	d := u.dist
	d.Src = rg
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

// CDF evaluates the cumulative distribution function at x.
func (u *Uniform) CDF(x float64) float64 { return u.dist.CDF(x) }

// Quantile evaluates the inverse CDF at probability p.
func (u *Uniform) Quantile(p float64) float64 { return u.dist.Quantile(p) }
