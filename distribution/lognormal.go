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

// LogNormal is the distribution of exp(X) for X normal with mean mu and
// standard deviation sigma.
type LogNormal struct {
	dist distuv.LogNormal
}

// NewLogNormal creates a log-normal distribution.
func NewLogNormal(mu, sigma float64) (*LogNormal, error) {
	if math.IsNaN(mu) || math.IsNaN(sigma) || sigma <= 0 {
		return nil, fmt.Errorf("NewLogNormal: standard deviation must be positive; got mu=%v sigma=%v", mu, sigma)
	}
	return &LogNormal{dist: distuv.LogNormal{Mu: mu, Sigma: sigma}}, nil
}

// Dim returns the dimension of a single realization.
func (d *LogNormal) Dim() int { return 1 }

// Sample draws n independent realizations.
func (d *LogNormal) Sample(rg *rand.Rand, n int) []float64 {
	nd := d.dist
	nd.Src = rg
	out := make([]float64, n)
	for i := range out {
		out[i] = nd.Rand()
	}
	return out
}

// CDF evaluates the cumulative distribution function at x.
func (d *LogNormal) CDF(x float64) float64 { return d.dist.CDF(x) }

// Quantile evaluates the inverse CDF at probability p.
func (d *LogNormal) Quantile(p float64) float64 { return d.dist.Quantile(p) }
