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

	"golang.org/x/exp/rand"
)

// JointIndependent is a multivariate distribution assembled from
// independent univariate marginals.
type JointIndependent struct {
	marginals []Continuous1D
}

// NewJointIndependent creates a joint distribution over the given
// marginals. The marginal order defines the component order of every
// realization.
func NewJointIndependent(marginals []Continuous1D) (*JointIndependent, error) {
	if len(marginals) == 0 {
		return nil, fmt.Errorf("NewJointIndependent: at least one marginal is required")
	}
	for i, m := range marginals {
		if m == nil {
			return nil, fmt.Errorf("NewJointIndependent: marginal %v is nil", i)
		}
	}
	return &JointIndependent{marginals: append([]Continuous1D(nil), marginals...)}, nil
}

// Dim returns the number of marginals.
func (j *JointIndependent) Dim() int { return len(j.marginals) }

// Marginals returns the marginal distributions in component order.
func (j *JointIndependent) Marginals() []Continuous1D {
	return append([]Continuous1D(nil), j.marginals...)
}

// Sample draws n realizations. Component k of all realizations is drawn
// from marginal k before the next marginal is consulted, so column k of
// the result matches a standalone draw from marginal k under the same
// generator state.
func (j *JointIndependent) Sample(rg *rand.Rand, n int) [][]float64 {
	dim := len(j.marginals)
	cols := make([][]float64, dim)
	for k, m := range j.marginals {
		cols[k] = m.Sample(rg, n)
	}
	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, dim)
		for k := range cols {
			row[k] = cols[k][i]
		}
		rows[i] = row
	}
	return rows
}

// MarginalCDF evaluates the CDF of component i at x. It fails if the
// marginal does not carry a CDF capability.
func (j *JointIndependent) MarginalCDF(i int, x float64) (float64, error) {
	if i < 0 || i >= len(j.marginals) {
		return 0, fmt.Errorf("MarginalCDF: component %v out of range [0,%v)", i, len(j.marginals))
	}
	c, ok := j.marginals[i].(CDFer)
	if !ok {
		return 0, fmt.Errorf("MarginalCDF: marginal %v of type %T has no CDF", i, j.marginals[i])
	}
	return c.CDF(x), nil
}
