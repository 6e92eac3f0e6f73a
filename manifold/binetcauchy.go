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

package manifold

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// BinetCauchyKernel scores two subspaces by the squared determinant of
// their basis product, k(X,Y) = det(X^T Y)^2.
type BinetCauchyKernel struct{}

// Apply computes the Binet-Cauchy kernel entry for one pair of points.
// Both bases must span subspaces of the same dimension, otherwise the
// product has no determinant.
func (BinetCauchyKernel) Apply(x, y Point) (float64, error) {
	var prod mat.Dense
	prod.Mul(x.data.T(), y.data)
	r, c := prod.Dims()
	if r != c {
		return 0, errors.Wrapf(ErrShape, "basis product is %vx%v", r, c)
	}
	d := mat.Det(&prod)
	return d * d, nil
}
