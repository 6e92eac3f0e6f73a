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

import "gonum.org/v1/gonum/mat"

// ProjectionKernel scores two subspaces by the squared Frobenius norm
// of their basis product, k(X,Y) = ||X^T Y||_F^2.
type ProjectionKernel struct{}

// Apply computes the projection kernel entry for one pair of points.
func (ProjectionKernel) Apply(x, y Point) (float64, error) {
	var prod mat.Dense
	prod.Mul(x.data.T(), y.data)
	f := mat.Norm(&prod, 2)
	return f * f, nil
}
