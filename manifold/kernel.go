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

// Kernel scores the similarity of two subspace bases.
type Kernel interface {
	Apply(x, y Point) (float64, error)
}

// Matrix evaluates the kernel on every unordered pair of points,
// including each point with itself. A positive rank p narrows every
// point to its first p columns before scoring; zero keeps all columns.
// Each pair is scored once and mirrored across the diagonal, so the
// returned n x n matrix is symmetric by construction and owned by the
// caller.
func Matrix(k Kernel, points []Point, p int) (*mat.Dense, error) {
	if k == nil {
		return nil, errors.New("Matrix: kernel is nil")
	}
	if len(points) == 0 {
		return nil, errors.New("Matrix: no points given")
	}
	if p < 0 {
		return nil, errors.Newf("Matrix: truncation rank must not be negative; got %v", p)
	}
	blocks := make([]Point, len(points))
	for i, pt := range points {
		if pt.data == nil {
			return nil, errors.Newf("Matrix: point %v is empty", i)
		}
		b, err := pt.truncate(p)
		if err != nil {
			return nil, errors.Wrapf(err, "Matrix: point %v", i)
		}
		blocks[i] = b
	}

	n := len(blocks)
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, err := k.Apply(blocks[i], blocks[j])
			if err != nil {
				return nil, errors.Wrapf(err, "Matrix: pair (%v,%v)", i, j)
			}
			out.Set(i, j, v)
			out.Set(j, i, v)
		}
	}
	return out, nil
}
