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

// Package manifold scores collections of linear subspaces through
// kernels on the Grassmann manifold. The kernel matrix over a set of
// subspace bases feeds downstream similarity and interpolation tasks.
package manifold

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrTruncation reports a truncation rank exceeding a point's columns.
var ErrTruncation = errors.New("truncation rank exceeds the available columns")

// ErrShape reports operand dimensions under which a kernel is undefined.
var ErrShape = errors.New("mismatched subspace dimensions")

// Point is a coordinate block representing a linear subspace, one
// column per basis vector.
type Point struct {
	data *mat.Dense
}

// NewPoint wraps a coordinate block. The block must be non-empty and
// must not carry more basis vectors than ambient dimensions.
func NewPoint(data *mat.Dense) (Point, error) {
	if data == nil {
		return Point{}, errors.New("NewPoint: data is nil")
	}
	r, c := data.Dims()
	if c > r {
		return Point{}, errors.Newf("NewPoint: %v basis vectors exceed the %v ambient dimensions", c, r)
	}
	return Point{data: data}, nil
}

// Dims returns the ambient dimension and the number of basis vectors.
func (p Point) Dims() (int, int) { return p.data.Dims() }

// Data returns the underlying coordinate block, shared with the point.
func (p Point) Data() *mat.Dense { return p.data }

// truncate narrows the point to its first rank columns as a view of the
// original block. A rank of zero keeps every column.
func (p Point) truncate(rank int) (Point, error) {
	r, c := p.data.Dims()
	if rank == 0 || rank == c {
		return p, nil
	}
	if rank > c {
		return Point{}, errors.Wrapf(ErrTruncation, "point has %v columns, rank %v requested", c, rank)
	}
	return Point{data: p.data.Slice(0, r, 0, rank).(*mat.Dense)}, nil
}
