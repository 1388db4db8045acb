// CDMASIM - A CDMA air-interface simulator using Walsh-Hadamard spreading codes.
// Copyright (C) 2015 Douglas Hall
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Generates Walsh-Hadamard spreading code matrices.
package walsh

import (
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"
)

var ErrNegativeOrder = xerrors.New("matrix order must be non-negative")

// A Code is one row of a Walsh matrix. Chips are exactly ±1, stored as
// float64 so dot products can use the floats kernels; sums of chips this
// small are always exact.
type Code []float64

// Dot computes the correlation of two codes. For rows of the same matrix
// the result is 0 for distinct rows and the code length for a row against
// itself.
func (c Code) Dot(other Code) float64 {
	return floats.Dot(c, other)
}

type Matrix []Code

// NewMatrix builds the order-k Walsh matrix, 2^k codes of length 2^k,
// by doubling the base [1] matrix k times. Each doubling concatenates
// every row with itself for the top half and with its negation for the
// bottom half.
func NewMatrix(order int) (Matrix, error) {
	if order < 0 {
		return nil, xerrors.Errorf("walsh: order %d: %w", order, ErrNegativeOrder)
	}

	m := Matrix{Code{1}}
	for k := 0; k < order; k++ {
		next := make(Matrix, len(m)<<1)
		for idx, row := range m {
			top := make(Code, len(row)<<1)
			bottom := make(Code, len(row)<<1)

			copy(top, row)
			copy(top[len(row):], row)

			copy(bottom, row)
			for cIdx, chip := range row {
				bottom[len(row)+cIdx] = -chip
			}

			next[idx] = top
			next[idx+len(m)] = bottom
		}
		m = next
	}

	return m, nil
}
