/*
 * transformation.go, part of pdbio.
 *
 * Copyright 2024 The pdbio authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package pdbio

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Transformation is a 3x3 linear part plus a translation vector. It
// backs the SCALE, ORIGX and MTRIX record families; a slot is either
// fully present as one of these or absent, partial matrices are not
// representable.
type Transformation struct {
	lin   *mat.Dense // always 3x3
	trans [3]float64
}

// Identity returns the identity transformation.
func Identity() *Transformation {
	return &Transformation{
		lin: mat.NewDense(3, 3, []float64{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		}),
	}
}

// ScaleTransform returns a transformation scaling each axis
// independently.
func ScaleTransform(x, y, z float64) *Transformation {
	return &Transformation{
		lin: mat.NewDense(3, 3, []float64{
			x, 0, 0,
			0, y, 0,
			0, 0, z,
		}),
	}
}

// Translation returns a pure translation.
func Translation(x, y, z float64) *Transformation {
	t := Identity()
	t.trans = [3]float64{x, y, z}
	return t
}

// RotationZ returns a rotation of deg degrees around the z axis.
func RotationZ(deg float64) *Transformation {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return &Transformation{
		lin: mat.NewDense(3, 3, []float64{
			c, -s, 0,
			s, c, 0,
			0, 0, 1,
		}),
	}
}

// NewTransformation builds a transformation from three rows of four
// values each, linear part first and translation last, the layout the
// fixed-column record family uses.
func NewTransformation(rows [3][4]float64) *Transformation {
	t := &Transformation{lin: mat.NewDense(3, 3, nil)}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.lin.Set(i, j, rows[i][j])
		}
		t.trans[i] = rows[i][3]
	}
	return t
}

// Row returns row i (0-2) in record layout: three linear coefficients
// followed by the translation component.
func (t *Transformation) Row(i int) [4]float64 {
	return [4]float64{t.lin.At(i, 0), t.lin.At(i, 1), t.lin.At(i, 2), t.trans[i]}
}

// Apply transforms the given position.
func (t *Transformation) Apply(x, y, z float64) (float64, float64, float64) {
	v := mat.NewVecDense(3, []float64{x, y, z})
	var out mat.VecDense
	out.MulVec(t.lin, v)
	return out.AtVec(0) + t.trans[0], out.AtVec(1) + t.trans[1], out.AtVec(2) + t.trans[2]
}

// Combine returns the transformation equivalent to applying o first and
// then t.
func (t *Transformation) Combine(o *Transformation) *Transformation {
	var lin mat.Dense
	lin.Mul(t.lin, o.lin)
	ot := mat.NewVecDense(3, []float64{o.trans[0], o.trans[1], o.trans[2]})
	var moved mat.VecDense
	moved.MulVec(t.lin, ot)
	return &Transformation{
		lin: &lin,
		trans: [3]float64{
			moved.AtVec(0) + t.trans[0],
			moved.AtVec(1) + t.trans[1],
			moved.AtVec(2) + t.trans[2],
		},
	}
}

// Copy returns a deep copy.
func (t *Transformation) Copy() *Transformation {
	c := &Transformation{lin: mat.DenseCopyOf(t.lin)}
	c.trans = t.trans
	return c
}

// Equal reports whether two transformations match within tol.
func (t *Transformation) Equal(o *Transformation, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(t.lin.At(i, j)-o.lin.At(i, j)) > tol {
				return false
			}
		}
		if math.Abs(t.trans[i]-o.trans[i]) > tol {
			return false
		}
	}
	return true
}

// NCSTransform is a non-crystallographic symmetry operator: a
// transformation plus the serial number of its MTRIX slot and the flag
// telling whether the transformed coordinates are already contained in
// the file.
type NCSTransform struct {
	Serial int
	Given  bool
	*Transformation
}
