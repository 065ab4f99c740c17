/*
 * unitcell.go, part of pdbio.
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

// UnitCell holds the crystallographic unit cell: axis lengths in
// Angstrom and angles in degrees.
type UnitCell struct {
	A, B, C            float64
	Alpha, Beta, Gamma float64
}

// NewUnitCell returns a unit cell with the given lengths and angles.
func NewUnitCell(a, b, c, alpha, beta, gamma float64) *UnitCell {
	return &UnitCell{A: a, B: b, C: c, Alpha: alpha, Beta: beta, Gamma: gamma}
}

// Size returns the axis lengths.
func (u *UnitCell) Size() (float64, float64, float64) {
	return u.A, u.B, u.C
}

// FractionalScale returns the axis-scaling transformation mapping
// orthogonal to fractional coordinates for a rectangular cell, the
// matrix the SCALE record family defaults to.
func (u *UnitCell) FractionalScale() *Transformation {
	return ScaleTransform(1/u.A, 1/u.B, 1/u.C)
}
