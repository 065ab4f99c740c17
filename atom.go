/*
 * atom.go, part of pdbio.
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

import "gonum.org/v1/gonum/mat"

// Atom is the leaf of the hierarchy. Hetero atoms live in the same tree
// as standard atoms, distinguished only by the Hetero flag.
type Atom struct {
	Serial    int
	Name      string
	X, Y, Z   float64
	Occupancy float64
	BFactor   float64 // isotropic temperature factor
	Element   string
	Charge    int
	Hetero    bool
	// The six independent values of the anisotropic temperature
	// tensor in record order: U11, U22, U33, U12, U13, U23. Present
	// fully or not at all.
	aniso    [6]float64
	hasAniso bool
}

// NewAtom returns an atom with occupancy 1.
func NewAtom(serial int, name string, x, y, z float64) *Atom {
	return &Atom{Serial: serial, Name: name, X: x, Y: y, Z: z, Occupancy: 1}
}

// Pos returns the position of the atom.
func (a *Atom) Pos() (float64, float64, float64) {
	return a.X, a.Y, a.Z
}

// Aniso returns the six anisotropic temperature factors (U11, U22,
// U33, U12, U13, U23) and whether they are present.
func (a *Atom) Aniso() ([6]float64, bool) {
	return a.aniso, a.hasAniso
}

// SetAniso sets the anisotropic temperature factors, in the same
// U11, U22, U33, U12, U13, U23 order Aniso returns them.
func (a *Atom) SetAniso(u [6]float64) {
	a.aniso = u
	a.hasAniso = true
}

// ClearAniso removes the anisotropic temperature factors.
func (a *Atom) ClearAniso() {
	a.aniso = [6]float64{}
	a.hasAniso = false
}

// AnisoTensor returns the anisotropic temperature factors as a
// symmetric 3x3 matrix, or nil when absent.
func (a *Atom) AnisoTensor() *mat.SymDense {
	if !a.hasAniso {
		return nil
	}
	t := mat.NewSymDense(3, nil)
	t.SetSym(0, 0, a.aniso[0])
	t.SetSym(1, 1, a.aniso[1])
	t.SetSym(2, 2, a.aniso[2])
	t.SetSym(0, 1, a.aniso[3])
	t.SetSym(0, 2, a.aniso[4])
	t.SetSym(1, 2, a.aniso[5])
	return t
}

// Copy returns a deep copy of the atom.
func (a *Atom) Copy() *Atom {
	c := *a
	return &c
}

// Corresponds reports whether two atoms describe the same atom,
// possibly with different coordinates, as needed for comparing the
// models of an ensemble.
func (a *Atom) Corresponds(b *Atom) bool {
	return a.Serial == b.Serial && a.Name == b.Name &&
		a.Element == b.Element && a.Hetero == b.Hetero
}

// ApplyTransformation moves the atom to its transformed position.
func (a *Atom) ApplyTransformation(t *Transformation) {
	a.X, a.Y, a.Z = t.Apply(a.X, a.Y, a.Z)
}
