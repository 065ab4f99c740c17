/*
 * conformer.go, part of pdbio.
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

// Modification records that a conformer is a modified version of a
// standard residue (the MODRES record).
type Modification struct {
	Standard string // name of the unmodified residue
	Comment  string
}

// Conformer is one alternate-location variant of a residue: the
// chemical component name plus the alternate location code, owning its
// atoms. A blank AltLoc marks the primary or only conformer.
type Conformer struct {
	Name     string
	AltLoc   string // "" when primary
	Modified *Modification
	atoms    []*Atom
}

// NewConformer returns a conformer with the given name and alternate
// location code.
func NewConformer(name, altLoc string) *Conformer {
	return &Conformer{Name: name, AltLoc: altLoc}
}

// ID identifies the conformer within its residue.
func (c *Conformer) ID() string {
	if c.AltLoc == "" {
		return c.Name
	}
	return c.Name + ":" + c.AltLoc
}

// AtomCount returns the number of atoms.
func (c *Conformer) AtomCount() int {
	return len(c.atoms)
}

// Atom returns the atom at the given index, or nil.
func (c *Conformer) Atom(index int) *Atom {
	if index < 0 || index >= len(c.atoms) {
		return nil
	}
	return c.atoms[index]
}

// Atoms returns the atoms in order. The returned slice is owned by the
// conformer and must not be modified.
func (c *Conformer) Atoms() []*Atom {
	return c.atoms
}

// AddAtom appends an atom to this conformer.
func (c *Conformer) AddAtom(a *Atom) {
	c.atoms = append(c.atoms, a)
}

// RemoveAtom removes the atom at the given index.
func (c *Conformer) RemoveAtom(index int) {
	if index < 0 || index >= len(c.atoms) {
		return
	}
	c.atoms = append(c.atoms[:index], c.atoms[index+1:]...)
}

// RemoveAtomSerial removes the first atom with the given serial number
// and reports whether one was found.
func (c *Conformer) RemoveAtomSerial(serial int) bool {
	for i, a := range c.atoms {
		if a.Serial == serial {
			c.RemoveAtom(i)
			return true
		}
	}
	return false
}

// RemoveAtomsBy removes all atoms for which the predicate holds.
func (c *Conformer) RemoveAtomsBy(pred func(*Atom) bool) {
	kept := c.atoms[:0]
	for _, a := range c.atoms {
		if !pred(a) {
			kept = append(kept, a)
		}
	}
	c.atoms = kept
}

// TakeAtom removes and returns the atom at the given index, so it can
// be moved to another parent.
func (c *Conformer) TakeAtom(index int) *Atom {
	a := c.Atom(index)
	if a != nil {
		c.RemoveAtom(index)
	}
	return a
}

// Join copies all atoms of the other conformer into this one.
func (c *Conformer) Join(other *Conformer) {
	for _, a := range other.atoms {
		c.AddAtom(a.Copy())
	}
}

// Copy returns a deep copy of the conformer and its atoms.
func (c *Conformer) Copy() *Conformer {
	n := NewConformer(c.Name, c.AltLoc)
	if c.Modified != nil {
		m := *c.Modified
		n.Modified = &m
	}
	for _, a := range c.atoms {
		n.AddAtom(a.Copy())
	}
	return n
}

// ApplyTransformation moves all atoms to their transformed positions.
func (c *Conformer) ApplyTransformation(t *Transformation) {
	for _, a := range c.atoms {
		a.ApplyTransformation(t)
	}
}
