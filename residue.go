/*
 * residue.go, part of pdbio.
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

import "fmt"

// Residue groups the conformers that share one sequence position,
// identified by number plus insertion code.
type Residue struct {
	Number     int
	InsCode    string // "" when absent
	conformers []*Conformer
}

// NewResidue returns an empty residue with the given identifier.
func NewResidue(number int, insCode string) *Residue {
	return &Residue{Number: number, InsCode: insCode}
}

// ID identifies the residue within its chain.
func (r *Residue) ID() string {
	if r.InsCode == "" {
		return fmt.Sprintf("%d", r.Number)
	}
	return fmt.Sprintf("%d%s", r.Number, r.InsCode)
}

// Name returns the name of the first conformer, the common case of a
// residue without alternate locations. Empty for an empty residue.
func (r *Residue) Name() string {
	if len(r.conformers) == 0 {
		return ""
	}
	return r.conformers[0].Name
}

// ConformerCount returns the number of conformers.
func (r *Residue) ConformerCount() int {
	return len(r.conformers)
}

// Conformer returns the conformer at the given index, or nil.
func (r *Residue) Conformer(index int) *Conformer {
	if index < 0 || index >= len(r.conformers) {
		return nil
	}
	return r.conformers[index]
}

// Conformers returns the conformers in order. The returned slice is
// owned by the residue and must not be modified.
func (r *Residue) Conformers() []*Conformer {
	return r.conformers
}

// FindConformer returns the conformer with the given name and
// alternate location, or nil.
func (r *Residue) FindConformer(name, altLoc string) *Conformer {
	for _, c := range r.conformers {
		if c.Name == name && c.AltLoc == altLoc {
			return c
		}
	}
	return nil
}

// AddConformer appends a conformer to this residue.
func (r *Residue) AddConformer(c *Conformer) {
	r.conformers = append(r.conformers, c)
}

// AddAtom places the atom into the conformer with the given name and
// alternate location, creating the conformer if needed.
func (r *Residue) AddAtom(a *Atom, name, altLoc string) {
	c := r.FindConformer(name, altLoc)
	if c == nil {
		c = NewConformer(name, altLoc)
		r.AddConformer(c)
	}
	c.AddAtom(a)
}

// RemoveConformer removes the conformer at the given index.
func (r *Residue) RemoveConformer(index int) {
	if index < 0 || index >= len(r.conformers) {
		return
	}
	r.conformers = append(r.conformers[:index], r.conformers[index+1:]...)
}

// RemoveConformersBy removes all conformers for which the predicate
// holds.
func (r *Residue) RemoveConformersBy(pred func(*Conformer) bool) {
	kept := r.conformers[:0]
	for _, c := range r.conformers {
		if !pred(c) {
			kept = append(kept, c)
		}
	}
	r.conformers = kept
}

// AtomCount returns the total number of atoms over all conformers.
func (r *Residue) AtomCount() int {
	n := 0
	for _, c := range r.conformers {
		n += c.AtomCount()
	}
	return n
}

// Atoms returns all atoms in conformer order.
func (r *Residue) Atoms() []*Atom {
	var out []*Atom
	for _, c := range r.conformers {
		out = append(out, c.atoms...)
	}
	return out
}

// ReshuffleConformers merges a lone blank-altloc conformer into the
// lettered conformers that share its name. Readers call this so that
// atoms recorded once but shared by every alternate location (typical
// for backbone atoms) end up in each variant.
func (r *Residue) ReshuffleConformers() {
	if len(r.conformers) < 2 {
		return
	}
	var blank *Conformer
	blankAt := -1
	for i, c := range r.conformers {
		if c.AltLoc == "" {
			if blank != nil {
				return // more than one blank conformer, leave as is
			}
			blank = c
			blankAt = i
		}
	}
	if blank == nil {
		return
	}
	for _, c := range r.conformers {
		if c == blank || c.Name != blank.Name {
			continue
		}
		for _, a := range blank.atoms {
			c.AddAtom(a.Copy())
		}
	}
	r.RemoveConformer(blankAt)
}

// Join merges the other residue into this one, conformer by conformer.
func (r *Residue) Join(other *Residue) {
	for _, oc := range other.conformers {
		if c := r.FindConformer(oc.Name, oc.AltLoc); c != nil {
			c.Join(oc)
		} else {
			r.AddConformer(oc.Copy())
		}
	}
}

// Copy returns a deep copy of the residue.
func (r *Residue) Copy() *Residue {
	n := NewResidue(r.Number, r.InsCode)
	for _, c := range r.conformers {
		n.AddConformer(c.Copy())
	}
	return n
}

// ApplyTransformation moves all atoms to their transformed positions.
func (r *Residue) ApplyTransformation(t *Transformation) {
	for _, c := range r.conformers {
		c.ApplyTransformation(t)
	}
}
