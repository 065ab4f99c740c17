/*
 * chain.go, part of pdbio.
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

// SequencePosition points at one residue of a sequence, by number,
// insertion code and residue name.
type SequencePosition struct {
	Number  int
	InsCode string
	Name    string
}

// DatabaseReference links a chain to its record in a sequence database
// (the DBREF family of records).
type DatabaseReference struct {
	Database    string // database name, e.g. "UNP"
	Accession   string
	IDCode      string              // database ID code
	Local       [2]SequencePosition // first and last residue covered, in this file
	Remote      [2]SequencePosition // the same span in database numbering
	Differences []SequenceDifference
}

// SequenceDifference records one point where the chain's sequence
// deviates from its database reference (the SEQADV record).
type SequenceDifference struct {
	Local   SequencePosition
	Remote  *SequencePosition // nil for insertions with no database counterpart
	Comment string
}

// Chain is an ordered run of residues under one chain identifier.
type Chain struct {
	ID       string
	DBRef    *DatabaseReference
	residues []*Residue
}

// NewChain returns an empty chain with the given identifier.
func NewChain(id string) *Chain {
	return &Chain{ID: id}
}

// ResidueCount returns the number of residues.
func (c *Chain) ResidueCount() int {
	return len(c.residues)
}

// Residue returns the residue at the given index, or nil.
func (c *Chain) Residue(index int) *Residue {
	if index < 0 || index >= len(c.residues) {
		return nil
	}
	return c.residues[index]
}

// Residues returns the residues in order. The returned slice is owned
// by the chain and must not be modified.
func (c *Chain) Residues() []*Residue {
	return c.residues
}

// FindResidue returns the residue with the given number and insertion
// code, or nil.
func (c *Chain) FindResidue(number int, insCode string) *Residue {
	for _, r := range c.residues {
		if r.Number == number && r.InsCode == insCode {
			return r
		}
	}
	return nil
}

// AddResidue appends a residue to this chain.
func (c *Chain) AddResidue(r *Residue) {
	c.residues = append(c.residues, r)
}

// AddAtom places the atom into the residue and conformer named by the
// identifiers, creating either if needed. Files list a residue's atoms
// consecutively, so the last residue is checked before scanning.
func (c *Chain) AddAtom(a *Atom, number int, insCode, name, altLoc string) {
	var r *Residue
	if n := len(c.residues); n > 0 {
		last := c.residues[n-1]
		if last.Number == number && last.InsCode == insCode {
			r = last
		}
	}
	if r == nil {
		r = c.FindResidue(number, insCode)
	}
	if r == nil {
		r = NewResidue(number, insCode)
		c.AddResidue(r)
	}
	r.AddAtom(a, name, altLoc)
}

// RemoveResidue removes the residue at the given index.
func (c *Chain) RemoveResidue(index int) {
	if index < 0 || index >= len(c.residues) {
		return
	}
	c.residues = append(c.residues[:index], c.residues[index+1:]...)
}

// RemoveResiduesBy removes all residues for which the predicate holds.
func (c *Chain) RemoveResiduesBy(pred func(*Residue) bool) {
	kept := c.residues[:0]
	for _, r := range c.residues {
		if !pred(r) {
			kept = append(kept, r)
		}
	}
	c.residues = kept
}

// AtomCount returns the total number of atoms in the chain.
func (c *Chain) AtomCount() int {
	n := 0
	for _, r := range c.residues {
		n += r.AtomCount()
	}
	return n
}

// Atoms returns all atoms in residue order.
func (c *Chain) Atoms() []*Atom {
	var out []*Atom
	for _, r := range c.residues {
		out = append(out, r.Atoms()...)
	}
	return out
}

// Join merges the other chain into this one, residue by residue.
func (c *Chain) Join(other *Chain) {
	for _, or := range other.residues {
		if r := c.FindResidue(or.Number, or.InsCode); r != nil {
			r.Join(or)
		} else {
			c.AddResidue(or.Copy())
		}
	}
}

// Copy returns a deep copy of the chain.
func (c *Chain) Copy() *Chain {
	n := NewChain(c.ID)
	if c.DBRef != nil {
		ref := *c.DBRef
		ref.Differences = append([]SequenceDifference(nil), c.DBRef.Differences...)
		n.DBRef = &ref
	}
	for _, r := range c.residues {
		n.AddResidue(r.Copy())
	}
	return n
}

// ApplyTransformation moves all atoms to their transformed positions.
func (c *Chain) ApplyTransformation(t *Transformation) {
	for _, r := range c.residues {
		r.ApplyTransformation(t)
	}
}
