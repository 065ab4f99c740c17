/*
 * model.go, part of pdbio.
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

// Model holds the chains of one coordinate set. Single-structure files
// have exactly one model; NMR ensembles have many, each with the same
// atoms at different positions.
type Model struct {
	Number int
	chains []*Chain
}

// NewModel returns an empty model with the given serial number.
func NewModel(number int) *Model {
	return &Model{Number: number}
}

// ChainCount returns the number of chains.
func (m *Model) ChainCount() int {
	return len(m.chains)
}

// Chain returns the chain at the given index, or nil.
func (m *Model) Chain(index int) *Chain {
	if index < 0 || index >= len(m.chains) {
		return nil
	}
	return m.chains[index]
}

// Chains returns the chains in order. The returned slice is owned by
// the model and must not be modified.
func (m *Model) Chains() []*Chain {
	return m.chains
}

// FindChain returns the chain with the given identifier, or nil.
func (m *Model) FindChain(id string) *Chain {
	for _, c := range m.chains {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// AddChain appends a chain to this model.
func (m *Model) AddChain(c *Chain) {
	m.chains = append(m.chains, c)
}

// EnsureChain returns the chain with the given identifier, creating
// and appending it if absent.
func (m *Model) EnsureChain(id string) *Chain {
	if c := m.FindChain(id); c != nil {
		return c
	}
	c := NewChain(id)
	m.AddChain(c)
	return c
}

// RemoveChain removes the chain at the given index.
func (m *Model) RemoveChain(index int) {
	if index < 0 || index >= len(m.chains) {
		return
	}
	m.chains = append(m.chains[:index], m.chains[index+1:]...)
}

// RemoveChainsBy removes all chains for which the predicate holds.
func (m *Model) RemoveChainsBy(pred func(*Chain) bool) {
	kept := m.chains[:0]
	for _, c := range m.chains {
		if !pred(c) {
			kept = append(kept, c)
		}
	}
	m.chains = kept
}

// ResidueCount returns the total number of residues in the model.
func (m *Model) ResidueCount() int {
	n := 0
	for _, c := range m.chains {
		n += c.ResidueCount()
	}
	return n
}

// AtomCount returns the total number of atoms in the model.
func (m *Model) AtomCount() int {
	n := 0
	for _, c := range m.chains {
		n += c.AtomCount()
	}
	return n
}

// Atoms returns all atoms in chain order.
func (m *Model) Atoms() []*Atom {
	var out []*Atom
	for _, c := range m.chains {
		out = append(out, c.Atoms()...)
	}
	return out
}

// FindAtom returns the first atom with the serial number, or nil.
func (m *Model) FindAtom(serial int) *Atom {
	var found *Atom
	m.EachAtom(func(ctx AtomContext) bool {
		if ctx.Atom.Serial == serial {
			found = ctx.Atom
			return false
		}
		return true
	})
	return found
}

// Join merges the other model into this one, chain by chain.
func (m *Model) Join(other *Model) {
	for _, oc := range other.chains {
		if c := m.FindChain(oc.ID); c != nil {
			c.Join(oc)
		} else {
			m.AddChain(oc.Copy())
		}
	}
}

// Copy returns a deep copy of the model.
func (m *Model) Copy() *Model {
	n := NewModel(m.Number)
	for _, c := range m.chains {
		n.AddChain(c.Copy())
	}
	return n
}

// ApplyTransformation moves all atoms to their transformed positions.
func (m *Model) ApplyTransformation(t *Transformation) {
	for _, c := range m.chains {
		c.ApplyTransformation(t)
	}
}
