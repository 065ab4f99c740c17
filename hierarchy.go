/*
 * hierarchy.go, part of pdbio.
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

// AtomContext bundles an atom with every level of the hierarchy above
// it, so traversal callbacks can see the full identity of each atom
// without holding parent pointers in the entities themselves.
type AtomContext struct {
	Model     *Model
	Chain     *Chain
	Residue   *Residue
	Conformer *Conformer
	Atom      *Atom
}

// EachAtom walks every atom of the structure in file order and calls
// fn with its full context. Traversal stops early when fn returns
// false.
func (s *Structure) EachAtom(fn func(AtomContext) bool) {
	for _, m := range s.models {
		if !m.EachAtom(fn) {
			return
		}
	}
}

// EachAtom walks every atom of the model in file order. Traversal
// stops early when fn returns false.
func (m *Model) EachAtom(fn func(AtomContext) bool) bool {
	for _, c := range m.chains {
		for _, r := range c.residues {
			for _, conf := range r.conformers {
				for _, a := range conf.atoms {
					ctx := AtomContext{Model: m, Chain: c, Residue: r, Conformer: conf, Atom: a}
					if !fn(ctx) {
						return false
					}
				}
			}
		}
	}
	return true
}

// EachHeterogen walks only the atoms flagged as heterogens.
func (s *Structure) EachHeterogen(fn func(AtomContext) bool) {
	s.EachAtom(func(ctx AtomContext) bool {
		if !ctx.Atom.Hetero {
			return true
		}
		return fn(ctx)
	})
}
