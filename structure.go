/*
 * structure.go, part of pdbio.
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

import "sort"

// Remark is one free-text annotation line, tagged with its REMARK
// type number.
type Remark struct {
	Number  int
	Content string
}

// Structure is the root of the hierarchy: file-level metadata plus one
// or more models.
type Structure struct {
	ID       string // entry identifier, e.g. "1UBQ"
	Cell     *UnitCell
	Symmetry *Symmetry
	Scale    *Transformation // fractionalization matrix (SCALEn)
	OrigX    *Transformation // original-coordinate matrix (ORIGXn)
	NCS      []*NCSTransform
	Remarks  []Remark
	SeqRes   map[string][]string // chain ID to expected residue names
	models   []*Model
}

// NewStructure returns an empty structure.
func NewStructure(id string) *Structure {
	return &Structure{ID: id}
}

// ModelCount returns the number of models.
func (s *Structure) ModelCount() int {
	return len(s.models)
}

// Model returns the model at the given index, or nil.
func (s *Structure) Model(index int) *Model {
	if index < 0 || index >= len(s.models) {
		return nil
	}
	return s.models[index]
}

// Models returns the models in order. The returned slice is owned by
// the structure and must not be modified.
func (s *Structure) Models() []*Model {
	return s.models
}

// FirstModel returns the first model, or nil for an empty structure.
func (s *Structure) FirstModel() *Model {
	if len(s.models) == 0 {
		return nil
	}
	return s.models[0]
}

// FindModel returns the model with the given serial number, or nil.
func (s *Structure) FindModel(number int) *Model {
	for _, m := range s.models {
		if m.Number == number {
			return m
		}
	}
	return nil
}

// AddModel appends a model to this structure.
func (s *Structure) AddModel(m *Model) {
	s.models = append(s.models, m)
}

// EnsureModel returns the model with the given serial number, creating
// and appending it if absent.
func (s *Structure) EnsureModel(number int) *Model {
	if m := s.FindModel(number); m != nil {
		return m
	}
	m := NewModel(number)
	s.AddModel(m)
	return m
}

// RemoveModel removes the model at the given index.
func (s *Structure) RemoveModel(index int) {
	if index < 0 || index >= len(s.models) {
		return
	}
	s.models = append(s.models[:index], s.models[index+1:]...)
}

// AddRemark appends an annotation line.
func (s *Structure) AddRemark(number int, content string) {
	s.Remarks = append(s.Remarks, Remark{Number: number, Content: content})
}

// SetSeqRes records the expected residue sequence for a chain.
func (s *Structure) SetSeqRes(chainID string, names []string) {
	if s.SeqRes == nil {
		s.SeqRes = make(map[string][]string)
	}
	s.SeqRes[chainID] = names
}

// ChainCount returns the number of chains over all models.
func (s *Structure) ChainCount() int {
	n := 0
	for _, m := range s.models {
		n += m.ChainCount()
	}
	return n
}

// ResidueCount returns the number of residues over all models.
func (s *Structure) ResidueCount() int {
	n := 0
	for _, m := range s.models {
		n += m.ResidueCount()
	}
	return n
}

// AtomCount returns the number of atoms over all models.
func (s *Structure) AtomCount() int {
	n := 0
	for _, m := range s.models {
		n += m.AtomCount()
	}
	return n
}

// Atoms returns all atoms of all models, in model order.
func (s *Structure) Atoms() []*Atom {
	var out []*Atom
	for _, m := range s.models {
		out = append(out, m.Atoms()...)
	}
	return out
}

// Renumber assigns fresh consecutive numbers: models from 1, chain
// identifiers A, B, .., Z, AA, .. in order, atom serials from 1 within
// each model, and residue numbers from 1 within each chain. Insertion
// codes are cleared, since the new numbers are unique without them.
func (s *Structure) Renumber() {
	for mi, m := range s.models {
		m.Number = mi + 1
		serial := 1
		for ci, c := range m.chains {
			c.ID = chainIdentifier(ci)
			for ri, r := range c.residues {
				r.Number = ri + 1
				r.InsCode = ""
				for _, conf := range r.conformers {
					for _, a := range conf.atoms {
						a.Serial = serial
						serial++
					}
				}
			}
		}
	}
}

// chainIdentifier maps a chain index to a letter sequence: 0 is A,
// 25 is Z, 26 is AA.
func chainIdentifier(index int) string {
	id := ""
	for {
		id = string(rune('A'+index%26)) + id
		index = index/26 - 1
		if index < 0 {
			return id
		}
	}
}

// RemoveEmpty prunes conformers with no atoms, residues with no
// conformers, chains with no residues and models with no chains.
func (s *Structure) RemoveEmpty() {
	keptModels := s.models[:0]
	for _, m := range s.models {
		keptChains := m.chains[:0]
		for _, c := range m.chains {
			keptResidues := c.residues[:0]
			for _, r := range c.residues {
				r.RemoveConformersBy(func(conf *Conformer) bool {
					return conf.AtomCount() == 0
				})
				if r.ConformerCount() > 0 {
					keptResidues = append(keptResidues, r)
				}
			}
			c.residues = keptResidues
			if c.ResidueCount() > 0 {
				keptChains = append(keptChains, c)
			}
		}
		m.chains = keptChains
		if m.ChainCount() > 0 {
			keptModels = append(keptModels, m)
		}
	}
	s.models = keptModels
}

// SortChains orders the chains of every model by identifier.
func (s *Structure) SortChains() {
	for _, m := range s.models {
		sort.Slice(m.chains, func(i, j int) bool {
			return m.chains[i].ID < m.chains[j].ID
		})
	}
}

// Join merges the other structure's models into this one, matching
// models by serial number. Metadata of the receiver wins.
func (s *Structure) Join(other *Structure) {
	for _, om := range other.models {
		if m := s.FindModel(om.Number); m != nil {
			m.Join(om)
		} else {
			s.AddModel(om.Copy())
		}
	}
}

// Copy returns a deep copy of the structure.
func (s *Structure) Copy() *Structure {
	n := NewStructure(s.ID)
	if s.Cell != nil {
		cell := *s.Cell
		n.Cell = &cell
	}
	if s.Symmetry != nil {
		sym := *s.Symmetry
		n.Symmetry = &sym
	}
	if s.Scale != nil {
		n.Scale = s.Scale.Copy()
	}
	if s.OrigX != nil {
		n.OrigX = s.OrigX.Copy()
	}
	for _, t := range s.NCS {
		nt := &NCSTransform{Serial: t.Serial, Given: t.Given, Transformation: t.Transformation.Copy()}
		n.NCS = append(n.NCS, nt)
	}
	n.Remarks = append([]Remark(nil), s.Remarks...)
	if s.SeqRes != nil {
		n.SeqRes = make(map[string][]string, len(s.SeqRes))
		for k, v := range s.SeqRes {
			n.SeqRes[k] = append([]string(nil), v...)
		}
	}
	for _, m := range s.models {
		n.AddModel(m.Copy())
	}
	return n
}

// ApplyTransformation moves all atoms of all models to their
// transformed positions.
func (s *Structure) ApplyTransformation(t *Transformation) {
	for _, m := range s.models {
		m.ApplyTransformation(t)
	}
}
