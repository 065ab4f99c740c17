/*
 * validate.go, part of pdbio.
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

// Capacity of the fixed-column serial fields with the extended radix:
// the decimal range plus the uppercase and lowercase extensions.
const (
	maxAtomSerial    = 99999 + 2*26*36*36*36*36 // width 5
	maxResidueNumber = 9999 + 2*26*36*36*36     // width 4
	minResidueNumber = -999                     // negative numbers occur in real entries
)

// Validate inspects the structure for problems relative to the given
// output format and returns the full diagnostic list. The list does
// not depend on any strictness policy; pass it to Accept to get a
// verdict for a policy.
func Validate(s *Structure, target Format) DiagList {
	var diags DiagList
	if s.ModelCount() == 0 {
		diags = append(diags, newDiag(Warning, "Empty structure",
			"The structure contains no models", Context{Source: s.ID}))
	}
	for _, m := range s.models {
		diags = append(diags, validateModel(s, m, target)...)
	}
	if s.ModelCount() > 1 {
		diags = append(diags, validateEnsemble(s)...)
	}
	return diags
}

// Accept reports the verdict for a diagnostic list under a strictness
// policy: reject iff any diagnostic is at or above the policy's
// threshold.
func Accept(diags DiagList, level Strictness) bool {
	return !diags.Fails(level)
}

func validateModel(s *Structure, m *Model, target Format) DiagList {
	var diags DiagList
	where := fmt.Sprintf("%s model %d", s.ID, m.Number)
	if m.ChainCount() == 0 {
		diags = append(diags, newDiag(Warning, "Empty model",
			fmt.Sprintf("Model %d contains no chains", m.Number),
			Context{Source: where}))
	}
	serials := make(map[int]bool, m.AtomCount())
	for _, c := range m.chains {
		diags = append(diags, validateChain(where, c, target)...)
		for _, a := range c.Atoms() {
			if serials[a.Serial] {
				diags = append(diags, newDiag(StrictWarning, "Duplicate atom serial",
					fmt.Sprintf("Atom serial number %d occurs more than once in model %d", a.Serial, m.Number),
					Context{Source: where}))
			}
			serials[a.Serial] = true
		}
	}
	return diags
}

func validateChain(where string, c *Chain, target Format) DiagList {
	var diags DiagList
	loc := Context{Source: where + " chain " + c.ID}
	if c.ID == "" {
		diags = append(diags, newDiag(Invalid, "Empty chain ID",
			"The chain has no identifier", loc))
	}
	if target == FormatPDB && len(c.ID) > 1 {
		diags = append(diags, newDiag(Invalid, "Chain ID too long",
			fmt.Sprintf("Chain identifier %q does not fit the single-character column", c.ID), loc))
	}
	for _, ch := range c.ID {
		if !legalChainChar(ch) {
			diags = append(diags, newDiag(Invalid, "Illegal chain ID",
				fmt.Sprintf("Chain identifier %q contains characters outside the legal set", c.ID), loc))
			break
		}
	}
	if c.ResidueCount() == 0 {
		diags = append(diags, newDiag(Warning, "Empty chain",
			fmt.Sprintf("Chain %s contains no residues", c.ID), loc))
	}
	for _, r := range c.residues {
		diags = append(diags, validateResidue(loc.Source, r, target)...)
	}
	return diags
}

func validateResidue(where string, r *Residue, target Format) DiagList {
	var diags DiagList
	loc := Context{Source: where + " residue " + r.ID()}
	if target == FormatPDB {
		if r.Number > maxResidueNumber || r.Number < minResidueNumber {
			diags = append(diags, newDiag(Invalid, "Residue number out of range",
				fmt.Sprintf("Residue number %d cannot be written in the fixed-column format", r.Number), loc))
		}
	}
	if r.ConformerCount() == 0 {
		diags = append(diags, newDiag(Warning, "Empty residue",
			fmt.Sprintf("Residue %s contains no conformers", r.ID()), loc))
	}
	hetero, standard := false, false
	for _, conf := range r.conformers {
		if conf.AtomCount() == 0 {
			diags = append(diags, newDiag(Warning, "Empty conformer",
				fmt.Sprintf("Conformer %s contains no atoms", conf.ID()), loc))
		}
		for _, a := range conf.atoms {
			if a.Hetero {
				hetero = true
			} else {
				standard = true
			}
			diags = append(diags, validateAtom(loc.Source, a, target)...)
		}
	}
	if hetero && standard {
		diags = append(diags, newDiag(Warning, "Mixed hetero residue",
			fmt.Sprintf("Residue %s mixes standard and hetero atoms", r.ID()), loc))
	}
	return diags
}

func validateAtom(where string, a *Atom, target Format) DiagList {
	var diags DiagList
	loc := Context{Source: fmt.Sprintf("%s atom %d", where, a.Serial)}
	if a.Serial < 0 {
		diags = append(diags, newDiag(Invalid, "Negative atom serial",
			fmt.Sprintf("Atom serial number %d is negative", a.Serial), loc))
	}
	if target != FormatPDB {
		return diags
	}
	if a.Serial > maxAtomSerial {
		diags = append(diags, newDiag(Invalid, "Atom serial out of range",
			fmt.Sprintf("Atom serial number %d cannot be written in the fixed-column format", a.Serial), loc))
	}
	for _, v := range [3]float64{a.X, a.Y, a.Z} {
		if v < -999.999 || v > 9999.999 {
			diags = append(diags, newDiag(Invalid, "Coordinate out of range",
				fmt.Sprintf("Coordinate %.3f does not fit the fixed coordinate columns", v), loc))
			break
		}
	}
	if a.Occupancy < -99.99 || a.Occupancy > 999.99 {
		diags = append(diags, newDiag(Invalid, "Occupancy out of range",
			fmt.Sprintf("Occupancy %.2f does not fit its fixed columns", a.Occupancy), loc))
	}
	if a.BFactor < -99.99 || a.BFactor > 999.99 {
		diags = append(diags, newDiag(Invalid, "B factor out of range",
			fmt.Sprintf("B factor %.2f does not fit its fixed columns", a.BFactor), loc))
	}
	if len(a.Name) > 4 {
		diags = append(diags, newDiag(Invalid, "Atom name too long",
			fmt.Sprintf("Atom name %q does not fit four columns", a.Name), loc))
	}
	if len(a.Element) > 2 {
		diags = append(diags, newDiag(Invalid, "Element too long",
			fmt.Sprintf("Element symbol %q does not fit two columns", a.Element), loc))
	}
	if a.Charge < -9 || a.Charge > 9 {
		diags = append(diags, newDiag(Invalid, "Charge out of range",
			fmt.Sprintf("Formal charge %d does not fit its columns", a.Charge), loc))
	}
	return diags
}

// validateEnsemble checks that every model of a multi-model structure
// describes the same set of atoms, matched in hierarchy order.
func validateEnsemble(s *Structure) DiagList {
	var diags DiagList
	first := s.models[0]
	ref := first.Atoms()
	for _, m := range s.models[1:] {
		atoms := m.Atoms()
		if len(atoms) != len(ref) {
			diags = append(diags, newDiag(StrictWarning, "Model size mismatch",
				fmt.Sprintf("Model %d has %d atoms where model %d has %d",
					m.Number, len(atoms), first.Number, len(ref)),
				Context{Source: s.ID}))
			continue
		}
		for i, a := range atoms {
			if !a.Corresponds(ref[i]) {
				diags = append(diags, newDiag(StrictWarning, "Model atom mismatch",
					fmt.Sprintf("Atom %d of model %d does not correspond to its counterpart in model %d",
						a.Serial, m.Number, first.Number),
					Context{Source: s.ID}))
				break
			}
		}
	}
	return diags
}

// Prepare readies a structure for output under a policy. Under a
// strict policy with a fixed-column target it synthesizes the
// transformation matrices some consumer software insists on: an
// identity origin matrix, and a fractionalization matrix derived from
// the unit cell. Under looser policies it prunes degenerate empty
// levels instead of carrying them to the writer. Returned diagnostics
// report what was changed.
func Prepare(s *Structure, level Strictness, target Format) DiagList {
	var diags DiagList
	loc := Context{Source: s.ID}
	if level == Strict && target == FormatPDB {
		if s.OrigX == nil {
			s.OrigX = Identity()
			diags = append(diags, newDiag(Info, "Synthesized origin matrix",
				"An identity origin matrix was added as the file had none", loc))
		}
		if s.Scale == nil && s.Cell != nil {
			s.Scale = s.Cell.FractionalScale()
			diags = append(diags, newDiag(Info, "Synthesized scale matrix",
				"A fractionalization matrix was derived from the unit cell as the file had none", loc))
		}
	}
	if level != Strict {
		before := s.ModelCount() + s.ChainCount() + s.ResidueCount()
		s.RemoveEmpty()
		if s.ModelCount()+s.ChainCount()+s.ResidueCount() != before {
			diags = append(diags, newDiag(Info, "Pruned empty levels",
				"Degenerate empty hierarchy levels were removed", loc))
		}
	}
	return diags
}

func legalChainChar(ch rune) bool {
	switch {
	case ch >= 'A' && ch <= 'Z', ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
		return true
	}
	return false
}
