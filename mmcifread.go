/*
 * mmcifread.go, part of pdbio.
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
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MMCIFRead parses a tag/table structure file. Recoverable problems
// come back as diagnostics; the error is non-nil only when the stream
// cannot be read or has no recognizable data block.
func MMCIFRead(r io.Reader) (*Structure, DiagList, error) {
	block, diags, err := scanCIF(r)
	if err != nil {
		return nil, diags, err
	}
	p := &cifParser{block: block, diags: diags}
	s := p.structure()
	return s, p.diags, nil
}

type cifParser struct {
	block *cifBlock
	diags DiagList
}

func (p *cifParser) structure() *Structure {
	s := NewStructure(p.block.name)
	if v, ok := p.block.single("_entry.id"); ok && v.kind == cifText {
		s.ID = v.text
	}
	p.cell(s)
	p.symmetry(s)
	if l := p.block.loopWith("_atom_site."); l != nil {
		p.atoms(s, l)
	} else {
		p.diags = append(p.diags, newDiag(Warning, "No atomic data",
			"The file contains no atom_site loop", Context{Source: s.ID}))
	}
	if l := p.block.loopWith("_atom_site_anisotrop."); l != nil {
		p.anisotrop(s, l)
	}
	return s
}

func (p *cifParser) cell(s *Structure) {
	names := [6]string{
		"_cell.length_a", "_cell.length_b", "_cell.length_c",
		"_cell.angle_alpha", "_cell.angle_beta", "_cell.angle_gamma",
	}
	var dims [6]float64
	found := false
	for i, name := range names {
		v, ok := p.block.single(name)
		if !ok || v.kind != cifText {
			continue
		}
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil {
			p.diags = append(p.diags, newDiag(Invalid, "Not a number",
				fmt.Sprintf("Could not parse %s value %q as a number", name, v.text),
				Context{Source: s.ID}))
			continue
		}
		dims[i] = f
		found = true
	}
	if found {
		s.Cell = NewUnitCell(dims[0], dims[1], dims[2], dims[3], dims[4], dims[5])
	}
}

func (p *cifParser) symmetry(s *Structure) {
	for _, name := range []string{"_symmetry.space_group_name_H-M", "_symmetry_space_group_name_H-M"} {
		if v, ok := p.block.single(name); ok && v.kind == cifText {
			s.Symmetry = NewSymmetry(v.text)
			return
		}
	}
}

// atomColumns resolves the atom_site columns, preferring the author
// (auth_*) naming over the crystallographic label_* naming where both
// exist, so a round trip preserves the numbering people actually cite.
type atomColumns struct {
	group, name, serial, element int
	resName, resNumber, chain    int
	altLoc, insCode              int
	x, y, z, occupancy, bFactor  int
	charge, model                int
	aniso                        [6]int
}

func preferColumn(l *cifLoop, auth, label string) int {
	if i := l.column(auth); i >= 0 {
		return i
	}
	return l.column(label)
}

func (p *cifParser) atoms(s *Structure, l *cifLoop) {
	cols := atomColumns{
		group:     l.column("_atom_site.group_PDB"),
		name:      preferColumn(l, "_atom_site.auth_atom_id", "_atom_site.label_atom_id"),
		serial:    l.column("_atom_site.id"),
		element:   l.column("_atom_site.type_symbol"),
		resName:   preferColumn(l, "_atom_site.auth_comp_id", "_atom_site.label_comp_id"),
		resNumber: preferColumn(l, "_atom_site.auth_seq_id", "_atom_site.label_seq_id"),
		chain:     preferColumn(l, "_atom_site.auth_asym_id", "_atom_site.label_asym_id"),
		altLoc:    l.column("_atom_site.label_alt_id"),
		insCode:   l.column("_atom_site.pdbx_PDB_ins_code"),
		x:         l.column("_atom_site.Cartn_x"),
		y:         l.column("_atom_site.Cartn_y"),
		z:         l.column("_atom_site.Cartn_z"),
		occupancy: l.column("_atom_site.occupancy"),
		bFactor:   l.column("_atom_site.B_iso_or_equiv"),
		charge:    l.column("_atom_site.pdbx_formal_charge"),
		model:     l.column("_atom_site.pdbx_PDB_model_num"),
	}
	for i, name := range [6]string{"U[1][1]", "U[2][2]", "U[3][3]", "U[1][2]", "U[1][3]", "U[2][3]"} {
		cols.aniso[i] = l.column("_atom_site.aniso_" + name)
	}
	missing := false
	for _, c := range []struct {
		index int
		name  string
	}{
		{cols.name, "_atom_site.label_atom_id"},
		{cols.serial, "_atom_site.id"},
		{cols.resName, "_atom_site.label_comp_id"},
		{cols.chain, "_atom_site.label_asym_id"},
		{cols.x, "_atom_site.Cartn_x"},
		{cols.y, "_atom_site.Cartn_y"},
		{cols.z, "_atom_site.Cartn_z"},
	} {
		if c.index < 0 {
			p.diags = append(p.diags, newDiag(StrictWarning, "Missing atomic data column",
				fmt.Sprintf("The atom_site loop lacks the %s column", c.name),
				Context{Line: l.line}))
			missing = true
		}
	}
	if missing {
		return
	}

	for i, row := range l.rows {
		p.atomRow(s, cols, row, i)
	}
}

func (p *cifParser) atomRow(s *Structure, cols atomColumns, row []cifValue, index int) {
	loc := Context{Source: fmt.Sprintf("atom_site row %d", index)}
	bail := false
	text := func(i int) string {
		if bail || i < 0 || row[i].kind != cifText {
			return ""
		}
		return row[i].text
	}
	num := func(i int, fallback float64) float64 {
		if bail || i < 0 || row[i].kind != cifText {
			return fallback
		}
		f, err := strconv.ParseFloat(row[i].text, 64)
		if err != nil {
			p.diags = append(p.diags, newDiag(Invalid, "Not a number",
				fmt.Sprintf("Could not parse %q as a number", row[i].text), loc))
			bail = true
			return fallback
		}
		return f
	}
	integer := func(i int, fallback int) int {
		f := num(i, float64(fallback))
		if f != float64(int(f)) {
			p.diags = append(p.diags, newDiag(Invalid, "Not an integer",
				fmt.Sprintf("Value %v is not an integer", f), loc))
			bail = true
			return fallback
		}
		return int(f)
	}

	group := text(cols.group)
	hetero := false
	switch group {
	case "ATOM", "":
	case "HETATM":
		hetero = true
	default:
		p.diags = append(p.diags, newDiag(Invalid, "Atom type not correct",
			fmt.Sprintf("Atom group %q should be ATOM or HETATM", group), loc))
		return
	}
	serial := integer(cols.serial, 0)
	name := text(cols.name)
	element := text(cols.element)
	resName := text(cols.resName)
	resNumber := integer(cols.resNumber, 0)
	chainID := text(cols.chain)
	altLoc := text(cols.altLoc)
	insCode := text(cols.insCode)
	x := num(cols.x, 0)
	y := num(cols.y, 0)
	z := num(cols.z, 0)
	occupancy := num(cols.occupancy, 1)
	bFactor := num(cols.bFactor, 0)
	charge := integer(cols.charge, 0)
	modelNumber := integer(cols.model, 1)
	if bail {
		return
	}

	a := NewAtom(serial, name, x, y, z)
	a.Hetero = hetero
	a.Occupancy = occupancy
	a.BFactor = bFactor
	a.Element = strings.TrimSpace(element)
	a.Charge = charge

	if cols.aniso[0] >= 0 && row[cols.aniso[0]].kind == cifText {
		var u [6]float64
		complete := true
		for j, c := range cols.aniso {
			if c < 0 || row[c].kind != cifText {
				complete = false
				break
			}
			u[j] = num(c, 0)
		}
		if complete && !bail {
			a.SetAniso(u)
		}
	}

	m := s.EnsureModel(modelNumber)
	m.EnsureChain(chainID).AddAtom(a, resNumber, insCode, resName, altLoc)
}

// anisotrop joins the anisotropic factor loop to the atoms it
// describes by serial number, the id column, not by row position.
func (p *cifParser) anisotrop(s *Structure, l *cifLoop) {
	idCol := l.column("_atom_site_anisotrop.id")
	var uCols [6]int
	for i, name := range [6]string{"U[1][1]", "U[2][2]", "U[3][3]", "U[1][2]", "U[1][3]", "U[2][3]"} {
		uCols[i] = l.column("_atom_site_anisotrop." + name)
	}
	if idCol < 0 || uCols[0] < 0 || uCols[1] < 0 || uCols[2] < 0 || uCols[3] < 0 || uCols[4] < 0 || uCols[5] < 0 {
		p.diags = append(p.diags, newDiag(StrictWarning, "Missing anisotropic data column",
			"The atom_site_anisotrop loop lacks the id or one of the U columns",
			Context{Line: l.line}))
		return
	}
	bySerial := make(map[int]*Atom, s.AtomCount())
	for _, a := range s.Atoms() {
		bySerial[a.Serial] = a
	}
	for i, row := range l.rows {
		loc := Context{Source: fmt.Sprintf("atom_site_anisotrop row %d", i)}
		serialText := row[idCol]
		if serialText.kind != cifText {
			continue
		}
		serial, err := strconv.Atoi(serialText.text)
		if err != nil {
			p.diags = append(p.diags, newDiag(Invalid, "Not a number",
				fmt.Sprintf("Could not parse %q as a serial number", serialText.text), loc))
			continue
		}
		a := bySerial[serial]
		if a == nil {
			p.diags = append(p.diags, newDiag(Invalid, "Solitary anisotropic record",
				fmt.Sprintf("No atom has serial number %d", serial), loc))
			continue
		}
		var u [6]float64
		ok := true
		for j, c := range uCols {
			if row[c].kind != cifText {
				ok = false
				break
			}
			f, err := strconv.ParseFloat(row[c].text, 64)
			if err != nil {
				p.diags = append(p.diags, newDiag(Invalid, "Not a number",
					fmt.Sprintf("Could not parse %q as a number", row[c].text), loc))
				ok = false
				break
			}
			u[j] = f
		}
		if ok {
			a.SetAniso(u)
		}
	}
}
