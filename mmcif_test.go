/*
 * mmcif_test.go, part of pdbio.
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
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestCIFScannerTokens(t *testing.T) {
	input := strings.Join([]string{
		"# leading comment",
		"data_EXAMPLE",
		"_entry.id   EXAMPLE",
		"_struct.title 'a don''t-care title'",
		"_note.text",
		";first line",
		"second line",
		";",
		"_missing.one   ?",
		"_missing.two   .",
	}, "\n")
	block, diags, err := scanCIF(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if block.name != "EXAMPLE" {
		t.Errorf("block name got %q, want EXAMPLE", block.name)
	}
	if v, ok := block.single("_entry.id"); !ok || v.text != "EXAMPLE" {
		t.Errorf("_entry.id got %+v", v)
	}
	if v, ok := block.single("_struct.title"); !ok || v.text != "a don''t-care title" {
		t.Errorf("quoted value got %q", v.text)
	}
	if v, ok := block.single("_note.text"); !ok || v.text != "first line\nsecond line" {
		t.Errorf("text field got %q", v.text)
	}
	if v, _ := block.single("_missing.one"); v.kind != cifUnknown {
		t.Errorf("? placeholder got kind %v", v.kind)
	}
	if v, _ := block.single("_missing.two"); v.kind != cifInapplicable {
		t.Errorf(". placeholder got kind %v", v.kind)
	}
}

func TestCIFQuoteEndsOnlyBeforeWhitespace(t *testing.T) {
	// The closing quote only counts when followed by whitespace, so an
	// embedded apostrophe stays part of the value.
	input := "data_X\n_a.b 'it's fine' _c.d 1\n"
	block, _, err := scanCIF(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := block.single("_a.b"); !ok || v.text != "it's fine" {
		t.Fatalf("got %q, want \"it's fine\"", v.text)
	}
}

func TestCIFUnterminatedQuote(t *testing.T) {
	input := "data_X\n_a.b 'never closed\n"
	_, _, err := scanCIF(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected an error for an unterminated quote")
	}
}

func TestCIFNoDataBlock(t *testing.T) {
	_, _, err := scanCIF(strings.NewReader("# just a comment\n"))
	if err == nil {
		t.Fatal("expected an error for a file without a data block")
	}
}

func TestCIFSecondBlockIgnored(t *testing.T) {
	input := "data_ONE\n_entry.id ONE\ndata_TWO\n_entry.id TWO\n"
	block, diags, err := scanCIF(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if block.name != "ONE" {
		t.Errorf("kept block %q, want ONE", block.name)
	}
	if len(diags.AtLeast(Info)) == 0 {
		t.Error("expected a diagnostic about the extra data block")
	}
	if diags.Fails(Strict) {
		t.Error("extra data block should not reject even under the strict policy")
	}
}

const cifAtoms = `data_1ABC
_entry.id 1ABC
_cell.length_a    25.0
_cell.length_b    30.0
_cell.length_c    35.0
_cell.angle_alpha 90.0
_cell.angle_beta  90.0
_cell.angle_gamma 90.0
_symmetry.space_group_name_H-M 'P 21 21 21'
loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.type_symbol
_atom_site.label_atom_id
_atom_site.label_alt_id
_atom_site.label_comp_id
_atom_site.label_asym_id
_atom_site.label_seq_id
_atom_site.auth_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
_atom_site.occupancy
_atom_site.B_iso_or_equiv
_atom_site.pdbx_PDB_model_num
ATOM   1 N N  . GLY A 1 7 11.0 12.0 13.0 1.00 15.34 1
ATOM   2 C CA . GLY A 1 7 12.1 12.5 13.5 1.00 16.02 1
HETATM 3 O O  . HOH B 1 9 20.0 21.0 22.0 0.50 30.00 1
`

func TestMMCIFReadAtoms(t *testing.T) {
	s, diags, err := MMCIFRead(strings.NewReader(cifAtoms))
	if err != nil {
		t.Fatal(err)
	}
	if diags.Fails(Strict) {
		t.Fatalf("unexpected rejection: %v", diags)
	}
	if s.ID != "1ABC" {
		t.Errorf("entry id got %q", s.ID)
	}
	if s.Cell == nil || s.Cell.A != 25 || s.Cell.Gamma != 90 {
		t.Errorf("cell got %+v", s.Cell)
	}
	if s.Symmetry == nil || s.Symmetry.Symbol != "P 21 21 21" {
		t.Errorf("symmetry got %+v", s.Symmetry)
	}
	if s.AtomCount() != 3 {
		t.Fatalf("atom count got %d, want 3", s.AtomCount())
	}
	m := s.FirstModel()
	a := m.FindChain("A")
	if a == nil || a.ResidueCount() != 1 {
		t.Fatal("chain A missing or misparsed")
	}
	// auth_seq_id wins over label_seq_id.
	if a.Residue(0).Number != 7 {
		t.Errorf("residue number got %d, want the author value 7", a.Residue(0).Number)
	}
	water := m.FindChain("B").Atoms()[0]
	if !water.Hetero || water.Occupancy != 0.5 || water.BFactor != 30 {
		t.Errorf("water atom got %+v", water)
	}
}

func TestMMCIFAnisotropJoinBySerial(t *testing.T) {
	// Rows come in the reverse of the atom order; the join key is the
	// id column, not the row position.
	input := cifAtoms + `loop_
_atom_site_anisotrop.id
_atom_site_anisotrop.U[1][1]
_atom_site_anisotrop.U[2][2]
_atom_site_anisotrop.U[3][3]
_atom_site_anisotrop.U[1][2]
_atom_site_anisotrop.U[1][3]
_atom_site_anisotrop.U[2][3]
2 0.0200 0.0210 0.0220 0.0010 0.0011 0.0012
1 0.0100 0.0110 0.0120 0.0001 0.0002 0.0003
`
	s, diags, err := MMCIFRead(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if diags.Fails(Strict) {
		t.Fatalf("unexpected rejection: %v", diags)
	}
	var first, second *Atom
	for _, a := range s.Atoms() {
		switch a.Serial {
		case 1:
			first = a
		case 2:
			second = a
		}
	}
	u1, ok1 := first.Aniso()
	u2, ok2 := second.Aniso()
	if !ok1 || !ok2 {
		t.Fatal("anisotropic factors missing after join")
	}
	if u1[0] != 0.0100 || u2[0] != 0.0200 {
		t.Errorf("join mixed up rows: got %v and %v", u1[0], u2[0])
	}
}

func TestMMCIFMissingEssentialColumn(t *testing.T) {
	input := `data_X
loop_
_atom_site.id
_atom_site.label_atom_id
1 CA
`
	s, diags, err := MMCIFRead(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if s.AtomCount() != 0 {
		t.Errorf("atoms parsed despite missing columns: %d", s.AtomCount())
	}
	if !diags.Fails(Normal) {
		t.Error("missing essential columns should reject under the default policy")
	}
	if diags.Fails(Permissive) {
		t.Error("missing essential columns should still pass the permissive policy")
	}
}

func TestMMCIFRoundTrip(t *testing.T) {
	s, _, err := MMCIFRead(strings.NewReader(cifAtoms))
	if err != nil {
		t.Fatal(err)
	}
	s.Atoms()[0].SetAniso([6]float64{0.01, 0.02, 0.03, 0.001, 0.002, 0.003})

	var buf bytes.Buffer
	if err := MMCIFWrite(&buf, s); err != nil {
		t.Fatal(err)
	}
	back, diags, err := MMCIFRead(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diags.Fails(Strict) {
		t.Fatalf("round trip rejected: %v", diags)
	}
	if back.ID != s.ID {
		t.Errorf("entry id got %q, want %q", back.ID, s.ID)
	}
	if back.Cell == nil || back.Cell.B != 30 {
		t.Errorf("cell lost in round trip: %+v", back.Cell)
	}
	if back.Symmetry == nil || back.Symmetry.Symbol != "P 21 21 21" {
		t.Errorf("symmetry lost in round trip: %+v", back.Symmetry)
	}
	orig := s.Atoms()
	got := back.Atoms()
	if len(got) != len(orig) {
		t.Fatalf("atom count got %d, want %d", len(got), len(orig))
	}
	for i := range orig {
		if !orig[i].Corresponds(got[i]) {
			t.Errorf("atom %d does not correspond after round trip", i)
		}
		if orig[i].X != got[i].X || orig[i].Occupancy != got[i].Occupancy {
			t.Errorf("atom %d numeric fields changed", i)
		}
	}
	u, ok := got[0].Aniso()
	if !ok || u[3] != 0.001 {
		t.Errorf("inline anisotropic factors lost: %v %v", u, ok)
	}
	if _, ok := got[1].Aniso(); ok {
		t.Error("atom without anisotropic factors gained some")
	}
}

// A table-format file pushed through the fixed-column format and back
// keeps every atom's serial, position, occupancy, factor and element.
func TestCrossFormatPreservation(t *testing.T) {
	s, _, err := MMCIFRead(strings.NewReader(cifAtoms))
	if err != nil {
		t.Fatal(err)
	}
	var pdb bytes.Buffer
	if err := PDBWrite(&pdb, s, Normal); err != nil {
		t.Fatal(err)
	}
	viaPDB, diags, err := PDBRead(&pdb)
	if err != nil {
		t.Fatal(err)
	}
	if diags.Fails(Normal) {
		t.Fatalf("fixed-column leg rejected: %v", diags)
	}
	var cif bytes.Buffer
	if err := MMCIFWrite(&cif, viaPDB); err != nil {
		t.Fatal(err)
	}
	back, _, err := MMCIFRead(&cif)
	if err != nil {
		t.Fatal(err)
	}

	orig := s.Atoms()
	got := back.Atoms()
	if len(got) != len(orig) {
		t.Fatalf("atom count got %d, want %d", len(got), len(orig))
	}
	for i := range orig {
		o, g := orig[i], got[i]
		if g.Serial != o.Serial || g.Element != o.Element {
			t.Errorf("atom %d identity changed: %+v vs %+v", i, o, g)
		}
		if math.Abs(g.X-o.X) > 1e-3 || math.Abs(g.Y-o.Y) > 1e-3 || math.Abs(g.Z-o.Z) > 1e-3 {
			t.Errorf("atom %d position drifted beyond codec precision", i)
		}
		if math.Abs(g.Occupancy-o.Occupancy) > 1e-2 || math.Abs(g.BFactor-o.BFactor) > 1e-2 {
			t.Errorf("atom %d occupancy or factor drifted", i)
		}
	}
}
