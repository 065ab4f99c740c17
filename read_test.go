/*
 * read_test.go, part of pdbio.
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
	"path/filepath"
	"testing"
)

func TestFormatForPath(t *testing.T) {
	cases := []struct {
		path   string
		format Format
		ok     bool
	}{
		{"1abc.pdb", FormatPDB, true},
		{"pdb1abc.ent", FormatPDB, true},
		{"1abc.pdb1", FormatPDB, true},
		{"1ABC.PDB", FormatPDB, true},
		{"1abc.cif", FormatMMCIF, true},
		{"1abc.mmcif", FormatMMCIF, true},
		{"1abc.pdb.gz", FormatPDB, true},
		{"1abc.cif.zst", FormatMMCIF, true},
		{"1abc.pdb.xz", FormatPDB, true},
		{"notes.txt", FormatPDB, false},
		{"1abc.gz", FormatPDB, false},
	}
	for _, c := range cases {
		format, ok := FormatForPath(c.path)
		if ok != c.ok || (ok && format != c.format) {
			t.Errorf("FormatForPath(%q) = %v, %v; want %v, %v",
				c.path, format, ok, c.format, c.ok)
		}
	}
}

func TestReadFilePDB(t *testing.T) {
	s, diags, err := ReadFile(filepath.Join("test", "small.pdb"), Normal)
	if err != nil {
		t.Fatal(err)
	}
	if diags.Fails(Normal) {
		t.Fatalf("fixture rejected: %v", diags)
	}
	if s.ID != "1ABC" {
		t.Errorf("entry id got %q, want 1ABC", s.ID)
	}
	if s.AtomCount() != 5 {
		t.Errorf("atom count got %d, want 5", s.AtomCount())
	}
	if s.Cell == nil || s.Cell.A != 50 || s.Cell.C != 70 {
		t.Errorf("cell got %+v", s.Cell)
	}
	if s.Symmetry == nil || s.Symmetry.Symbol != "P 21 21 21" || s.Symmetry.Z != 4 {
		t.Errorf("symmetry got %+v", s.Symmetry)
	}
}

func TestReadFileMMCIF(t *testing.T) {
	s, _, err := ReadFile(filepath.Join("test", "small.cif"), Normal)
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != "1ABC" || s.AtomCount() != 5 {
		t.Errorf("got id %q with %d atoms, want 1ABC with 5", s.ID, s.AtomCount())
	}
}

// Both fixtures describe the same five atoms, so the two parsers must
// agree on them.
func TestFixtureFormatsAgree(t *testing.T) {
	pdb, _, err := ReadFile(filepath.Join("test", "small.pdb"), Normal)
	if err != nil {
		t.Fatal(err)
	}
	cif, _, err := ReadFile(filepath.Join("test", "small.cif"), Normal)
	if err != nil {
		t.Fatal(err)
	}
	pa, ca := pdb.Atoms(), cif.Atoms()
	if len(pa) != len(ca) {
		t.Fatalf("atom counts differ: %d vs %d", len(pa), len(ca))
	}
	for i := range pa {
		if !pa[i].Corresponds(ca[i]) {
			t.Errorf("atom %d differs between the formats", i)
		}
		if pa[i].X != ca[i].X || pa[i].BFactor != ca[i].BFactor {
			t.Errorf("atom %d numeric fields differ between the formats", i)
		}
	}
}

func TestWriteFileRoundTripCompressed(t *testing.T) {
	s, _, err := ReadFile(filepath.Join("test", "small.pdb"), Normal)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, name := range []string{"out.pdb", "out.pdb.gz", "out.cif.zst", "out.cif.xz"} {
		path := filepath.Join(dir, name)
		if _, err := WriteFile(path, s, Normal); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
		back, diags, err := ReadFile(path, Normal)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if diags.Fails(Normal) {
			t.Fatalf("ReadFile(%s) rejected: %v", name, diags)
		}
		if back.AtomCount() != s.AtomCount() {
			t.Errorf("%s: atom count got %d, want %d", name, back.AtomCount(), s.AtomCount())
		}
	}
}

func TestWriteRejectsBadStructure(t *testing.T) {
	s := buildStructure()
	s.FirstModel().FindChain("A").ID = "TOO LONG"
	dir := t.TempDir()
	if _, err := WriteFile(filepath.Join(dir, "bad.pdb"), s, Normal); err == nil {
		t.Fatal("expected a rejection for an unwritable chain id")
	}
}

func TestReadFileUnknownExtension(t *testing.T) {
	if _, _, err := ReadFile("whatever.dat", Normal); err == nil {
		t.Fatal("expected an error for an unrecognized extension")
	}
}
