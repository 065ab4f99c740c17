/*
 * hierarchy_test.go, part of pdbio.
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

import "testing"

// buildStructure makes one model with two chains, three residues and
// five atoms.
func buildStructure() *Structure {
	s := NewStructure("TEST")
	m := NewModel(1)
	serial := 1
	add := func(chain string, resNumber int, resName, atomName string) {
		a := NewAtom(serial, atomName, float64(serial), 0, 0)
		a.Element = "C"
		serial++
		m.EnsureChain(chain).AddAtom(a, resNumber, "", resName, "")
	}
	add("A", 1, "GLY", "N")
	add("A", 1, "GLY", "CA")
	add("A", 2, "ALA", "CA")
	add("B", 1, "HOH", "O")
	add("B", 2, "HOH", "O")
	s.AddModel(m)
	return s
}

func TestCountsAndIteration(t *testing.T) {
	s := buildStructure()
	if s.ModelCount() != 1 || s.ChainCount() != 2 || s.ResidueCount() != 4 || s.AtomCount() != 5 {
		t.Fatalf("counts got %d/%d/%d/%d, want 1/2/4/5",
			s.ModelCount(), s.ChainCount(), s.ResidueCount(), s.AtomCount())
	}
	seen := make(map[int]bool)
	s.EachAtom(func(ctx AtomContext) bool {
		if ctx.Model == nil || ctx.Chain == nil || ctx.Residue == nil || ctx.Conformer == nil {
			t.Error("incomplete atom context")
		}
		if seen[ctx.Atom.Serial] {
			t.Errorf("atom %d visited twice", ctx.Atom.Serial)
		}
		seen[ctx.Atom.Serial] = true
		return true
	})
	if len(seen) != 5 {
		t.Fatalf("iterated %d atoms, want 5", len(seen))
	}
}

func TestEachAtomEarlyStop(t *testing.T) {
	s := buildStructure()
	n := 0
	s.EachAtom(func(AtomContext) bool {
		n++
		return n < 3
	})
	if n != 3 {
		t.Fatalf("visited %d atoms, want 3", n)
	}
}

func TestMoveAtomKeepsSingleParent(t *testing.T) {
	s := buildStructure()
	m := s.FirstModel()
	src := m.FindChain("A").Residue(0).Conformer(0)
	dst := m.FindChain("B").Residue(0).Conformer(0)
	before := s.AtomCount()

	a := src.TakeAtom(0)
	if a == nil {
		t.Fatal("TakeAtom returned nil")
	}
	dst.AddAtom(a)

	if s.AtomCount() != before {
		t.Fatalf("atom count changed by move: %d -> %d", before, s.AtomCount())
	}
	found := 0
	s.EachAtom(func(ctx AtomContext) bool {
		if ctx.Atom == a {
			found++
			if ctx.Chain.ID != "B" {
				t.Errorf("moved atom found in chain %s, want B", ctx.Chain.ID)
			}
		}
		return true
	})
	if found != 1 {
		t.Fatalf("moved atom found %d times, want exactly once", found)
	}
}

func TestRenumber(t *testing.T) {
	s := buildStructure()
	s.FirstModel().Number = 9
	s.FirstModel().FindChain("A").Residue(0).Number = 100
	s.FirstModel().FindChain("B").ID = "X"
	s.FirstModel().FindChain("A").ID = "Q"
	s.Renumber()
	if s.FirstModel().Number != 1 {
		t.Errorf("model number got %d, want 1", s.FirstModel().Number)
	}
	if got := s.FirstModel().Chain(0).ID; got != "A" {
		t.Errorf("first chain identifier got %q, want A", got)
	}
	if got := s.FirstModel().Chain(1).ID; got != "B" {
		t.Errorf("second chain identifier got %q, want B", got)
	}
	want := 1
	s.EachAtom(func(ctx AtomContext) bool {
		if ctx.Atom.Serial != want {
			t.Errorf("atom serial got %d, want %d", ctx.Atom.Serial, want)
		}
		want++
		return true
	})
	for _, c := range s.FirstModel().Chains() {
		for i, r := range c.Residues() {
			if r.Number != i+1 {
				t.Errorf("chain %s residue %d numbered %d", c.ID, i, r.Number)
			}
		}
	}
}

func TestChainIdentifierSequence(t *testing.T) {
	cases := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, c := range cases {
		if got := chainIdentifier(c.index); got != c.want {
			t.Errorf("chainIdentifier(%d) = %q, want %q", c.index, got, c.want)
		}
	}
}

func TestRemoveEmpty(t *testing.T) {
	s := buildStructure()
	m := s.FirstModel()
	m.AddChain(NewChain("C"))
	empty := NewResidue(3, "")
	m.FindChain("A").AddResidue(empty)
	empty.AddConformer(NewConformer("GLY", ""))

	s.RemoveEmpty()
	if m.FindChain("C") != nil {
		t.Error("empty chain survived RemoveEmpty")
	}
	if m.FindChain("A").FindResidue(3, "") != nil {
		t.Error("residue with only empty conformers survived RemoveEmpty")
	}
	if s.AtomCount() != 5 {
		t.Errorf("atom count got %d, want 5", s.AtomCount())
	}
}

func TestJoinStructures(t *testing.T) {
	a := buildStructure()
	b := NewStructure("OTHER")
	m := NewModel(1)
	atom := NewAtom(99, "CA", 9, 9, 9)
	atom.Element = "C"
	m.EnsureChain("C").AddAtom(atom, 1, "", "GLY", "")
	s2 := NewModel(2)
	b.AddModel(m)
	b.AddModel(s2)

	a.Join(b)
	if a.ModelCount() != 2 {
		t.Fatalf("got %d models after join, want 2", a.ModelCount())
	}
	if a.FirstModel().FindChain("C") == nil {
		t.Error("joined chain C missing")
	}
	if a.AtomCount() != 6 {
		t.Errorf("atom count got %d, want 6", a.AtomCount())
	}
}

func TestApplyTransformation(t *testing.T) {
	s := buildStructure()
	s.ApplyTransformation(Translation(1, 2, 3))
	a := s.FirstModel().FindChain("A").Atoms()[0]
	if a.X != 2 || a.Y != 2 || a.Z != 3 {
		t.Errorf("translated atom got (%v, %v, %v), want (2, 2, 3)", a.X, a.Y, a.Z)
	}
}

func TestCopyIsDeep(t *testing.T) {
	s := buildStructure()
	c := s.Copy()
	c.FirstModel().FindChain("A").Atoms()[0].X = 999
	if s.FirstModel().FindChain("A").Atoms()[0].X == 999 {
		t.Fatal("Copy shares atom storage with the original")
	}
}
