/*
 * validate_test.go, part of pdbio.
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

func TestDiagnosticsIndependentOfPolicy(t *testing.T) {
	s := buildStructure()
	// A chain identifier too wide for the fixed-column format plus a
	// duplicate serial, so the list has entries at several levels.
	s.FirstModel().FindChain("A").ID = "AB"
	s.FirstModel().FindChain("B").Atoms()[0].Serial = 1

	diags := Validate(s, FormatPDB)
	if len(diags) == 0 {
		t.Fatal("expected diagnostics")
	}
	// The list is computed from the structure alone. Policy enters only
	// when the verdict is taken.
	for _, level := range []Strictness{Permissive, Normal, Strict} {
		again := Validate(s, FormatPDB)
		if len(again) != len(diags) {
			t.Fatalf("diagnostic count varies: %d vs %d", len(again), len(diags))
		}
		for i := range diags {
			if again[i].Level != diags[i].Level || again[i].Short != diags[i].Short {
				t.Errorf("diagnostic %d differs on a repeat run", i)
			}
		}
		_ = Accept(diags, level)
	}
}

func TestSeverityThresholds(t *testing.T) {
	cases := []struct {
		level  Severity
		reject [3]bool // Permissive, Normal, Strict
	}{
		{Info, [3]bool{false, false, false}},
		{Warning, [3]bool{false, false, true}},
		{StrictWarning, [3]bool{false, true, true}},
		{Invalid, [3]bool{false, true, true}},
		{Fatal, [3]bool{true, true, true}},
	}
	for _, c := range cases {
		diags := DiagList{newDiag(c.level, "probe", "probe", Context{})}
		for i, level := range []Strictness{Permissive, Normal, Strict} {
			if got := !Accept(diags, level); got != c.reject[i] {
				t.Errorf("severity %v under policy %v: reject=%v, want %v",
					c.level, level, got, c.reject[i])
			}
		}
	}
}

func TestChainIDChecksAreTargetSpecific(t *testing.T) {
	s := buildStructure()
	s.FirstModel().FindChain("A").ID = "LONG"

	if !Validate(s, FormatPDB).Fails(Normal) {
		t.Error("multi-character chain id should reject for the fixed-column target")
	}
	if Validate(s, FormatMMCIF).Fails(Normal) {
		t.Error("multi-character chain id is fine for the table target")
	}
}

func TestAtomRangeChecks(t *testing.T) {
	s := buildStructure()
	s.FirstModel().FindChain("A").Atoms()[0].X = 123456.0

	if !Validate(s, FormatPDB).Fails(Normal) {
		t.Error("coordinate beyond the fixed columns should reject")
	}
	if Validate(s, FormatMMCIF).Fails(Normal) {
		t.Error("the table target has no column width to overflow")
	}
}

func TestNegativeSerialAlwaysInvalid(t *testing.T) {
	s := buildStructure()
	s.FirstModel().FindChain("A").Atoms()[0].Serial = -1
	for _, target := range []Format{FormatPDB, FormatMMCIF} {
		if !Validate(s, target).Fails(Normal) {
			t.Errorf("negative serial accepted for target %v", target)
		}
	}
}

func TestEnsembleMismatch(t *testing.T) {
	s := buildStructure()
	second := s.FirstModel().Copy()
	second.Number = 2
	second.FindChain("A").Atoms()[0].Name = "CB"
	s.AddModel(second)

	diags := Validate(s, FormatPDB)
	if diags.Fails(Permissive) {
		t.Errorf("ensemble mismatch should be tolerated under the permissive policy: %v", diags)
	}
	if !diags.Fails(Normal) || !diags.Fails(Strict) {
		t.Error("ensemble mismatch should reject under the default and strict policies")
	}
}

func TestPrepareSynthesizesCrystalRecords(t *testing.T) {
	s := buildStructure()
	s.Cell = NewUnitCell(10, 10, 10, 90, 90, 90)

	diags := Prepare(s, Strict, FormatPDB)
	if s.OrigX == nil || !s.OrigX.Equal(Identity(), 1e-9) {
		t.Error("strict preparation should synthesize the identity origin transform")
	}
	if s.Scale == nil || !s.Scale.Equal(s.Cell.FractionalScale(), 1e-9) {
		t.Error("strict preparation should synthesize the fractional scale")
	}
	for _, d := range diags {
		if d.Level > Info {
			t.Errorf("synthesis reported above Info: %v", d)
		}
	}
}

func TestPreparePrunesEmptyLevels(t *testing.T) {
	s := buildStructure()
	s.FirstModel().AddChain(NewChain("Z"))

	diags := Prepare(s, Normal, FormatPDB)
	if s.FirstModel().FindChain("Z") != nil {
		t.Error("empty chain survived preparation")
	}
	if len(diags) == 0 {
		t.Error("pruning should be reported")
	}
}
