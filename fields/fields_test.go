/*
 * fields_test.go, part of pdbio.
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

package fields

import "testing"

func TestEncodeIntDecimal(t *testing.T) {
	cases := []struct {
		v, width int
		want     string
	}{
		{0, 5, "    0"},
		{1, 5, "    1"},
		{99999, 5, "99999"},
		{-1, 4, "  -1"},
		{-999, 4, "-999"},
		{9999, 4, "9999"},
	}
	for _, c := range cases {
		got, err := EncodeInt(c.v, c.width)
		if err != nil {
			t.Errorf("EncodeInt(%d, %d): %v", c.v, c.width, err)
			continue
		}
		if got != c.want {
			t.Errorf("EncodeInt(%d, %d) = %q, want %q", c.v, c.width, got, c.want)
		}
	}
}

func TestEncodeIntHybrid(t *testing.T) {
	cases := []struct {
		v, width int
		want     string
	}{
		{100000, 5, "A0000"},
		{100001, 5, "A0001"},
		{100000 + 26*36*36*36*36 - 1, 5, "ZZZZZ"},
		{100000 + 26*36*36*36*36, 5, "a0000"},
		{10000, 4, "A000"},
	}
	for _, c := range cases {
		got, err := EncodeInt(c.v, c.width)
		if err != nil {
			t.Errorf("EncodeInt(%d, %d): %v", c.v, c.width, err)
			continue
		}
		if got != c.want {
			t.Errorf("EncodeInt(%d, %d) = %q, want %q", c.v, c.width, got, c.want)
		}
	}
}

// Every value around and beyond the decimal capacity must encode to a
// distinct token and decode back to the original integer.
func TestIntRoundTrip(t *testing.T) {
	seen := make(map[string]int)
	for v := 99990; v < 100500; v++ {
		tok, err := EncodeInt(v, 5)
		if err != nil {
			t.Fatalf("EncodeInt(%d, 5): %v", v, err)
		}
		if len(tok) != 5 {
			t.Fatalf("EncodeInt(%d, 5) = %q, not 5 columns", v, tok)
		}
		if prev, ok := seen[tok]; ok {
			t.Fatalf("token %q produced for both %d and %d", tok, prev, v)
		}
		seen[tok] = v
		back, err := DecodeInt(tok)
		if err != nil {
			t.Fatalf("DecodeInt(%q): %v", tok, err)
		}
		if back != v {
			t.Fatalf("DecodeInt(%q) = %d, want %d", tok, back, v)
		}
	}
}

func TestDecodeIntPlain(t *testing.T) {
	if v, err := DecodeInt("  123"); err != nil || v != 123 {
		t.Errorf("DecodeInt .. 123 = %d, %v", v, err)
	}
	if v, err := DecodeInt(" -12 "); err != nil || v != -12 {
		t.Errorf("DecodeInt -12 = %d, %v", v, err)
	}
	if _, err := DecodeInt("12x4"); err == nil {
		t.Error("DecodeInt accepted a mixed token")
	}
	if _, err := DecodeInt("   "); err == nil {
		t.Error("DecodeInt accepted an empty field")
	}
}

func TestEncodeFloat(t *testing.T) {
	cases := []struct {
		v           float64
		width, prec int
		want        string
	}{
		{0, 8, 3, "   0.000"},
		{12.345, 8, 3, "  12.345"},
		{-999.999, 8, 3, "-999.999"},
		{1, 6, 2, "  1.00"},
		// Precision is shed before the field overflows.
		{12345.6789, 8, 3, "12345.68"},
		{123456.7, 8, 3, "123456.7"},
	}
	for _, c := range cases {
		got, err := EncodeFloat(c.v, c.width, c.prec)
		if err != nil {
			t.Errorf("EncodeFloat(%g, %d, %d): %v", c.v, c.width, c.prec, err)
			continue
		}
		if got != c.want {
			t.Errorf("EncodeFloat(%g, %d, %d) = %q, want %q", c.v, c.width, c.prec, got, c.want)
		}
	}
	if _, err := EncodeFloat(123456789.0, 8, 3); err == nil {
		t.Error("EncodeFloat accepted a value too wide for its field")
	}
}

func TestDecodeScaledInt(t *testing.T) {
	v, err := DecodeScaledInt("  2000", 1e-4)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0.2 {
		t.Errorf("DecodeScaledInt = %g, want 0.2", v)
	}
}

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{1, "1.0"},
		{128734, "128734.0"},
		{0.1, "0.1"},
		{1.015, "1.015"},
		{1.4235263, "1.42353"},
	}
	for _, c := range cases {
		if got := FormatFloat(c.v); got != c.want {
			t.Errorf("FormatFloat(%g) = %q, want %q", c.v, got, c.want)
		}
	}
}
