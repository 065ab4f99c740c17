/*
 * symmetry.go, part of pdbio.
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

import "strings"

// Symmetry holds the space group of the crystal as its
// Hermann-Mauguin symbol plus the Z value of the CRYST1 record.
type Symmetry struct {
	Symbol string // Hermann-Mauguin symbol, e.g. "P 21 21 21"
	Z      int
}

// NewSymmetry returns the symmetry for the given Hermann-Mauguin
// symbol. The symbol is kept as given apart from trimming; unknown
// symbols are legal, they simply have no international tables number.
func NewSymmetry(symbol string) *Symmetry {
	return &Symmetry{Symbol: strings.TrimSpace(symbol), Z: 1}
}

// SymmetryFromIndex returns the symmetry for an international tables
// number, or nil when the number is not in the reference table.
func SymmetryFromIndex(index int) *Symmetry {
	best := ""
	for sym, n := range spaceGroupNumbers {
		if n == index && (best == "" || sym < best) {
			best = sym
		}
	}
	if best == "" {
		return nil
	}
	return &Symmetry{Symbol: best, Z: 1}
}

// Index returns the international tables number for the space group, or
// 0 when the symbol is not in the reference table.
func (s *Symmetry) Index() int {
	return spaceGroupNumbers[s.Symbol]
}

// The space groups covering the overwhelming majority of deposited
// macromolecular structures, keyed by Hermann-Mauguin symbol.
var spaceGroupNumbers = map[string]int{
	"P 1":        1,
	"P 1 2 1":    3,
	"P 1 21 1":   4,
	"C 1 2 1":    5,
	"P 2 2 2":    16,
	"P 2 2 21":   17,
	"P 21 21 2":  18,
	"P 21 21 21": 19,
	"C 2 2 21":   20,
	"C 2 2 2":    21,
	"F 2 2 2":    22,
	"I 2 2 2":    23,
	"I 21 21 21": 24,
	"P 4":        75,
	"P 41":       76,
	"P 42":       77,
	"P 43":       78,
	"I 4":        79,
	"I 41":       80,
	"P 4 2 2":    89,
	"P 4 21 2":   90,
	"P 41 2 2":   91,
	"P 41 21 2":  92,
	"P 42 2 2":   93,
	"P 42 21 2":  94,
	"P 43 2 2":   95,
	"P 43 21 2":  96,
	"I 4 2 2":    97,
	"I 41 2 2":   98,
	"P 3":        143,
	"P 31":       144,
	"P 32":       145,
	"R 3":        146,
	"P 3 1 2":    149,
	"P 3 2 1":    150,
	"P 31 1 2":   151,
	"P 31 2 1":   152,
	"P 32 1 2":   153,
	"P 32 2 1":   154,
	"R 3 2":      155,
	"P 6":        168,
	"P 61":       169,
	"P 65":       170,
	"P 62":       171,
	"P 64":       172,
	"P 63":       173,
	"P 6 2 2":    177,
	"P 61 2 2":   178,
	"P 65 2 2":   179,
	"P 62 2 2":   180,
	"P 64 2 2":   181,
	"P 63 2 2":   182,
	"P 2 3":      195,
	"F 2 3":      196,
	"I 2 3":      197,
	"P 21 3":     198,
	"I 21 3":     199,
	"P 4 3 2":    207,
	"P 42 3 2":   208,
	"F 4 3 2":    209,
	"F 41 3 2":   210,
	"I 4 3 2":    211,
	"P 43 3 2":   212,
	"P 41 3 2":   213,
	"I 41 3 2":   214,
	"H 3":        146,
	"H 3 2":      155,
}
