/*
 * elements.go, part of pdbio.
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

// elementSymbols lists the element symbols by atomic number, index 0
// unused.
var elementSymbols = []string{"",
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var elementNumbers = func() map[string]int {
	m := make(map[string]int, len(elementSymbols))
	for i := 1; i < len(elementSymbols); i++ {
		m[strings.ToUpper(elementSymbols[i])] = i
	}
	return m
}()

// A map for assigning mass to elements.
// Note that just common "bio-elements" are present.
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Cr": 51.996,
	"Si": 28.08,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}

// A map for assigning covalent radii to elements.
// Values from Cordero et al., 2008 (DOI:10.1039/B801115J).
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"C":  0.76, //the sp3 radius
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.2,
	"K":  2.03,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Cu": 1.32,
	"Zn": 1.22,
	"Co": 1.5,  // hs
	"Fe": 1.52, //hs
	"Mn": 1.61, //hs
	"Cr": 1.39,
	"Si": 1.11,
	"Be": 0.96,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
}

// A map for assigning van der Waals radii to elements.
// Values from 10.1021/j100785a001 and 10.1021/jp8111556,
// metal radii from 10.1023/A:1011625728803.
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70, //the sp3 radius
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Cl": 1.75,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Co": 1.95,
	"Fe": 1.96,
	"Mn": 1.96,
	"Cr": 1.97,
	"Si": 2.10,
	"Be": 1.53,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
}

// NormalizeElement canonicalizes an element symbol to its periodic
// table spelling ("FE" or "fe" to "Fe"). Unknown symbols come back
// unchanged with ok false.
func NormalizeElement(symbol string) (string, bool) {
	n, ok := elementNumbers[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return symbol, false
	}
	return elementSymbols[n], true
}

// AtomicNumber returns the atomic number for an element symbol, in
// any letter case, or 0 when the symbol is not an element.
func AtomicNumber(symbol string) int {
	return elementNumbers[strings.ToUpper(strings.TrimSpace(symbol))]
}

// AtomicNumber returns the atom's atomic number, or 0 when its
// element is unset or unknown.
func (a *Atom) AtomicNumber() int {
	return AtomicNumber(a.Element)
}

// Mass returns the atomic mass of the atom's element in Daltons, or 0
// when unknown. Only common bio-elements are covered.
func (a *Atom) Mass() float64 {
	sym, ok := NormalizeElement(a.Element)
	if !ok {
		return 0
	}
	return symbolMass[sym]
}

// CovalentRadius returns the covalent radius of the atom's element in
// Angstrom, or 0 when unknown. Only common bio-elements are covered.
func (a *Atom) CovalentRadius() float64 {
	sym, ok := NormalizeElement(a.Element)
	if !ok {
		return 0
	}
	return symbolCovrad[sym]
}

// VdwRadius returns the van der Waals radius of the atom's element in
// Angstrom, or 0 when unknown.
func (a *Atom) VdwRadius() float64 {
	sym, ok := NormalizeElement(a.Element)
	if !ok {
		return 0
	}
	return symbolVdwrad[sym]
}

// GuessElement tries to infer a chemical element symbol from a PDB
// atom name, for files whose element columns are blank. Mostly based
// on common biomolecular naming; a 4-character name or a leading H
// means hydrogen.
func GuessElement(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if len(name) == 4 || name[0] == 'H' {
		return "H", true
	}
	switch name[0] {
	case 'C':
		switch name {
		case "CU":
			return "Cu", true
		case "CO":
			return "Co", true
		case "CL":
			return "Cl", true
		case "CA":
			// an atom called CA is almost always an alpha carbon,
			// not calcium
			return "C", true
		}
		return "C", true
	case 'N':
		if name == "NA" {
			return "Na", true
		}
		return "N", true
	case 'O':
		return "O", true
	case 'P':
		return "P", true
	case 'S':
		if name == "SE" {
			return "Se", true
		}
		return "S", true
	case 'Z':
		if name == "ZN" {
			return "Zn", true
		}
	case 'F':
		if name == "FE" {
			return "Fe", true
		}
		return "F", true
	case 'M':
		switch name {
		case "MG":
			return "Mg", true
		case "MN":
			return "Mn", true
		}
	case 'K':
		return "K", true
	case 'I':
		return "I", true
	case 'B':
		if name == "BR" {
			return "Br", true
		}
	}
	return "", false
}

// standardResidues names the twenty standard amino acids plus the
// standard nucleotides, the residues TER closes in PDB output.
var standardResidues = map[string]bool{
	"ALA": true, "ARG": true, "ASN": true, "ASP": true, "CYS": true,
	"GLN": true, "GLU": true, "GLY": true, "HIS": true, "ILE": true,
	"LEU": true, "LYS": true, "MET": true, "PHE": true, "PRO": true,
	"SER": true, "THR": true, "TRP": true, "TYR": true, "VAL": true,
	"A": true, "C": true, "G": true, "U": true,
	"DA": true, "DC": true, "DG": true, "DT": true,
}

// IsStandardResidue reports whether the name is a standard amino acid
// or nucleotide.
func IsStandardResidue(name string) bool {
	return standardResidues[strings.ToUpper(strings.TrimSpace(name))]
}
