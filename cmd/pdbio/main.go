/*
 * main.go, part of pdbio.
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

// Command pdbio inspects and converts macromolecular structure files.
package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/biofmt/pdbio"
)

var CLI struct {
	Level string `name:"level" default:"normal" enum:"permissive,normal,strict" help:"Strictness policy: permissive, normal or strict"`

	Stats   StatsCmd   `cmd:"" help:"Print counts and metadata for a structure file"`
	Convert ConvertCmd `cmd:"" help:"Convert a structure file between formats"`
}

func level() pdbio.Strictness {
	switch CLI.Level {
	case "permissive":
		return pdbio.Permissive
	case "strict":
		return pdbio.Strict
	}
	return pdbio.Normal
}

type StatsCmd struct {
	Path string `arg:"" type:"existingfile" help:"Structure file (.pdb/.cif, optionally compressed)"`
}

func (c *StatsCmd) Run() error {
	s, diags, err := pdbio.ReadFile(c.Path, level())
	printDiags(diags)
	if err != nil {
		return err
	}
	if s.ID != "" {
		fmt.Printf("Entry:      %s\n", s.ID)
	}
	fmt.Printf("Models:     %d\n", s.ModelCount())
	fmt.Printf("Chains:     %d\n", s.ChainCount())
	fmt.Printf("Residues:   %d\n", s.ResidueCount())
	fmt.Printf("Atoms:      %d\n", s.AtomCount())
	if s.Cell != nil {
		fmt.Printf("Unit cell:  %.3f %.3f %.3f  %.2f %.2f %.2f\n",
			s.Cell.A, s.Cell.B, s.Cell.C, s.Cell.Alpha, s.Cell.Beta, s.Cell.Gamma)
	}
	if s.Symmetry != nil {
		fmt.Printf("Space group: %s (%d)\n", s.Symmetry.Symbol, s.Symmetry.Index())
	}
	return nil
}

type ConvertCmd struct {
	In  string `arg:"" type:"existingfile" help:"Input structure file"`
	Out string `arg:"" help:"Output structure file; the extension picks the format"`
}

func (c *ConvertCmd) Run() error {
	s, diags, err := pdbio.ReadFile(c.In, level())
	printDiags(diags)
	if err != nil {
		return err
	}
	format, ok := pdbio.FormatForPath(c.Out)
	if !ok {
		return fmt.Errorf("cannot infer a format from %q", c.Out)
	}
	prep := pdbio.Prepare(s, level(), format)
	printDiags(prep)
	wdiags, err := pdbio.WriteFile(c.Out, s, level())
	printDiags(wdiags)
	return err
}

func printDiags(diags pdbio.DiagList) {
	for _, d := range diags {
		fmt.Println(d.Error())
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pdbio"),
		kong.Description("Read, validate and convert PDB and mmCIF structure files"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
