/*
 * mmcifwrite.go, part of pdbio.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biofmt/pdbio/fields"
)

// MMCIFWrite renders the structure in the tag/table format without
// validating it first; callers wanting validation go through Write.
func MMCIFWrite(w io.Writer, s *Structure) error {
	bw := bufio.NewWriter(w)
	name := s.ID
	if name == "" {
		name = "?"
	}
	var err error
	line := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(bw, format+"\n", args...)
	}

	line("data_%s", name)
	line("#")
	line("_entry.id   %s", name)
	line("#")

	if s.Cell != nil {
		z := "?"
		if s.Symmetry != nil {
			z = strconv.Itoa(s.Symmetry.Z)
		}
		line("_cell.entry_id           %s", name)
		line("_cell.length_a           %s", fields.FormatFloat(s.Cell.A))
		line("_cell.length_b           %s", fields.FormatFloat(s.Cell.B))
		line("_cell.length_c           %s", fields.FormatFloat(s.Cell.C))
		line("_cell.angle_alpha        %s", fields.FormatFloat(s.Cell.Alpha))
		line("_cell.angle_beta         %s", fields.FormatFloat(s.Cell.Beta))
		line("_cell.angle_gamma        %s", fields.FormatFloat(s.Cell.Gamma))
		line("_cell.Z_PDB              %s", z)
		line("#")
	}
	if s.Symmetry != nil {
		line("_symmetry.entry_id                         %s", name)
		line("_symmetry.space_group_name_H-M             '%s'", s.Symmetry.Symbol)
		line("_symmetry.Int_Tables_number                %d", s.Symmetry.Index())
		line("#")
	}

	anisou := false
	for _, a := range s.Atoms() {
		if _, ok := a.Aniso(); ok {
			anisou = true
			break
		}
	}

	line("loop_")
	for _, tag := range []string{
		"group_PDB", "id", "type_symbol", "label_atom_id", "label_alt_id",
		"label_comp_id", "label_asym_id", "label_entity_id", "label_seq_id",
		"pdbx_PDB_ins_code", "Cartn_x", "Cartn_y", "Cartn_z",
		"occupancy", "B_iso_or_equiv", "pdbx_formal_charge", "pdbx_PDB_model_num",
	} {
		line("_atom_site.%s", tag)
	}
	if anisou {
		for _, tag := range []string{
			"aniso_U[1][1]", "aniso_U[2][2]", "aniso_U[3][3]",
			"aniso_U[1][2]", "aniso_U[1][3]", "aniso_U[2][3]",
		} {
			line("_atom_site.%s", tag)
		}
	}

	var rows [][]string
	for _, m := range s.Models() {
		entity := 0
		for _, c := range m.Chains() {
			entity++
			c.eachAtomCtx(m, func(ctx AtomContext) {
				rows = append(rows, atomSiteRow(ctx, entity, anisou))
			})
		}
	}
	if err == nil {
		err = writeAligned(bw, rows)
	}
	line("#")

	if err != nil {
		return errDecorate(err, "MMCIFWrite")
	}
	if err := bw.Flush(); err != nil {
		return errDecorate(err, "MMCIFWrite")
	}
	return nil
}

func atomSiteRow(ctx AtomContext, entity int, anisou bool) []string {
	a := ctx.Atom
	group := "ATOM"
	if a.Hetero {
		group = "HETATM"
	}
	row := []string{
		group,
		strconv.Itoa(a.Serial),
		orUnknown(a.Element),
		orUnknown(a.Name),
		orInapplicable(ctx.Conformer.AltLoc),
		orUnknown(ctx.Conformer.Name),
		orUnknown(ctx.Chain.ID),
		strconv.Itoa(entity),
		strconv.Itoa(ctx.Residue.Number),
		orInapplicable(ctx.Residue.InsCode),
		fields.FormatFloat(a.X),
		fields.FormatFloat(a.Y),
		fields.FormatFloat(a.Z),
		fields.FormatFloat(a.Occupancy),
		fields.FormatFloat(a.BFactor),
		strconv.Itoa(a.Charge),
		strconv.Itoa(ctx.Model.Number),
	}
	if anisou {
		if u, ok := a.Aniso(); ok {
			for _, v := range u {
				row = append(row, fields.FormatFloat(v))
			}
		} else {
			row = append(row, ".", ".", ".", ".", ".", ".")
		}
	}
	return row
}

// writeAligned pads every column of the table to its widest cell.
func writeAligned(w io.Writer, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	var b strings.Builder
	for _, row := range rows {
		b.Reset()
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

func orInapplicable(s string) string {
	if s == "" {
		return "."
	}
	return s
}
