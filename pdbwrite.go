/*
 * pdbwrite.go, part of pdbio.
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
	"math"
	"strings"

	"github.com/biofmt/pdbio/fields"
)

type pdbWriter struct {
	w        *bufio.Writer
	level    Strictness
	err      error
	terCount int
}

// line writes one record, padded to 70 columns unless the policy is
// permissive.
func (pw *pdbWriter) line(format string, args ...interface{}) {
	if pw.err != nil {
		return
	}
	text := fmt.Sprintf(format, args...)
	if pw.level != Permissive && len(text) < 70 {
		text += strings.Repeat(" ", 70-len(text))
	}
	_, pw.err = pw.w.WriteString(text + "\n")
}

// PDBWrite renders the structure in the fixed-column format without
// validating it first; callers wanting validation go through Write.
// Degenerate empty levels are silently skipped. The strictness level
// only changes cosmetics: a permissive write skips line padding and
// the MASTER record.
func PDBWrite(w io.Writer, s *Structure, level Strictness) error {
	pw := &pdbWriter{w: bufio.NewWriter(w), level: level}

	if s.ID != "" {
		pw.line("HEADER%56s%s", "", s.ID)
	}
	for _, r := range s.Remarks {
		pw.line("REMARK %3d %s", r.Number, r.Content)
	}
	if m := s.FirstModel(); m != nil {
		pw.metadata(s, m)
	}
	if s.Cell != nil {
		sym := fmt.Sprintf("%-11s%4d", "P 1", 1)
		if s.Symmetry != nil {
			sym = fmt.Sprintf("%-11s%4d", s.Symmetry.Symbol, s.Symmetry.Z)
		}
		pw.line("CRYST1%s%s%s%s%s%s %s",
			encodeFloat(s.Cell.A, 9, 3), encodeFloat(s.Cell.B, 9, 3), encodeFloat(s.Cell.C, 9, 3),
			encodeFloat(s.Cell.Alpha, 7, 2), encodeFloat(s.Cell.Beta, 7, 2), encodeFloat(s.Cell.Gamma, 7, 2),
			sym)
	}
	if s.Scale != nil {
		pw.matrix("SCALE", s.Scale)
	}
	if s.OrigX != nil {
		pw.matrix("ORIGX", s.OrigX)
	}
	for _, t := range s.NCS {
		given := " "
		if t.Given {
			given = "1"
		}
		for row := 0; row < 3; row++ {
			r := t.Row(row)
			pw.line("MTRIX%d %3d%s%s%s     %s    %s", row+1, t.Serial,
				encodeFloat(r[0], 10, 6), encodeFloat(r[1], 10, 6), encodeFloat(r[2], 10, 6),
				encodeFloat(r[3], 10, 5), given)
		}
	}

	multiple := s.ModelCount() > 1
	for _, m := range s.Models() {
		if multiple {
			pw.line("MODEL     %4d", m.Number)
		}
		pw.model(m)
		if multiple {
			pw.line("ENDMDL")
		}
	}
	if level != Permissive {
		xform := 0
		if s.OrigX != nil {
			xform += 3
		}
		if s.Scale != nil {
			xform += 3
		}
		xform += 3 * len(s.NCS)
		pw.line("MASTER    %5d%5d%5d%5d%5d%5d%5d%5d%5d%5d%5d%5d",
			len(s.Remarks), 0, 0, 0, 0, 0, 0, xform, s.AtomCount(), pw.terCount, 0, 0)
	}
	pw.line("END")

	if pw.err != nil {
		return errDecorate(pw.err, "PDBWrite")
	}
	if err := pw.w.Flush(); err != nil {
		return errDecorate(err, "PDBWrite")
	}
	return nil
}

// metadata writes the sequence-level records, taken from the first
// model since they describe chains, not coordinates.
func (pw *pdbWriter) metadata(s *Structure, m *Model) {
	seqres := pw.level == Strict || len(s.SeqRes) > 0
	for _, c := range m.Chains() {
		ref := c.DBRef
		if ref == nil {
			continue
		}
		seqres = true
		pw.line("DBREF  %-4s %1s %s%1s %s%1s %-6s %-8s %-12s %5d%1s %5d%1s",
			s.ID, c.ID,
			encodeInt(ref.Local[0].Number, 4), ref.Local[0].InsCode,
			encodeInt(ref.Local[1].Number, 4), ref.Local[1].InsCode,
			ref.Database, ref.Accession, ref.IDCode,
			ref.Remote[0].Number, ref.Remote[0].InsCode,
			ref.Remote[1].Number, ref.Remote[1].InsCode)
	}
	for _, c := range m.Chains() {
		ref := c.DBRef
		if ref == nil {
			continue
		}
		for _, d := range ref.Differences {
			remoteName, remoteNumber := "", 0
			if d.Remote != nil {
				remoteName, remoteNumber = d.Remote.Name, d.Remote.Number
			}
			pw.line("SEQADV %-4s %-3s %1s %s%1s %-4s %-9s %-3s %5d %s",
				s.ID, d.Local.Name, c.ID,
				encodeInt(d.Local.Number, 4), d.Local.InsCode,
				ref.Database, ref.Accession, remoteName, remoteNumber, d.Comment)
		}
	}
	if seqres {
		for _, c := range m.Chains() {
			names := s.SeqRes[c.ID]
			if names == nil {
				for _, r := range c.Residues() {
					names = append(names, r.Name())
				}
			}
			serial := 0
			for start := 0; start < len(names); start += 13 {
				end := start + 13
				if end > len(names) {
					end = len(names)
				}
				padded := make([]string, 0, 13)
				for _, n := range names[start:end] {
					padded = append(padded, fmt.Sprintf("%-3s", n))
				}
				serial++
				pw.line("SEQRES %3d %1s %s  %s", serial, c.ID,
					encodeInt(len(names), 4), strings.Join(padded, " "))
			}
		}
	}
	for _, c := range m.Chains() {
		for _, r := range c.Residues() {
			for _, conf := range r.Conformers() {
				if conf.Modified == nil {
					continue
				}
				pw.line("MODRES %-4s %-3s %1s %s%1s %-3s  %s",
					"", conf.Name, c.ID, encodeInt(r.Number, 4), r.InsCode,
					conf.Modified.Standard, conf.Modified.Comment)
			}
		}
	}
}

func (pw *pdbWriter) matrix(name string, t *Transformation) {
	for row := 0; row < 3; row++ {
		r := t.Row(row)
		pw.line("%s%d    %s%s%s     %s", name, row+1,
			encodeFloat(r[0], 10, 6), encodeFloat(r[1], 10, 6), encodeFloat(r[2], 10, 6),
			encodeFloat(r[3], 10, 5))
	}
}

// model writes the coordinate records of one model. A chain's run of
// standard atoms is closed by a TER record, but only when further
// records follow within the model; a chain that cleanly ends the model
// needs no terminator.
func (pw *pdbWriter) model(m *Model) {
	chains := m.Chains()
	for ci, c := range chains {
		var lastStandard AtomContext
		sawStandard, trailing := false, false
		c.eachAtomCtx(m, func(ctx AtomContext) {
			pw.atomLine(ctx)
			if !ctx.Atom.Hetero {
				lastStandard = ctx
				sawStandard = true
				trailing = false
			} else if sawStandard {
				trailing = true
			}
		})
		if sawStandard && (trailing || ci < len(chains)-1) {
			pw.terCount++
			pw.line("TER   %s      %-3s %1s%s",
				encodeInt(lastStandard.Atom.Serial, 5),
				lastStandard.Conformer.Name, c.ID,
				encodeInt(lastStandard.Residue.Number, 4))
		}
	}
}

// eachAtomCtx walks one chain's atoms with full context.
func (c *Chain) eachAtomCtx(m *Model, fn func(AtomContext)) {
	for _, r := range c.residues {
		for _, conf := range r.conformers {
			for _, a := range conf.atoms {
				fn(AtomContext{Model: m, Chain: c, Residue: r, Conformer: conf, Atom: a})
			}
		}
	}
}

func (pw *pdbWriter) atomLine(ctx AtomContext) {
	a := ctx.Atom
	record := "ATOM  "
	if a.Hetero {
		record = "HETATM"
	}
	ident := fmt.Sprintf("%s %s%1s%-4s%1s%s%1s",
		encodeInt(a.Serial, 5), centerName(a.Name), ctx.Conformer.AltLoc,
		ctx.Conformer.Name, ctx.Chain.ID,
		encodeInt(ctx.Residue.Number, 4), ctx.Residue.InsCode)
	pw.line("%s%s   %s%s%s%s%s          %2s%s", record, ident,
		encodeFloat(a.X, 8, 3), encodeFloat(a.Y, 8, 3), encodeFloat(a.Z, 8, 3),
		encodeFloat(a.Occupancy, 6, 2), encodeFloat(a.BFactor, 6, 2),
		a.Element, chargeToken(a.Charge))
	if u, ok := a.Aniso(); ok {
		pw.line("ANISOU%s %7d%7d%7d%7d%7d%7d      %2s%s", ident,
			scaled(u[0]), scaled(u[1]), scaled(u[2]),
			scaled(u[3]), scaled(u[4]), scaled(u[5]),
			a.Element, chargeToken(a.Charge))
	}
}

func scaled(v float64) int {
	return int(math.Round(v * 10000))
}

// centerName places an atom name in its four columns: short names sit
// one column in, matching the usual alignment for single-letter
// elements.
func centerName(name string) string {
	if len(name) >= 4 {
		return name[:4]
	}
	centered := name
	for len(centered) < 4 {
		if (4-len(centered))%2 == 1 {
			centered += " "
		} else {
			centered = " " + centered
		}
	}
	return centered
}

func chargeToken(charge int) string {
	if charge == 0 {
		return ""
	}
	if charge < 0 {
		return fmt.Sprintf("%d-", -charge)
	}
	return fmt.Sprintf("%d+", charge)
}

// encodeInt renders a serial field, falling back to asterisk fill when
// even the extended radix cannot hold the value. Validation catches
// that case before a non-raw write.
func encodeInt(v, width int) string {
	token, err := fields.EncodeInt(v, width)
	if err != nil {
		return strings.Repeat("*", width)
	}
	return token
}

func encodeFloat(v float64, width, prec int) string {
	token, err := fields.EncodeFloat(v, width, prec)
	if err != nil {
		return strings.Repeat("*", width)
	}
	return token
}
