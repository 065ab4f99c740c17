/*
 * errors.go, part of pdbio.
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
	"fmt"
	"strings"
)

// Severity classifies a Diagnostic, from harmless to unrecoverable.
type Severity int

const (
	// Info marks records that were skipped or values that were assumed
	// without harm, like an unsupported record type. Never rejects.
	Info Severity = iota
	// Warning marks deviations tolerated by most software. Rejects only
	// under Strict.
	Warning
	// StrictWarning marks violations of the format specification proper.
	// Rejects under Normal and Strict.
	StrictWarning
	// Invalid marks values that could not be decoded or are out of range
	// for the target format. Rejects under Normal and Strict.
	Invalid
	// Fatal marks framing-level corruption. Rejects under every policy.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case StrictWarning:
		return "StrictWarning"
	case Invalid:
		return "Invalid"
	case Fatal:
		return "Fatal"
	}
	return "Unknown"
}

// Strictness is the severity threshold used to turn a diagnostic list
// into an accept/reject verdict. It is always passed explicitly; the
// package keeps no ambient policy state.
type Strictness int

const (
	// Permissive rejects only Fatal diagnostics.
	Permissive Strictness = iota
	// Normal additionally rejects StrictWarning and Invalid.
	Normal
	// Strict rejects everything above Info.
	Strict
)

func (l Strictness) String() string {
	switch l {
	case Permissive:
		return "Permissive"
	case Normal:
		return "Normal"
	case Strict:
		return "Strict"
	}
	return "Unknown"
}

func (l Strictness) threshold() Severity {
	switch l {
	case Strict:
		return Warning
	case Normal:
		return StrictWarning
	default:
		return Fatal
	}
}

// Fails reports whether a diagnostic of this severity rejects under the
// given policy.
func (s Severity) Fails(level Strictness) bool {
	return s >= level.threshold()
}

// Context is the locus of a diagnostic: which source, which line, and
// optionally which column span inside that line.
type Context struct {
	Source string // file name or stream description, may be empty
	Line   int    // 1-based line number, 0 when not tied to a line
	Text   string // the offending line or token
	Offset int    // 0-based column offset of the highlighted span
	Length int    // length of the highlighted span, 0 for the whole line
}

func lineContext(line int, text string, offset, length int) Context {
	return Context{Line: line, Text: text, Offset: offset, Length: length}
}

func fullLineContext(line int, text string) Context {
	return Context{Line: line, Text: text}
}

func (c Context) String() string {
	switch {
	case c.Line > 0 && c.Length > 0:
		return fmt.Sprintf("line %d, columns %d-%d: %q", c.Line, c.Offset+1, c.Offset+c.Length, c.Text)
	case c.Line > 0:
		return fmt.Sprintf("line %d: %q", c.Line, c.Text)
	case c.Source != "":
		return c.Source
	case c.Text != "":
		return fmt.Sprintf("%q", c.Text)
	}
	return ""
}

// Error is the interface all errors of this library implement. The
// Decorate method adds information on the calling function when an
// error is passed up, without wrapping it in another type. Passing an
// empty string only retrieves the current decoration.
type Error interface {
	error
	Decorate(string) []string
}

// Diagnostic is a classified problem found while reading, validating or
// writing. It implements Error; only Fatal diagnostics normally travel
// as Go errors, the rest accumulate in a DiagList.
type Diagnostic struct {
	Level Severity
	Short string  // one-line identification of the problem
	Long  string  // explanation, may be empty
	Ctx   Context // where it happened
	deco  []string
}

func newDiag(level Severity, short, long string, ctx Context) *Diagnostic {
	return &Diagnostic{Level: level, Short: short, Long: long, Ctx: ctx}
}

func (d *Diagnostic) Error() string {
	msg := fmt.Sprintf("%s: %s", d.Level, d.Short)
	if loc := d.Ctx.String(); loc != "" {
		msg += " (" + loc + ")"
	}
	if d.Long != "" {
		msg += ": " + d.Long
	}
	if len(d.deco) > 0 {
		msg += " [" + strings.Join(d.deco, "/") + "]"
	}
	return msg
}

func (d *Diagnostic) Decorate(deco string) []string {
	if deco != "" {
		d.deco = append(d.deco, deco)
	}
	return d.deco
}

// Fails reports whether this diagnostic rejects under the given policy.
func (d *Diagnostic) Fails(level Strictness) bool {
	return d.Level.Fails(level)
}

// DiagList is an ordered list of diagnostics, in the order they were
// found.
type DiagList []*Diagnostic

// Fails reports whether any diagnostic in the list rejects under the
// given policy. The verdict is a pure function of the list and the
// policy.
func (l DiagList) Fails(level Strictness) bool {
	for _, d := range l {
		if d.Fails(level) {
			return true
		}
	}
	return false
}

// AtLeast returns the diagnostics at or above the given severity.
func (l DiagList) AtLeast(s Severity) DiagList {
	var out DiagList
	for _, d := range l {
		if d.Level >= s {
			out = append(out, d)
		}
	}
	return out
}

func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
