/*
 * mmcifscan.go, part of pdbio.
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
	"io"
	"strings"
)

// The tag/table grammar, reduced to what structure files use: one
// data_ block holding single `_tag value` items and loop_ tables.

type cifKind int

const (
	cifText         cifKind = iota
	cifInapplicable         // the `.` placeholder
	cifUnknown              // the `?` placeholder
)

type cifValue struct {
	kind cifKind
	text string
}

type cifSingle struct {
	name  string // full tag, e.g. "_cell.length_a"
	value cifValue
	line  int
}

type cifLoop struct {
	header []string
	rows   [][]cifValue
	line   int
}

// column returns the index of the named column, case-insensitive, or
// -1.
func (l *cifLoop) column(name string) int {
	for i, h := range l.header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

type cifBlock struct {
	name    string
	singles []cifSingle
	loops   []*cifLoop
}

func (b *cifBlock) single(name string) (cifValue, bool) {
	for _, s := range b.singles {
		if strings.EqualFold(s.name, name) {
			return s.value, true
		}
	}
	return cifValue{}, false
}

// loopWith returns the first loop whose columns all share the given
// category prefix, e.g. "_atom_site.".
func (b *cifBlock) loopWith(prefix string) *cifLoop {
	for _, l := range b.loops {
		if len(l.header) > 0 && strings.HasPrefix(strings.ToLower(l.header[0]), strings.ToLower(prefix)) {
			return l
		}
	}
	return nil
}

type cifTokenKind int

const (
	tokData cifTokenKind = iota
	tokLoop
	tokTag
	tokValue
)

type cifToken struct {
	kind  cifTokenKind
	text  string
	value cifValue
	line  int
}

type cifScanner struct {
	data string
	pos  int
	line int
}

func newCIFScanner(data string) *cifScanner {
	return &cifScanner{data: data, line: 1}
}

func (sc *cifScanner) advance() byte {
	c := sc.data[sc.pos]
	sc.pos++
	if c == '\n' {
		sc.line++
	}
	return c
}

func (sc *cifScanner) atLineStart() bool {
	return sc.pos == 0 || sc.data[sc.pos-1] == '\n'
}

// skipSpace consumes whitespace and comments.
func (sc *cifScanner) skipSpace() {
	for sc.pos < len(sc.data) {
		c := sc.data[sc.pos]
		if c == '#' {
			for sc.pos < len(sc.data) && sc.data[sc.pos] != '\n' {
				sc.pos++
			}
			continue
		}
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return
		}
		sc.advance()
	}
}

// next returns the next token, or an error on unterminated quoting.
func (sc *cifScanner) next() (cifToken, bool, error) {
	sc.skipSpace()
	if sc.pos >= len(sc.data) {
		return cifToken{}, false, nil
	}
	start := sc.line
	c := sc.data[sc.pos]

	if c == ';' && sc.atLineStart() {
		return sc.textField(start)
	}
	if c == '\'' || c == '"' {
		return sc.quoted(c, start)
	}

	word := sc.bareWord()
	lower := strings.ToLower(word)
	switch {
	case strings.HasPrefix(lower, "data_"):
		return cifToken{kind: tokData, text: word[len("data_"):], line: start}, true, nil
	case lower == "loop_":
		return cifToken{kind: tokLoop, line: start}, true, nil
	case strings.HasPrefix(word, "_"):
		return cifToken{kind: tokTag, text: word, line: start}, true, nil
	case word == ".":
		return cifToken{kind: tokValue, value: cifValue{kind: cifInapplicable}, line: start}, true, nil
	case word == "?":
		return cifToken{kind: tokValue, value: cifValue{kind: cifUnknown}, line: start}, true, nil
	}
	return cifToken{kind: tokValue, value: cifValue{text: word}, line: start}, true, nil
}

func (sc *cifScanner) bareWord() string {
	start := sc.pos
	for sc.pos < len(sc.data) {
		c := sc.data[sc.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			break
		}
		sc.advance()
	}
	return sc.data[start:sc.pos]
}

func (sc *cifScanner) quoted(quote byte, startLine int) (cifToken, bool, error) {
	sc.advance() // opening quote
	start := sc.pos
	for sc.pos < len(sc.data) {
		c := sc.data[sc.pos]
		if c == '\n' {
			return cifToken{}, false, fmt.Errorf("pdbio: unterminated quote on line %d", startLine)
		}
		// A closing quote must be followed by whitespace; an embedded
		// quote character is data.
		if c == quote {
			end := sc.pos
			sc.advance()
			if sc.pos >= len(sc.data) || isCIFSpace(sc.data[sc.pos]) {
				return cifToken{kind: tokValue, value: cifValue{text: sc.data[start:end]}, line: startLine}, true, nil
			}
			continue
		}
		sc.advance()
	}
	return cifToken{}, false, fmt.Errorf("pdbio: unterminated quote on line %d", startLine)
}

// textField consumes a semicolon-delimited multi-line value.
func (sc *cifScanner) textField(startLine int) (cifToken, bool, error) {
	sc.advance() // opening semicolon
	start := sc.pos
	for sc.pos < len(sc.data) {
		if sc.data[sc.pos] == ';' && sc.atLineStart() {
			text := strings.TrimSuffix(sc.data[start:sc.pos], "\n")
			text = strings.TrimSuffix(text, "\r")
			sc.advance() // closing semicolon
			return cifToken{kind: tokValue, value: cifValue{text: text}, line: startLine}, true, nil
		}
		sc.advance()
	}
	return cifToken{}, false, fmt.Errorf("pdbio: unterminated text field starting on line %d", startLine)
}

func isCIFSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// scanCIF reads the stream into its first data block. A stream with no
// data block at all has no recognizable framing, the one truly fatal
// read failure.
func scanCIF(r io.Reader) (*cifBlock, DiagList, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errDecorate(err, "scanCIF")
	}
	var diags DiagList
	sc := newCIFScanner(string(raw))
	var block *cifBlock
	var loop *cifLoop     // loop currently being filled, nil outside one
	var inHeader bool     // still collecting loop column names
	var pendingTag string // single item tag awaiting its value
	pendingLine := 0

	for {
		tok, ok, err := sc.next()
		if err != nil {
			return nil, diags, err
		}
		if !ok {
			break
		}
		switch tok.kind {
		case tokData:
			if block != nil {
				// Multiple blocks: everything past the first is out
				// of scope for a structure file.
				diags = append(diags, newDiag(Info, "Extra data block",
					fmt.Sprintf("Data block %q after the first was skipped", tok.text),
					Context{Line: tok.line}))
				return block, diags, nil
			}
			block = &cifBlock{name: tok.text}
		case tokLoop:
			if block == nil {
				return nil, diags, fmt.Errorf("pdbio: loop before any data block on line %d", tok.line)
			}
			loop = &cifLoop{line: tok.line}
			inHeader = true
			block.loops = append(block.loops, loop)
		case tokTag:
			if block == nil {
				return nil, diags, fmt.Errorf("pdbio: tag %s before any data block on line %d", tok.text, tok.line)
			}
			if loop != nil && inHeader {
				loop.header = append(loop.header, tok.text)
				continue
			}
			loop = nil
			if pendingTag != "" {
				diags = append(diags, newDiag(Invalid, "Tag without value",
					fmt.Sprintf("Tag %s has no value", pendingTag),
					Context{Line: pendingLine}))
			}
			pendingTag = tok.text
			pendingLine = tok.line
		case tokValue:
			switch {
			case pendingTag != "":
				block.singles = append(block.singles, cifSingle{name: pendingTag, value: tok.value, line: tok.line})
				pendingTag = ""
			case loop != nil:
				inHeader = false
				if len(loop.header) == 0 {
					diags = append(diags, newDiag(Invalid, "Loop without columns",
						"A loop value appears before any column name",
						Context{Line: tok.line}))
					loop = nil
					continue
				}
				n := len(loop.rows)
				if n == 0 || len(loop.rows[n-1]) == len(loop.header) {
					loop.rows = append(loop.rows, make([]cifValue, 0, len(loop.header)))
					n++
				}
				loop.rows[n-1] = append(loop.rows[n-1], tok.value)
			default:
				diags = append(diags, newDiag(Invalid, "Stray value",
					"A value appears outside any tag or loop",
					Context{Line: tok.line}))
			}
		}
	}
	if pendingTag != "" {
		diags = append(diags, newDiag(Invalid, "Tag without value",
			fmt.Sprintf("Tag %s has no value", pendingTag),
			Context{Line: pendingLine}))
	}
	if block == nil {
		return nil, diags, fmt.Errorf("pdbio: no data block found")
	}
	for _, l := range block.loops {
		if n := len(l.rows); n > 0 && len(l.rows[n-1]) != len(l.header) {
			diags = append(diags, newDiag(Invalid, "Ragged loop",
				fmt.Sprintf("The last row of the loop starting on line %d is incomplete and was dropped", l.line),
				Context{Line: l.line}))
			l.rows = l.rows[:n-1]
		}
	}
	return block, diags, nil
}
