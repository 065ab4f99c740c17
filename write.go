/*
 * write.go, part of pdbio.
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
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Write validates the structure against the target format, fails the
// whole write when the verdict under the policy is reject, and renders
// it otherwise. The diagnostics are returned either way.
func Write(w io.Writer, s *Structure, format Format, level Strictness) (DiagList, error) {
	diags := Validate(s, format)
	if !Accept(diags, level) {
		return diags, fmt.Errorf("pdbio: structure rejected under the %v policy", level)
	}
	return diags, WriteRaw(w, s, format, level)
}

// WriteRaw renders the structure without validating it first.
func WriteRaw(w io.Writer, s *Structure, format Format, level Strictness) error {
	switch format {
	case FormatPDB:
		return PDBWrite(w, s, level)
	case FormatMMCIF:
		return MMCIFWrite(w, s)
	}
	return fmt.Errorf("pdbio: unknown format %v", format)
}

// WriteFile validates and writes a structure file. The format is
// inferred from the extension; .gz, .xz and .zst files are compressed
// transparently.
func WriteFile(path string, s *Structure, level Strictness) (DiagList, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("pdbio: cannot infer a format from %q", path)
	}
	diags := Validate(s, format)
	if !Accept(diags, level) {
		return diags, fmt.Errorf("pdbio: structure rejected under the %v policy", level)
	}
	f, err := os.Create(path)
	if err != nil {
		return diags, errDecorate(err, "WriteFile")
	}

	var sink io.Writer = f
	var closeCodec func() error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zw := gzip.NewWriter(f)
		sink, closeCodec = zw, zw.Close
	case ".zst":
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return diags, errDecorate(err, "WriteFile")
		}
		sink, closeCodec = zw, zw.Close
	case ".xz":
		xw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			return diags, errDecorate(err, "WriteFile")
		}
		sink, closeCodec = xw, xw.Close
	}

	werr := WriteRaw(sink, s, format, level)
	if closeCodec != nil {
		if cerr := closeCodec(); werr == nil {
			werr = cerr
		}
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return diags, errDecorate(werr, "WriteFile")
	}
	return diags, nil
}
