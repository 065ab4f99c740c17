/*
 * read.go, part of pdbio.
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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Format names one of the two wire formats.
type Format int

const (
	FormatPDB Format = iota
	FormatMMCIF
)

func (f Format) String() string {
	switch f {
	case FormatPDB:
		return "pdb"
	case FormatMMCIF:
		return "mmcif"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatForPath infers the format from a file name, looking through
// any compression extension. The ok result is false for an extension
// belonging to neither format.
func FormatForPath(path string) (Format, bool) {
	base := stripCompression(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".pdb", ".ent", ".pdb1":
		return FormatPDB, true
	case ".cif", ".mmcif":
		return FormatMMCIF, true
	}
	return FormatPDB, false
}

func stripCompression(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".xz", ".zst":
		return strings.TrimSuffix(path, filepath.Ext(path))
	}
	return path
}

// Read parses a structure from the stream in the given format,
// applying the strictness policy to the collected diagnostics: the
// parsed structure is returned together with every diagnostic, and a
// non-nil error when any diagnostic reaches the policy's threshold or
// the stream itself fails.
func Read(r io.Reader, format Format, level Strictness) (*Structure, DiagList, error) {
	var s *Structure
	var diags DiagList
	var err error
	switch format {
	case FormatPDB:
		s, diags, err = PDBRead(r)
	case FormatMMCIF:
		s, diags, err = MMCIFRead(r)
	default:
		return nil, nil, fmt.Errorf("pdbio: unknown format %v", format)
	}
	if err != nil {
		return s, diags, errDecorate(err, "Read")
	}
	if diags.Fails(level) {
		return s, diags, fmt.Errorf("pdbio: input rejected under the %v policy", level)
	}
	return s, diags, nil
}

// ReadFile opens and parses a structure file. The format is inferred
// from the extension; .gz, .xz and .zst streams are decompressed
// transparently. Plain files are read through a memory map.
func ReadFile(path string, level Strictness) (*Structure, DiagList, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, nil, fmt.Errorf("pdbio: cannot infer a format from %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errDecorate(err, "ReadFile")
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, errDecorate(err, "ReadFile")
		}
		defer zr.Close()
		return Read(zr, format, level)
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, errDecorate(err, "ReadFile")
		}
		defer zr.Close()
		return Read(zr, format, level)
	case ".xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, nil, errDecorate(err, "ReadFile")
		}
		return Read(xr, format, level)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// Mapping can fail on empty or special files; fall back to a
		// plain sequential read.
		return Read(f, format, level)
	}
	defer m.Unmap()
	return Read(bytes.NewReader(m), format, level)
}
