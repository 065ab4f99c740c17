/*
 * doc.go, part of pdbio.
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

/*
Package pdbio reads, validates, edits and writes macromolecular
structure files in the PDB fixed-column format and the mmCIF tag/table
format.

A parsed file becomes a Structure, a strict ownership tree:

	Structure → Model → Chain → Residue → Conformer → Atom

with the file-level metadata (unit cell, symmetry, transformation
matrices, remarks, sequence records) on the Structure itself. The
Conformer level hosts alternate locations of a residue; hetero and
standard atoms are siblings, told apart by a flag on the Atom.

Reading never gives up on a single malformed record: problems become
Diagnostics, collected in order, and the rest of the file stays
available. Whether a diagnostic list rejects the file is decided by a
Strictness policy (Permissive, Normal, Strict), always passed
explicitly. Writing validates first unless the raw entry point is used.

Integer serial fields use the hybrid-36 convention past the decimal
capacity of their columns, so atom serial numbers above 99999 and
residue numbers above 9999 survive a round trip through the
fixed-column format.

ReadFile and WriteFile infer the format from the file extension and
handle gzip, xz and zstd compression transparently.
*/
package pdbio
