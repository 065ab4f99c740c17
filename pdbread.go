/*
 * pdbread.go, part of pdbio.
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
	"strings"

	"github.com/biofmt/pdbio/fields"
)

// matrixBuild accumulates the three rows of a SCALEn, ORIGXn or
// MTRIXn definition, which arrive as separate records.
type matrixBuild struct {
	rows [3][4]float64
	set  [3]bool
}

func (m *matrixBuild) setRow(n int, row [4]float64) {
	if n < 1 || n > 3 {
		return
	}
	m.rows[n-1] = row
	m.set[n-1] = true
}

func (m *matrixBuild) complete() bool { return m.set[0] && m.set[1] && m.set[2] }
func (m *matrixBuild) partial() bool  { return m.set[0] || m.set[1] || m.set[2] }

func (m *matrixBuild) matrix() *Transformation {
	return NewTransformation(m.rows)
}

type mtrixBuild struct {
	serial int
	given  bool
	matrixBuild
}

type seqresRun struct {
	total int
	names []string
}

type pendingDBRef struct {
	chainID  string
	ref      DatabaseReference
	complete bool
}

type pendingModres struct {
	chainID  string
	name     string
	number   int
	insCode  string
	standard string
	comment  string
	lineno   int
	line     string
}

// pdbParser holds the state of one pass over a fixed-column file.
type pdbParser struct {
	s     *Structure
	diags DiagList

	modelNumber int
	model       *Model

	autoChain byte // next identifier for blank chain columns

	lastAtomSerial int
	atomSerialAdd  int
	lastResNumber  int
	resNumberAdd   int

	scale  matrixBuild
	origx  matrixBuild
	mtrix  []*mtrixBuild
	seqres map[string]*seqresRun
	dbrefs []*pendingDBRef
	modres []pendingModres

	remarkCount int
	atomCount   int
	terCount    int
}

// PDBRead parses a fixed-column structure file. All recoverable
// problems are reported as diagnostics; the error is non-nil only when
// the stream itself cannot be read.
func PDBRead(r io.Reader) (*Structure, DiagList, error) {
	p := &pdbParser{
		s:         NewStructure(""),
		autoChain: 'A',
		seqres:    make(map[string]*seqresRun),
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 512), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		p.line(lineno, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		p.diags = append(p.diags, newDiag(Fatal, "Unreadable stream",
			fmt.Sprintf("Could not read line %d of the input", lineno+1),
			Context{Line: lineno + 1}))
		return p.s, p.diags, err
	}
	p.finish()
	return p.s, p.diags, nil
}

// line dispatches one record by its 6-character keyword.
func (p *pdbParser) line(lineno int, text string) {
	keyword := strings.TrimSpace(col(text, 0, 6))
	switch keyword {
	case "HEADER":
		p.header(lineno, text)
	case "REMARK":
		p.remark(lineno, text)
	case "ATOM":
		p.atom(lineno, text, false)
	case "HETATM":
		p.atom(lineno, text, true)
	case "ANISOU":
		p.anisou(lineno, text)
	case "MODEL":
		n := p.intField(lineno, text, 6, len(text))
		p.modelNumber = n
		p.model = nil
	case "ENDMDL":
		p.model = nil
	case "TER":
		p.terCount++
		if p.autoChain == 'Z' {
			p.autoChain = 'A'
		} else {
			p.autoChain++
		}
	case "CRYST1":
		p.cryst(lineno, text)
	case "SCALE1", "SCALE2", "SCALE3":
		p.scale.setRow(int(keyword[5]-'0'), p.transformationRow(lineno, text))
	case "ORIGX1", "ORIGX2", "ORIGX3":
		p.origx.setRow(int(keyword[5]-'0'), p.transformationRow(lineno, text))
	case "MTRIX1", "MTRIX2", "MTRIX3":
		p.mtrixRow(lineno, text, int(keyword[5]-'0'))
	case "SEQRES":
		p.seqresLine(lineno, text)
	case "DBREF":
		p.dbref(lineno, text)
	case "DBREF1":
		p.dbref1(lineno, text)
	case "DBREF2":
		p.dbref2(lineno, text)
	case "SEQADV":
		p.seqadv(lineno, text)
	case "MODRES":
		p.modresLine(lineno, text)
	case "MASTER":
		p.master(lineno, text)
	case "END", "":
		// nothing to do
	default:
		p.diags = append(p.diags, newDiag(Info, "Unsupported record",
			fmt.Sprintf("Record type %q is not supported and was skipped", keyword),
			fullLineContext(lineno, text)))
	}
}

func (p *pdbParser) header(lineno int, text string) {
	if len(text) < 66 {
		p.diags = append(p.diags, newDiag(Warning, "Header too short",
			"The HEADER record is too short to contain the entry identifier",
			fullLineContext(lineno, text)))
		return
	}
	p.s.ID = strings.TrimSpace(col(text, 62, 66))
}

func (p *pdbParser) remark(lineno int, text string) {
	number := p.intField(lineno, text, 7, 10)
	content := strings.TrimRight(col(text, 11, len(text)), " ")
	if len(content) > 70-11 {
		p.diags = append(p.diags, newDiag(Warning, "Remark too long",
			"The remark text extends past the fixed line width and will be truncated on write",
			lineContext(lineno, text, 11, len(text)-11)))
	}
	p.s.AddRemark(number, content)
	p.remarkCount++
}

// currentModel returns the model atoms are being added to, creating it
// on first use so files without MODEL records still get model 0.
func (p *pdbParser) currentModel() *Model {
	if p.model == nil {
		p.model = NewModel(p.modelNumber)
		p.s.AddModel(p.model)
	}
	return p.model
}

func (p *pdbParser) atom(lineno int, text string, hetero bool) {
	if len(text) < 54 {
		p.diags = append(p.diags, newDiag(Fatal, "Atom line too short",
			"This line is too short to contain coordinates",
			fullLineContext(lineno, text)))
		return
	}
	serial := p.intField(lineno, text, 6, 11)
	name := strings.TrimSpace(col(text, 12, 16))
	altLoc := strings.TrimSpace(col(text, 16, 17))
	resName := strings.TrimSpace(col(text, 17, 20))
	chainID := strings.TrimSpace(col(text, 21, 22))
	resNumber := p.intField(lineno, text, 22, 26)
	insCode := strings.TrimSpace(col(text, 26, 27))
	x := p.floatField(lineno, text, 30, 38)
	y := p.floatField(lineno, text, 38, 46)
	z := p.floatField(lineno, text, 46, 54)
	occupancy := 1.0
	if len(text) >= 60 {
		occupancy = p.floatField(lineno, text, 54, 60)
	}
	bFactor := 0.0
	if len(text) >= 66 {
		bFactor = p.floatField(lineno, text, 60, 66)
	}
	element := strings.TrimSpace(col(text, 76, 78))
	charge := p.charge(lineno, text)

	// Old files wrap the serial columns to zero past their capacity
	// instead of switching to the extended radix.
	if serial == 0 && p.lastAtomSerial == 99999 {
		p.atomSerialAdd += 100000
	}
	if resNumber == 0 && p.lastResNumber == 9999 {
		p.resNumberAdd += 10000
	}
	p.lastAtomSerial = serial
	p.lastResNumber = resNumber

	if chainID == "" {
		chainID = string(p.autoChain)
	}
	if element == "" {
		element, _ = GuessElement(col(text, 12, 16))
	}

	a := NewAtom(serial+p.atomSerialAdd, name, x, y, z)
	a.Hetero = hetero
	a.Occupancy = occupancy
	a.BFactor = bFactor
	a.Element = element
	a.Charge = charge

	chain := p.currentModel().EnsureChain(chainID)
	chain.AddAtom(a, resNumber+p.resNumberAdd, insCode, resName, altLoc)
	p.atomCount++
}

func (p *pdbParser) anisou(lineno int, text string) {
	serial := p.intField(lineno, text, 6, 11)
	var u [6]float64
	for i := 0; i < 6; i++ {
		start := 28 + 7*i
		u[i] = p.scaledField(lineno, text, start, start+7, 1e-4)
	}
	atoms := p.currentModel().Atoms()
	for i := len(atoms) - 1; i >= 0; i-- {
		if atoms[i].Serial == serial+p.atomSerialAdd {
			atoms[i].SetAniso(u)
			return
		}
	}
	p.diags = append(p.diags, newDiag(Invalid, "Solitary anisotropic record",
		fmt.Sprintf("No atom with serial number %d precedes this anisotropic record", serial),
		fullLineContext(lineno, text)))
}

func (p *pdbParser) cryst(lineno int, text string) {
	if len(text) < 54 {
		p.diags = append(p.diags, newDiag(Invalid, "Crystal line too short",
			"This line is too short to contain the unit cell dimensions",
			fullLineContext(lineno, text)))
		return
	}
	a := p.floatField(lineno, text, 6, 15)
	b := p.floatField(lineno, text, 15, 24)
	c := p.floatField(lineno, text, 24, 33)
	alpha := p.floatField(lineno, text, 33, 40)
	beta := p.floatField(lineno, text, 40, 47)
	gamma := p.floatField(lineno, text, 47, 54)
	p.s.Cell = NewUnitCell(a, b, c, alpha, beta, gamma)
	symbol := strings.TrimSpace(col(text, 55, 66))
	if symbol != "" {
		p.s.Symmetry = NewSymmetry(symbol)
	}
	if len(text) > 66 {
		z := p.intField(lineno, text, 66, len(text))
		if p.s.Symmetry != nil {
			p.s.Symmetry.Z = z
		}
	}
}

func (p *pdbParser) transformationRow(lineno int, text string) [4]float64 {
	return [4]float64{
		p.floatField(lineno, text, 10, 20),
		p.floatField(lineno, text, 20, 30),
		p.floatField(lineno, text, 30, 40),
		p.floatField(lineno, text, 45, 55),
	}
}

func (p *pdbParser) mtrixRow(lineno int, text string, n int) {
	serial := p.intField(lineno, text, 7, 10)
	row := p.transformationRow(lineno, text)
	given := len(text) >= 60 && text[59] == '1'
	for _, m := range p.mtrix {
		if m.serial == serial {
			m.setRow(n, row)
			m.given = given
			return
		}
	}
	m := &mtrixBuild{serial: serial, given: given}
	m.setRow(n, row)
	p.mtrix = append(p.mtrix, m)
}

func (p *pdbParser) seqresLine(lineno int, text string) {
	chainID := strings.TrimSpace(col(text, 11, 12))
	total := p.intField(lineno, text, 13, 17)
	run := p.seqres[chainID]
	if run == nil {
		run = &seqresRun{}
		p.seqres[chainID] = run
	}
	run.total = total
	max := len(text)
	if max > 71 {
		max = 71
	}
	for start := 19; start+3 <= max; start += 4 {
		name := strings.TrimSpace(col(text, start, start+3))
		if name == "" {
			break
		}
		run.names = append(run.names, name)
	}
}

func (p *pdbParser) dbref(lineno int, text string) {
	ref := DatabaseReference{
		Database:  strings.TrimSpace(col(text, 26, 32)),
		Accession: strings.TrimSpace(col(text, 33, 41)),
		IDCode:    strings.TrimSpace(col(text, 42, 54)),
	}
	ref.Local[0] = SequencePosition{Number: p.intField(lineno, text, 14, 18), InsCode: strings.TrimSpace(col(text, 18, 19))}
	ref.Local[1] = SequencePosition{Number: p.intField(lineno, text, 20, 24), InsCode: strings.TrimSpace(col(text, 24, 25))}
	ref.Remote[0] = SequencePosition{Number: p.intField(lineno, text, 55, 60), InsCode: strings.TrimSpace(col(text, 60, 61))}
	ref.Remote[1] = SequencePosition{Number: p.intField(lineno, text, 62, 67), InsCode: strings.TrimSpace(col(text, 67, 68))}
	p.dbrefs = append(p.dbrefs, &pendingDBRef{
		chainID:  strings.TrimSpace(col(text, 12, 13)),
		ref:      ref,
		complete: true,
	})
}

func (p *pdbParser) dbref1(lineno int, text string) {
	ref := DatabaseReference{
		Database: strings.TrimSpace(col(text, 26, 32)),
		IDCode:   strings.TrimSpace(col(text, 47, 67)),
	}
	ref.Local[0] = SequencePosition{Number: p.intField(lineno, text, 14, 18), InsCode: strings.TrimSpace(col(text, 18, 19))}
	ref.Local[1] = SequencePosition{Number: p.intField(lineno, text, 21, 24), InsCode: strings.TrimSpace(col(text, 24, 25))}
	p.dbrefs = append(p.dbrefs, &pendingDBRef{
		chainID: strings.TrimSpace(col(text, 12, 13)),
		ref:     ref,
	})
}

func (p *pdbParser) dbref2(lineno int, text string) {
	chainID := strings.TrimSpace(col(text, 12, 13))
	for _, d := range p.dbrefs {
		if d.chainID != chainID {
			continue
		}
		d.ref.Accession = strings.TrimSpace(col(text, 18, 40))
		d.ref.Remote[0] = SequencePosition{Number: p.intField(lineno, text, 45, 55)}
		d.ref.Remote[1] = SequencePosition{Number: p.intField(lineno, text, 57, 67)}
		d.complete = true
		return
	}
	p.diags = append(p.diags, newDiag(StrictWarning, "Solitary DBREF2",
		fmt.Sprintf("No DBREF1 record for chain %q precedes this DBREF2", chainID),
		fullLineContext(lineno, text)))
}

func (p *pdbParser) seqadv(lineno int, text string) {
	chainID := strings.TrimSpace(col(text, 16, 17))
	diff := SequenceDifference{
		Local: SequencePosition{
			Name:    strings.TrimSpace(col(text, 12, 15)),
			Number:  p.intField(lineno, text, 18, 22),
			InsCode: strings.TrimSpace(col(text, 22, 23)),
		},
		Comment: strings.TrimSpace(col(text, 49, len(text))),
	}
	if strings.TrimSpace(col(text, 39, 48)) != "" {
		diff.Remote = &SequencePosition{
			Name:   strings.TrimSpace(col(text, 39, 42)),
			Number: p.intField(lineno, text, 43, 48),
		}
	}
	for _, d := range p.dbrefs {
		if d.chainID == chainID {
			d.ref.Differences = append(d.ref.Differences, diff)
			return
		}
	}
	p.diags = append(p.diags, newDiag(StrictWarning, "Sequence difference without reference",
		fmt.Sprintf("No database reference for chain %q precedes this sequence difference", chainID),
		fullLineContext(lineno, text)))
}

func (p *pdbParser) modresLine(lineno int, text string) {
	p.modres = append(p.modres, pendingModres{
		chainID:  strings.TrimSpace(col(text, 16, 17)),
		name:     strings.TrimSpace(col(text, 12, 15)),
		number:   p.intField(lineno, text, 18, 22),
		insCode:  strings.TrimSpace(col(text, 22, 23)),
		standard: strings.TrimSpace(col(text, 24, 27)),
		comment:  strings.TrimSpace(col(text, 29, len(text))),
		lineno:   lineno,
		line:     text,
	})
}

func (p *pdbParser) master(lineno int, text string) {
	loc := fullLineContext(lineno, text)
	numRemark := p.intField(lineno, text, 10, 15)
	numEmpty := p.intField(lineno, text, 15, 20)
	numXform := p.intField(lineno, text, 45, 50)
	numCoord := p.intField(lineno, text, 50, 55)
	numTer := p.intField(lineno, text, 55, 60)
	if numRemark != p.remarkCount {
		p.diags = append(p.diags, newDiag(StrictWarning, "MASTER checksum failed",
			fmt.Sprintf("The file holds %d remark records where the MASTER record poses %d", p.remarkCount, numRemark), loc))
	}
	if numEmpty != 0 {
		p.diags = append(p.diags, newDiag(Warning, "MASTER checksum failed",
			fmt.Sprintf("The mandated-empty checksum column holds %d", numEmpty), loc))
	}
	xform := 0
	if p.origx.partial() {
		xform += 3
	}
	if p.scale.partial() {
		xform += 3
	}
	for _, m := range p.mtrix {
		if m.partial() {
			xform += 3
		}
	}
	if numXform != xform {
		p.diags = append(p.diags, newDiag(StrictWarning, "MASTER checksum failed",
			fmt.Sprintf("The file holds %d coordinate transformation records where the MASTER record poses %d", xform, numXform), loc))
	}
	if numCoord != p.atomCount {
		p.diags = append(p.diags, newDiag(Warning, "MASTER checksum failed",
			fmt.Sprintf("The file holds %d coordinate records where the MASTER record poses %d", p.atomCount, numCoord), loc))
	}
	if numTer != p.terCount {
		p.diags = append(p.diags, newDiag(Warning, "MASTER checksum failed",
			fmt.Sprintf("The file holds %d TER records where the MASTER record poses %d", p.terCount, numTer), loc))
	}
}

// finish resolves everything that could only be settled after the full
// pass: transformation matrices, database references, modifications,
// expected sequences and conformer reshuffling.
func (p *pdbParser) finish() {
	if p.scale.complete() {
		p.s.Scale = p.scale.matrix()
	} else if p.scale.partial() {
		p.diags = append(p.diags, newDiag(StrictWarning, "Incomplete SCALE definition",
			"Not all three rows of the scale matrix are present", Context{}))
	}
	if p.origx.complete() {
		p.s.OrigX = p.origx.matrix()
	} else if p.origx.partial() {
		p.diags = append(p.diags, newDiag(StrictWarning, "Incomplete ORIGX definition",
			"Not all three rows of the origin matrix are present", Context{}))
	}
	for _, m := range p.mtrix {
		if m.complete() {
			p.s.NCS = append(p.s.NCS, &NCSTransform{
				Serial:         m.serial,
				Given:          m.given,
				Transformation: m.matrix(),
			})
		} else {
			p.diags = append(p.diags, newDiag(StrictWarning, "Incomplete MTRIX definition",
				fmt.Sprintf("Not all three rows of matrix %d are present", m.serial), Context{}))
		}
	}

	for _, d := range p.dbrefs {
		if !d.complete {
			p.diags = append(p.diags, newDiag(StrictWarning, "Solitary DBREF1",
				fmt.Sprintf("No DBREF2 record completes the DBREF1 for chain %q", d.chainID), Context{}))
			continue
		}
		ref := d.ref
		for _, m := range p.s.models {
			if c := m.FindChain(d.chainID); c != nil {
				c.DBRef = &ref
			}
		}
	}

	for chainID, run := range p.seqres {
		p.s.SetSeqRes(chainID, run.names)
		if run.total != len(run.names) {
			p.diags = append(p.diags, newDiag(Warning, "SEQRES length mismatch",
				fmt.Sprintf("Chain %q declares %d residues in SEQRES but lists %d", chainID, run.total, len(run.names)),
				Context{}))
		}
	}

	for _, mod := range p.modres {
		applied := false
		for _, m := range p.s.models {
			c := m.FindChain(mod.chainID)
			if c == nil {
				continue
			}
			r := c.FindResidue(mod.number, mod.insCode)
			if r == nil {
				continue
			}
			for _, conf := range r.Conformers() {
				if conf.Name == mod.name {
					conf.Modified = &Modification{Standard: mod.standard, Comment: mod.comment}
					applied = true
				}
			}
		}
		if !applied {
			p.diags = append(p.diags, newDiag(StrictWarning, "Modified residue not found",
				fmt.Sprintf("No residue matches the MODRES record for %s %s %d%s",
					mod.chainID, mod.name, mod.number, mod.insCode),
				fullLineContext(mod.lineno, mod.line)))
		}
	}

	for _, m := range p.s.models {
		for _, c := range m.chains {
			for _, r := range c.residues {
				r.ReshuffleConformers()
			}
		}
	}
}

// col returns the substring between the byte offsets, tolerating short
// lines.
func col(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}

func (p *pdbParser) intField(lineno int, text string, start, end int) int {
	token := strings.TrimSpace(col(text, start, end))
	if token == "" {
		return 0
	}
	v, err := fields.DecodeInt(token)
	if err != nil {
		p.diags = append(p.diags, newDiag(Invalid, "Not a number",
			fmt.Sprintf("Could not parse %q as a number", token),
			lineContext(lineno, text, start, end-start)))
		return 0
	}
	return v
}

func (p *pdbParser) floatField(lineno int, text string, start, end int) float64 {
	token := strings.TrimSpace(col(text, start, end))
	if token == "" {
		return 0
	}
	v, err := fields.DecodeFloat(token)
	if err != nil {
		p.diags = append(p.diags, newDiag(Invalid, "Not a number",
			fmt.Sprintf("Could not parse %q as a number", token),
			lineContext(lineno, text, start, end-start)))
		return 0
	}
	return v
}

func (p *pdbParser) scaledField(lineno int, text string, start, end int, scale float64) float64 {
	token := strings.TrimSpace(col(text, start, end))
	if token == "" {
		return 0
	}
	v, err := fields.DecodeScaledInt(token, scale)
	if err != nil {
		p.diags = append(p.diags, newDiag(Invalid, "Not a number",
			fmt.Sprintf("Could not parse %q as a number", token),
			lineContext(lineno, text, start, end-start)))
		return 0
	}
	return v
}

// charge parses the trailing [0-9][+-] columns of a coordinate record.
func (p *pdbParser) charge(lineno int, text string) int {
	if len(text) < 80 {
		return 0
	}
	digit, sign := text[78], text[79]
	if digit == ' ' && sign == ' ' {
		return 0
	}
	if digit < '0' || digit > '9' || (sign != '+' && sign != '-') {
		p.diags = append(p.diags, newDiag(Invalid, "Malformed charge",
			"The charge columns are defined to hold a digit followed by a sign",
			lineContext(lineno, text, 78, 2)))
		return 0
	}
	v := int(digit - '0')
	if sign == '-' {
		v = -v
	}
	return v
}
