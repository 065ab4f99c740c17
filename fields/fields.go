/*
 * fields.go, part of pdbio.
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

// Package fields converts between the text tokens of fixed-column
// crystallographic files and typed values. Integer fields that outgrow
// their historical column widths switch to the hybrid-36 alphanumeric
// encoding, which this package emits and accepts transparently.
package fields

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func pow(base, exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}

// EncodeInt renders v right-justified in exactly width characters.
// Values within the decimal capacity of the field are written as plain
// decimal. Larger values continue in base 36, first with uppercase and
// then with lowercase letters as the extra digits, so every value up to
// 10^width+2*26*36^(width-1)-1 has a distinct token of the same width.
func EncodeInt(v, width int) (string, error) {
	if width < 1 {
		return "", fmt.Errorf("field width %d is not positive", width)
	}
	if v < 0 {
		if -v > pow(10, width-1)-1 {
			return "", fmt.Errorf("value %d does not fit in %d columns", v, width)
		}
		return fmt.Sprintf("%*d", width, v), nil
	}
	if v < pow(10, width) {
		return fmt.Sprintf("%*d", width, v), nil
	}
	span := 26 * pow(36, width-1)
	offset := 10 * pow(36, width-1)
	n := v - pow(10, width)
	lower := false
	if n >= span {
		n -= span
		lower = true
	}
	if n >= span {
		return "", fmt.Errorf("value %d exceeds the hybrid capacity of %d columns", v, width)
	}
	digits := strings.ToUpper(strconv.FormatInt(int64(n+offset), 36))
	if lower {
		digits = strings.ToLower(digits)
	}
	return digits, nil
}

// DecodeInt parses a fixed-width integer token, accepting plain decimal
// (with optional sign) and both hybrid-36 ranges. Surrounding whitespace
// is ignored; hybrid tokens always fill their field so the trimmed
// length is the field width.
func DecodeInt(token string) (int, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return 0, fmt.Errorf("empty integer field")
	}
	if v, err := strconv.Atoi(t); err == nil {
		return v, nil
	}
	first := t[0]
	var upper bool
	switch {
	case first >= 'A' && first <= 'Z':
		upper = true
	case first >= 'a' && first <= 'z':
		upper = false
	default:
		return 0, fmt.Errorf("%q is not a valid integer field", token)
	}
	for _, c := range t[1:] {
		ok := c >= '0' && c <= '9'
		if upper {
			ok = ok || (c >= 'A' && c <= 'Z')
		} else {
			ok = ok || (c >= 'a' && c <= 'z')
		}
		if !ok {
			return 0, fmt.Errorf("%q is not a valid hybrid integer field", token)
		}
	}
	n, err := strconv.ParseInt(strings.ToLower(t), 36, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid hybrid integer field", token)
	}
	w := len(t)
	v := int(n) - 10*pow(36, w-1) + pow(10, w)
	if !upper {
		v += 26 * pow(36, w-1)
	}
	return v, nil
}

// EncodeFloat renders v right-justified in exactly width characters with
// prec digits after the decimal point. When the result would overflow
// the field the precision is reduced, one digit at a time but never
// below one, before giving up. Exponential notation is never produced.
func EncodeFloat(v float64, width, prec int) (string, error) {
	for p := prec; p >= 1; p-- {
		s := strconv.FormatFloat(v, 'f', p, 64)
		if len(s) <= width {
			return strings.Repeat(" ", width-len(s)) + s, nil
		}
	}
	return "", fmt.Errorf("value %g does not fit in %d columns", v, width)
}

// DecodeFloat parses a plain decimal floating point token.
func DecodeFloat(token string) (float64, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return 0, fmt.Errorf("empty floating point field")
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid floating point field", token)
	}
	return v, nil
}

// DecodeScaledInt parses an integer token carrying an implied decimal
// point and applies the declared scale. The ANISOU record stores its
// tensor in units of 1e-4 this way.
func DecodeScaledInt(token string, scale float64) (float64, error) {
	v, err := DecodeInt(token)
	if err != nil {
		return 0, err
	}
	return float64(v) * scale, nil
}

// Trim removes the surrounding whitespace a fixed column field carries.
func Trim(token string) string {
	return strings.TrimSpace(token)
}

// Pad left-justifies s in a field of the given width, truncating when s
// is longer. No case transformation is applied.
func Pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// PadLeft right-justifies s in a field of the given width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// FormatFloat renders v for the tag/table format: at least one and at
// most five digits after the decimal point, no trailing zeros beyond the
// first decimal, no exponential notation.
func FormatFloat(v float64) string {
	rounded := math.Round(v*1e5) / 1e5
	if rounded == math.Trunc(rounded) {
		return strconv.FormatFloat(rounded, 'f', 1, 64)
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
