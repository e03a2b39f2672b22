package store

import (
	"fmt"
	"strconv"
	"strings"
)

// Glyph is a 5x8 CGRAM pattern, one byte per row, bit 4 leftmost.
type Glyph [8]byte

const glyphWidth = 5

// ParseGlyph reads up to eight rows separated by commas, slashes or
// whitespace. A row is either a 5-character picture using '#' or '*' for
// lit dots and '.' or '_' for dark ones, or a number (0x1f, 0b10001, 17).
// Missing trailing rows are blank.
func ParseGlyph(s string) (Glyph, error) {
	var g Glyph
	rows := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(rows) == 0 || len(rows) > len(g) {
		return g, fmt.Errorf("glyph: need 1..%d rows, got %d", len(g), len(rows))
	}
	for i, row := range rows {
		v, err := parseRow(row)
		if err != nil {
			return g, fmt.Errorf("glyph row %d: %w", i, err)
		}
		g[i] = v
	}
	return g, nil
}

func parseRow(row string) (byte, error) {
	if isPicture(row) {
		var v byte
		for _, c := range row {
			v <<= 1
			if c == '#' || c == '*' {
				v |= 1
			}
		}
		return v, nil
	}
	n, err := strconv.ParseUint(row, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("bad row %q", row)
	}
	if n > 0x1F {
		return 0, fmt.Errorf("row %q wider than %d dots", row, glyphWidth)
	}
	return byte(n), nil
}

func isPicture(row string) bool {
	if len(row) != glyphWidth {
		return false
	}
	for _, c := range row {
		if c != '#' && c != '*' && c != '.' && c != '_' {
			return false
		}
	}
	return true
}

// Rows renders the glyph as eight 5-character pictures.
func (g Glyph) Rows() []string {
	out := make([]string, len(g))
	for i, b := range g {
		var sb strings.Builder
		for bit := glyphWidth - 1; bit >= 0; bit-- {
			if b&(1<<bit) != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		out[i] = sb.String()
	}
	return out
}

// String is the compact form accepted by ParseGlyph.
func (g Glyph) String() string { return strings.Join(g.Rows(), "/") }
