package charset

import (
	"fmt"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// ROM identifies a character generator ROM table.
type ROM int

const (
	// ASCII covers printable ASCII only.
	ASCII ROM = iota
	// A00 is the HD44780U Japanese standard font.
	A00
)

// Fallback is written for runes with no ROM code.
const Fallback byte = '?'

// MaxCustom is the highest CGRAM glyph code.
const MaxCustom = 7

// a00Extra lists the A00 glyphs outside ASCII and katakana.
var a00Extra = map[rune]byte{
	'¥': 0x5C,
	'→': 0x7E,
	'←': 0x7F,
	'・': 0xA5,
	'°': 0xDF,
	'α': 0xE0,
	'ä': 0xE1,
	'β': 0xE2,
	'ε': 0xE3,
	'μ': 0xE4,
	'µ': 0xE4,
	'σ': 0xE5,
	'ρ': 0xE6,
	'√': 0xE8,
	'¢': 0xEC,
	'ñ': 0xEE,
	'ö': 0xEF,
	'θ': 0xF2,
	'∞': 0xF3,
	'Ω': 0xF4,
	'ü': 0xF5,
	'Σ': 0xF6,
	'π': 0xF7,
	'÷': 0xFD,
	'█': 0xFF,
}

// Encoder maps runes to ROM codes. The zero value is not usable; call New.
type Encoder struct {
	rom    ROM
	custom map[rune]byte
	fold   transform.Transformer
	kana   transform.Transformer
}

// New returns an Encoder for rom.
func New(rom ROM) *Encoder {
	return &Encoder{
		rom:    rom,
		custom: make(map[rune]byte),
		fold:   transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		kana:   transform.Chain(norm.NFD, width.Narrow),
	}
}

// Map binds r to the CGRAM glyph code (0..MaxCustom). Custom bindings take
// precedence over the ROM table.
func (e *Encoder) Map(r rune, code byte) error {
	if code > MaxCustom {
		return fmt.Errorf("charset: custom code %d out of range 0..%d", code, MaxCustom)
	}
	e.custom[r] = code
	return nil
}

// Unmap removes a custom binding.
func (e *Encoder) Unmap(r rune) { delete(e.custom, r) }

// Encode returns the single ROM code for r, or Fallback. Runes that need
// two codes, such as voiced full-width katakana, also give Fallback; use
// AppendRune for those.
func (e *Encoder) Encode(r rune) byte {
	if b, ok := e.lookup(r); ok {
		return b
	}
	if n := width.Narrow.String(string(r)); n != string(r) {
		if b, ok := e.single(n); ok {
			return b
		}
	}
	if s, _, err := transform.String(e.fold, string(r)); err == nil && s != string(r) {
		if b, ok := e.single(s); ok {
			return b
		}
	}
	return Fallback
}

// AppendRune appends the ROM codes for r to dst. Full-width kana with a
// dakuten or handakuten are split into base and combining mark, then both
// narrowed, so one rune may produce two codes.
func (e *Encoder) AppendRune(dst []byte, r rune) []byte {
	if b := e.Encode(r); b != Fallback || r == rune(Fallback) {
		return append(dst, b)
	}
	if n, _, err := transform.String(e.kana, string(r)); err == nil && n != string(r) {
		if codes, ok := e.all(n); ok {
			return append(dst, codes...)
		}
	}
	return append(dst, Fallback)
}

// EncodeString encodes every rune of s.
func (e *Encoder) EncodeString(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = e.AppendRune(out, r)
	}
	return out
}

// all looks up every rune of s.
func (e *Encoder) all(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := e.lookup(r)
		if !ok {
			return nil, false
		}
		out = append(out, b)
	}
	return out, true
}

// single looks up s when it is exactly one rune.
func (e *Encoder) single(s string) (byte, bool) {
	rs := []rune(s)
	if len(rs) != 1 {
		return 0, false
	}
	return e.lookup(rs[0])
}

func (e *Encoder) lookup(r rune) (byte, bool) {
	if b, ok := e.custom[r]; ok {
		return b, true
	}
	if r >= 0 && r <= MaxCustom {
		return byte(r), true
	}
	switch e.rom {
	case A00:
		return lookupA00(r)
	default:
		return lookupASCII(r)
	}
}

func lookupASCII(r rune) (byte, bool) {
	if r >= 0x20 && r <= 0x7E {
		return byte(r), true
	}
	return 0, false
}

func lookupA00(r rune) (byte, bool) {
	if b, ok := a00Extra[r]; ok {
		return b, true
	}
	switch {
	case r == '\\' || r == '~':
		return 0, false
	case r >= 0x20 && r <= 0x7D:
		return byte(r), true
	case r >= 0xFF61 && r <= 0xFF9F:
		// Half-width katakana block lines up with 0xA1..0xDF.
		return byte(r - 0xFF61 + 0xA1), true
	}
	return 0, false
}
