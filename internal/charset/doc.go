// Package charset converts text to the character generator ROM codes of
// HD44780-family controllers.
//
// The controllers ship with fixed ROM tables. A00, the Japanese standard
// font, is the most common: printable ASCII except backslash and tilde,
// half-width katakana and a handful of Greek and math symbols. Codes 0..7
// address the user-defined CGRAM glyphs and can be bound to runes with Map.
//
// Runes missing from the table are folded first: full-width forms become
// half-width, then combining marks are stripped (é → e). Anything still
// unknown is written as the fallback byte.
package charset
