// Package lcd drives HD44780-compatible character LCD controllers and the
// ST7032/ST7036 family that extends them.
//
// # Layers
//
// A Driver moves single instruction or data bytes over some bus. CharLCD
// encodes the HD44780 instruction set on top of it and keeps shadow copies of
// the write-only registers (function set, display control, entry mode) so
// individual flags can be toggled. ExtLCD adds the ST7032/ST7036 instruction
// table 1: bias, contrast, booster, follower and icon RAM.
//
// # Text
//
// Message writes a string starting at the anchor set by SetCursorPosition.
// A newline moves to the next row. Runes are converted to ROM codes by an
// Encoder, by default the A00 table from package charset.
//
// Concurrency: CharLCD and ExtLCD are NOT safe for concurrent use. Callers
// that share a display between goroutines must serialise access, for example
// with display.Handler.
package lcd
