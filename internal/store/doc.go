// Package store provides file-based persistence for the custom glyph
// library.
//
// Glyphs are 5x8 CGRAM patterns saved under a name in glyphs.json inside
// the configured home directory. Writes go through a temp file and rename
// so a crash never leaves a truncated library. All methods are safe for
// concurrent use within one process.
package store
