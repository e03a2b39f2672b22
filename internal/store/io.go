package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const glyphFileVersion = 1

// glyphFile is the on-disk glyph library. Rows are stored as dot pictures
// so the file can be edited by hand.
type glyphFile struct {
	Version int                 `json:"version"`
	Glyphs  map[string][]string `json:"glyphs"`
}

// readGlyphs loads the library at path. A missing file is an empty library.
func readGlyphs(path string) (map[string]Glyph, error) {
	out := make(map[string]Glyph)
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	var f glyphFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	if f.Version > glyphFileVersion {
		return nil, fmt.Errorf("%s: unsupported version %d", filepath.Base(path), f.Version)
	}
	for name, rows := range f.Glyphs {
		if len(rows) > len(Glyph{}) {
			return nil, fmt.Errorf("glyph %q: %d rows", name, len(rows))
		}
		var g Glyph
		for i, row := range rows {
			v, err := parseRow(row)
			if err != nil {
				return nil, fmt.Errorf("glyph %q row %d: %w", name, i, err)
			}
			g[i] = v
		}
		out[name] = g
	}
	return out, nil
}

// writeGlyphs replaces the library at path through a temp file and rename,
// so readers see either the old or the new file.
func writeGlyphs(path string, glyphs map[string]Glyph) error {
	f := glyphFile{Version: glyphFileVersion, Glyphs: make(map[string][]string, len(glyphs))}
	for name, g := range glyphs {
		f.Glyphs[name] = g.Rows()
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), glyphsFile+".tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer func() { _ = os.Remove(name) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(name, path)
}
