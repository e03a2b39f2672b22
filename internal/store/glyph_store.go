package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const glyphsFile = "glyphs.json"

var ErrGlyphNotFound = errors.New("glyph not found")

// GlyphStore keeps named glyphs in a JSON file.
type GlyphStore struct {
	dir string
	mu  sync.Mutex
}

func NewGlyphStore(dir string) *GlyphStore { return &GlyphStore{dir: dir} }

func (s *GlyphStore) path() string { return filepath.Join(s.dir, glyphsFile) }

func (s *GlyphStore) load() (map[string]Glyph, error) {
	m, err := readGlyphs(s.path())
	if err != nil {
		return nil, fmt.Errorf("read glyphs: %w", err)
	}
	return m, nil
}

// Save stores g under name, replacing any previous glyph.
func (s *GlyphStore) Save(name string, g Glyph) error {
	if name == "" {
		return errors.New("glyph name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[name] = g
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return writeGlyphs(s.path(), m)
}

func (s *GlyphStore) Load(name string) (Glyph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return Glyph{}, err
	}
	g, ok := m[name]
	if !ok {
		return Glyph{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, name)
	}
	return g, nil
}

// List returns the stored glyph names in order.
func (s *GlyphStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *GlyphStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[name]; !ok {
		return fmt.Errorf("%w: %q", ErrGlyphNotFound, name)
	}
	delete(m, name)
	return writeGlyphs(s.path(), m)
}
