package meter

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"charlcd/internal/display"
)

// Source is one numeric sensor file.
type Source struct {
	Label     string
	Path      string
	Scale     float64
	Unit      string
	Precision int
}

// Read returns the file's value multiplied by Scale (1 when zero).
func (s Source) Read(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", s.Label, err)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", s.Label, err)
	}
	scale := s.Scale
	if scale == 0 {
		scale = 1
	}
	return v * scale, nil
}

// Reading is the outcome of one Read.
type Reading struct {
	Source Source
	Value  float64
	Err    error
}

// Format lays the reading out across width columns.
func (r Reading) Format(width int) string {
	if r.Err != nil {
		return display.Justify(r.Source.Label, "ERR", width)
	}
	value := strconv.FormatFloat(r.Value, 'f', r.Source.Precision, 64) + r.Source.Unit
	return display.Justify(r.Source.Label, value, width)
}
