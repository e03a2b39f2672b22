package main

import (
	"testing"

	"charlcd/internal/config"
)

func TestSourcesCopiesConfig(t *testing.T) {
	cfg := &config.Config{Meter: config.MeterConfig{Sources: []config.SourceConfig{
		{Label: "T", Path: "/sys/x", Scale: 0.001, Unit: "C", Precision: 1},
		{Label: "H", Path: "/sys/y", Scale: 1, Unit: "%"},
	}}}

	got := sources(cfg)
	if len(got) != 2 {
		t.Fatalf("got %d sources, want 2", len(got))
	}
	if got[0].Label != "T" || got[0].Path != "/sys/x" || got[0].Scale != 0.001 || got[0].Unit != "C" || got[0].Precision != 1 {
		t.Fatalf("first source = %+v", got[0])
	}
	if got[1].Precision != 0 {
		t.Fatalf("second precision = %d, want 0", got[1].Precision)
	}
}

func TestRootFlags(t *testing.T) {
	root := newRoot()
	for _, name := range []string{"config", "driver", "bus", "addr", "columns", "lines", "schedule"} {
		if root.Flags().Lookup(name) == nil {
			t.Fatalf("missing --%s", name)
		}
	}
}
