package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/physic"

	"charlcd/internal/charset"
	"charlcd/internal/config"
	"charlcd/internal/driver"
	"charlcd/internal/lcd"
	"charlcd/internal/store"
)

// Wire bundles the display, encoder, glyph store and logger.
type Wire struct {
	Config  *config.Config
	Log     *zap.Logger
	Glyphs  *store.GlyphStore
	Encoder *charset.Encoder

	// LCD is always set. Ext is also set when the controller has the
	// ST7032/ST7036 extended instruction set; it shares LCD's state.
	LCD *lcd.CharLCD
	Ext *lcd.ExtLCD
}

// Options tweaks how NewWire brings up the display.
type Options struct {
	// Attach skips the clearing init sequence.
	Attach bool
	// Driver replaces the configured bus driver, mainly for tests.
	Driver lcd.Driver
}

// NewGlyphs returns the glyph store under the configured home.
func NewGlyphs(cfg *config.Config) *store.GlyphStore {
	return store.NewGlyphStore(cfg.Home)
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg *config.Config, log *zap.Logger, opts Options) (*Wire, error) {
	kind := driver.Kind(cfg.Driver)

	drv := opts.Driver
	if drv == nil {
		var err error
		drv, err = driver.Open(driver.Config{
			Kind:  kind,
			Bus:   cfg.Bus,
			Addr:  cfg.Addr,
			Speed: physic.Frequency(cfg.SpeedKHz) * physic.KiloHertz,
			Trace: cfg.Trace,
		}, log)
		if err != nil {
			return nil, err
		}
	}

	rom := charset.A00
	if cfg.ROM == "ascii" {
		rom = charset.ASCII
	}
	enc := charset.New(rom)

	offsets := cfg.RowOffsetBytes()
	if offsets == nil {
		offsets = lcd.DefaultRowOffsets(cfg.Columns, cfg.Lines)
	}
	lcdOpts := []lcd.Option{lcd.WithRowOffsets(offsets), lcd.WithEncoder(enc)}
	if opts.Attach {
		lcdOpts = append(lcdOpts, lcd.WithAttach())
	}

	w := &Wire{
		Config:  cfg,
		Log:     log,
		Glyphs:  NewGlyphs(cfg),
		Encoder: enc,
	}

	if kind.Extended() {
		ext, err := lcd.NewExt(drv, cfg.Columns, cfg.Lines, lcdOpts...)
		if err != nil {
			return nil, closeOnErr(drv, err)
		}
		w.Ext, w.LCD = ext, ext.CharLCD
		if !opts.Attach && cfg.Contrast != ext.Contrast() {
			if err := ext.SetContrast(cfg.Contrast); err != nil {
				return nil, closeOnErr(drv, err)
			}
		}
	} else {
		c, err := lcd.New(drv, cfg.Columns, cfg.Lines, lcdOpts...)
		if err != nil {
			return nil, closeOnErr(drv, err)
		}
		w.LCD = c
	}

	if !opts.Attach {
		if err := w.LCD.SetBacklight(cfg.Backlight); err != nil && !errors.Is(err, lcd.ErrNotSupported) {
			return nil, closeOnErr(drv, err)
		}
	}

	log.Debug("display ready",
		zap.String("driver", cfg.Driver),
		zap.Int("columns", cfg.Columns),
		zap.Int("lines", cfg.Lines),
		zap.Bool("extended", w.Ext != nil),
		zap.Bool("attached", opts.Attach))
	return w, nil
}

// Close releases the bus and flushes the logger.
func (w *Wire) Close() error {
	err := w.LCD.Close()
	_ = w.Log.Sync()
	return err
}

func closeOnErr(drv lcd.Driver, err error) error {
	if c, ok := drv.(interface{ Close() error }); ok {
		if cerr := c.Close(); cerr != nil {
			return fmt.Errorf("%w (close: %v)", err, cerr)
		}
	}
	return err
}
