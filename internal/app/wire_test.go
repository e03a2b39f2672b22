package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"charlcd/internal/app"
	"charlcd/internal/config"
)

type countingDriver struct {
	eightBit bool
	commands []byte
	data     []byte
}

func (d *countingDriver) Init() (bool, error)  { return d.eightBit, nil }
func (d *countingDriver) Command(b byte) error { d.commands = append(d.commands, b); return nil }
func (d *countingDriver) Data(b byte) error    { d.data = append(d.data, b); return nil }

func baseConfig(driver string) *config.Config {
	return &config.Config{
		Driver: driver, Columns: 20, Lines: 4, ROM: "a00", Contrast: 0x23,
		Backlight: true, LogLevel: "info", LogFormat: "console",
		Meter: config.MeterConfig{Schedule: "@every 5s"},
	}
}

func TestNewWire_PlainController(t *testing.T) {
	cfg := baseConfig("pcf8574")
	cfg.Home = t.TempDir()
	drv := &countingDriver{}

	w, err := app.NewWire(cfg, zap.NewNop(), app.Options{Driver: drv})
	require.NoError(t, err)
	assert.Nil(t, w.Ext)
	require.NotNil(t, w.LCD)

	// 4x20 default layout: row 2 starts at 0x14.
	drv.commands = nil
	require.NoError(t, w.LCD.SetCursorPosition(0, 2))
	assert.Equal(t, []byte{0x80 | 0x14}, drv.commands)
	assert.NoError(t, w.Close())
}

func TestNewWire_ExtendedAppliesContrast(t *testing.T) {
	cfg := baseConfig("st7032")
	cfg.Lines = 2
	cfg.Contrast = 0x30
	drv := &countingDriver{eightBit: true}

	w, err := app.NewWire(cfg, zap.NewNop(), app.Options{Driver: drv})
	require.NoError(t, err)
	require.NotNil(t, w.Ext)
	assert.Equal(t, 0x30, w.Ext.Contrast())
	assert.Same(t, w.Ext.CharLCD, w.LCD)
}

func TestNewWire_AttachSendsOnlyFunctionSet(t *testing.T) {
	cfg := baseConfig("st7036")
	cfg.Lines = 3
	drv := &countingDriver{eightBit: true}

	_, err := app.NewWire(cfg, zap.NewNop(), app.Options{Driver: drv, Attach: true})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x38}, drv.commands)
}

func TestNewWire_ASCIIROM(t *testing.T) {
	cfg := baseConfig("debug")
	cfg.ROM = "ascii"
	cfg.Lines = 2
	drv := &countingDriver{}

	w, err := app.NewWire(cfg, zap.NewNop(), app.Options{Driver: drv})
	require.NoError(t, err)
	require.NoError(t, w.LCD.Message("~"))
	assert.Equal(t, []byte{'~'}, drv.data)
}
