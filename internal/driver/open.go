package driver

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"charlcd/internal/lcd"
)

// Kind names a driver/controller combination.
type Kind string

const (
	KindST7032  Kind = "st7032"
	KindST7036  Kind = "st7036"
	KindPCF8574 Kind = "pcf8574"
	KindDebug   Kind = "debug"
)

var ErrUnknownDriver = errors.New("driver: unknown driver kind")

// Extended reports whether the controller understands the ST7032/ST7036
// instruction table 1.
func (k Kind) Extended() bool { return k == KindST7032 || k == KindST7036 }

// DefaultAddr returns the usual I2C address for k.
func (k Kind) DefaultAddr() uint16 {
	switch k {
	case KindPCF8574:
		return DefaultPCF8574Addr
	default:
		return DefaultST7032Addr
	}
}

// Config selects and locates a driver.
type Config struct {
	Kind Kind
	// Bus is an i2creg name such as "1" or "/dev/i2c-1"; empty picks the
	// first registered bus.
	Bus   string
	Addr  uint16
	Speed physic.Frequency
	// Trace wraps the driver in Debug.
	Trace bool
}

// Open initialises the host drivers, opens the bus and returns the driver.
// The returned driver closes the bus when closed.
func Open(cfg Config, log *zap.Logger) (lcd.Driver, error) {
	if cfg.Kind == KindDebug {
		return NewDebug(log, nil), nil
	}
	if cfg.Kind != KindST7032 && cfg.Kind != KindST7036 && cfg.Kind != KindPCF8574 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Kind)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("driver: host init: %w", err)
	}
	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("driver: open i2c bus %q: %w", cfg.Bus, err)
	}
	if cfg.Speed > 0 {
		if err := bus.SetSpeed(cfg.Speed); err != nil {
			_ = bus.Close()
			return nil, fmt.Errorf("driver: set bus speed %s: %w", cfg.Speed, err)
		}
	}
	addr := cfg.Addr
	if addr == 0 {
		addr = cfg.Kind.DefaultAddr()
	}
	log.Debug("opened i2c bus",
		zap.String("bus", bus.String()),
		zap.String("kind", string(cfg.Kind)),
		zap.String("addr", fmt.Sprintf("0x%02x", addr)))

	drv := newOnBus(cfg.Kind, bus, addr)
	if cfg.Trace {
		return NewDebug(log, drv), nil
	}
	return drv, nil
}

func newOnBus(kind Kind, bus i2c.BusCloser, addr uint16) lcd.Driver {
	if kind == KindPCF8574 {
		d := NewPCF8574(bus, addr)
		d.closer = bus
		return d
	}
	d := NewST7032(bus, addr)
	d.closer = bus
	return d
}
