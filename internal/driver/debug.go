package driver

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"charlcd/internal/lcd"
)

// Debug logs each byte at debug level. With a nil next it stands in for
// hardware and reports an 8-bit bus.
type Debug struct {
	log  *zap.Logger
	next lcd.Driver
}

var (
	_ lcd.Driver      = (*Debug)(nil)
	_ lcd.Backlighter = (*Debug)(nil)
)

func NewDebug(log *zap.Logger, next lcd.Driver) *Debug {
	return &Debug{log: log.Named("lcd"), next: next}
}

func (d *Debug) Init() (bool, error) {
	if d.next == nil {
		d.log.Debug("init", zap.Bool("eight_bit", true))
		return true, nil
	}
	eightBit, err := d.next.Init()
	d.log.Debug("init", zap.Bool("eight_bit", eightBit), zap.Error(err))
	return eightBit, err
}

func (d *Debug) Command(b byte) error {
	d.log.Debug("command", zap.String("byte", hexByte(b)))
	if d.next == nil {
		return nil
	}
	return d.next.Command(b)
}

func (d *Debug) Data(b byte) error {
	d.log.Debug("data", zap.String("byte", hexByte(b)))
	if d.next == nil {
		return nil
	}
	return d.next.Data(b)
}

// SetBacklight forwards to the wrapped driver when it has a backlight.
func (d *Debug) SetBacklight(on bool) error {
	d.log.Debug("backlight", zap.Bool("on", on))
	if d.next == nil {
		return nil
	}
	b, ok := d.next.(lcd.Backlighter)
	if !ok {
		return lcd.ErrNotSupported
	}
	return b.SetBacklight(on)
}

func (d *Debug) Close() error {
	if c, ok := d.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func hexByte(b byte) string { return fmt.Sprintf("0x%02x", b) }
