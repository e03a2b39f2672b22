package driver

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c"

	"charlcd/internal/lcd"
)

// ST7032 control bytes: Co=0, RS selects the register.
const (
	st7032Command = 0x00
	st7032Data    = 0x40

	DefaultST7032Addr = 0x3E
)

// ST7032 talks to an ST7032i/ST7036i over I2C.
type ST7032 struct {
	dev    i2c.Dev
	closer io.Closer
}

var _ lcd.Driver = (*ST7032)(nil)

func NewST7032(bus i2c.Bus, addr uint16) *ST7032 {
	return &ST7032{dev: i2c.Dev{Bus: bus, Addr: addr}}
}

// Init reports 8-bit mode; the I2C interface has no 4-bit variant.
func (d *ST7032) Init() (bool, error) { return true, nil }

func (d *ST7032) Command(b byte) error { return d.write(st7032Command, b) }
func (d *ST7032) Data(b byte) error    { return d.write(st7032Data, b) }

func (d *ST7032) write(control, b byte) error {
	if err := d.dev.Tx([]byte{control, b}, nil); err != nil {
		return fmt.Errorf("st7032 %s: %w", d.dev.String(), err)
	}
	return nil
}

func (d *ST7032) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

func (d *ST7032) String() string { return "st7032@" + d.dev.String() }
