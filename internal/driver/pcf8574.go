package driver

import (
	"fmt"
	"io"
	"time"

	"periph.io/x/conn/v3/i2c"

	"charlcd/internal/lcd"
)

// PCF8574 port bits as wired on the common LCD backpacks.
const (
	pinRS        = 1 << 0
	pinRW        = 1 << 1
	pinE         = 1 << 2
	pinBacklight = 1 << 3

	DefaultPCF8574Addr = 0x27
)

const (
	powerOnDelay = 50 * time.Millisecond
	nibbleDelay  = 4100 * time.Microsecond
	settleDelay  = 100 * time.Microsecond
)

// PCF8574 drives an HD44780 in 4-bit mode through a PCF8574 expander.
// D4..D7 sit on P4..P7, so a nibble is shifted into the high half.
type PCF8574 struct {
	dev       i2c.Dev
	backlight byte
	sleep     func(time.Duration)
	closer    io.Closer
}

var (
	_ lcd.Driver      = (*PCF8574)(nil)
	_ lcd.Backlighter = (*PCF8574)(nil)
)

// NewPCF8574 returns a driver with the backlight on.
func NewPCF8574(bus i2c.Bus, addr uint16) *PCF8574 {
	return &PCF8574{
		dev:       i2c.Dev{Bus: bus, Addr: addr},
		backlight: pinBacklight,
		sleep:     time.Sleep,
	}
}

// Init performs the 4-bit "initialising by instruction" sequence: three
// 0x3 nibbles put the controller into 8-bit mode from any state, then 0x2
// switches it to 4 bits.
func (d *PCF8574) Init() (bool, error) {
	if err := d.tx(d.backlight); err != nil {
		return false, err
	}
	d.sleep(powerOnDelay)
	for _, step := range []struct {
		nibble byte
		wait   time.Duration
	}{
		{0x3, nibbleDelay},
		{0x3, nibbleDelay},
		{0x3, settleDelay},
		{0x2, settleDelay},
	} {
		if err := d.tx(d.pulse(step.nibble, 0)...); err != nil {
			return false, err
		}
		d.sleep(step.wait)
	}
	return false, nil
}

func (d *PCF8574) Command(b byte) error { return d.send(b, 0) }
func (d *PCF8574) Data(b byte) error    { return d.send(b, pinRS) }

// SetBacklight switches the backlight transistor on P3.
func (d *PCF8574) SetBacklight(on bool) error {
	prev := d.backlight
	d.backlight = 0
	if on {
		d.backlight = pinBacklight
	}
	if err := d.tx(d.backlight); err != nil {
		d.backlight = prev
		return err
	}
	return nil
}

func (d *PCF8574) Backlight() bool { return d.backlight != 0 }

// send writes both nibbles of b, high first, in one transaction.
func (d *PCF8574) send(b, rs byte) error {
	w := append(d.pulse(b>>4, rs), d.pulse(b&0x0F, rs)...)
	return d.tx(w...)
}

// pulse returns the expander states that latch one nibble: E high, E low.
// RW stays low; the expander is never read.
func (d *PCF8574) pulse(nibble, rs byte) []byte {
	v := nibble<<4 | rs | d.backlight
	return []byte{v | pinE, v &^ (pinE | pinRW)}
}

func (d *PCF8574) tx(w ...byte) error {
	if err := d.dev.Tx(w, nil); err != nil {
		return fmt.Errorf("pcf8574 %s: %w", d.dev.String(), err)
	}
	return nil
}

func (d *PCF8574) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

func (d *PCF8574) String() string { return "pcf8574@" + d.dev.String() }
