package lcd

import "errors"

var (
	ErrGeometry     = errors.New("lcd: invalid display geometry")
	ErrRowOffsets   = errors.New("lcd: fewer row offsets than lines")
	ErrNotSupported = errors.New("lcd: operation not supported by driver")
)

// Driver moves single bytes to the controller.
type Driver interface {
	// Init brings the bus into a known state and reports whether the
	// controller has to run its 8-bit interface. A 4-bit driver does the
	// nibble reset itself and returns false.
	Init() (eightBit bool, err error)
	// Command sends an instruction byte (RS low).
	Command(b byte) error
	// Data sends a byte to CGRAM, DDRAM or icon RAM (RS high).
	Data(b byte) error
}

// Backlighter is implemented by drivers that switch a backlight.
type Backlighter interface {
	SetBacklight(on bool) error
}

// Encoder maps a rune to the controller ROM codes written for it. Most
// runes give one code; some, like voiced katakana, give two.
type Encoder interface {
	AppendRune(dst []byte, r rune) []byte
}
