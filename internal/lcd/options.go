package lcd

import (
	"time"

	"charlcd/internal/charset"
)

// Common DDRAM row layouts.
var (
	RowOffsets2Line  = []byte{0x00, 0x40}
	RowOffsets4x16   = []byte{0x00, 0x40, 0x10, 0x50}
	RowOffsets4x20   = []byte{0x00, 0x40, 0x14, 0x54}
	RowOffsetsST7036 = []byte{0x00, 0x10, 0x20}
)

// DefaultRowOffsets returns the usual row layout for a geometry.
func DefaultRowOffsets(columns, lines int) []byte {
	switch {
	case lines <= 2:
		return RowOffsets2Line
	case lines == 3:
		return RowOffsetsST7036
	case columns <= 16:
		return RowOffsets4x16
	default:
		return RowOffsets4x20
	}
}

type options struct {
	rowOffsets []byte
	largeFont  bool
	attach     bool
	encoder    Encoder
	sleep      func(time.Duration)
}

// Option configures New and NewExt.
type Option func(*options)

// WithRowOffsets sets the DDRAM address of the first column of each row.
func WithRowOffsets(offsets []byte) Option {
	return func(o *options) { o.rowOffsets = append([]byte(nil), offsets...) }
}

// WithLargeFont selects the 5x10 dot font. It only applies to 1-line
// displays and is ignored by NewExt, whose controllers have no 5x10 font.
func WithLargeFont() Option {
	return func(o *options) { o.largeFont = true }
}

// WithAttach skips the clearing init sequence for a controller that was
// initialised earlier, for example by a previous process. Only the bus
// reset and function set are sent; the shadow registers assume the state
// left by a normal init (display on, cursor off, left-to-right and, for
// ExtLCD, the default contrast and follower).
func WithAttach() Option {
	return func(o *options) { o.attach = true }
}

// WithEncoder replaces the default A00 ROM encoder.
func WithEncoder(e Encoder) Option {
	return func(o *options) { o.encoder = e }
}

// WithSleep replaces time.Sleep for the controller execution delays.
func WithSleep(sleep func(time.Duration)) Option {
	return func(o *options) { o.sleep = sleep }
}

func buildOptions(opts []Option) options {
	o := options{
		rowOffsets: RowOffsets2Line,
		encoder:    charset.New(charset.A00),
		sleep:      time.Sleep,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
