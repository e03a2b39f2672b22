package lcd_test

import (
	"errors"
	"time"
)

type op struct {
	data bool
	b    byte
}

func cmd(b byte) op  { return op{b: b} }
func data(b byte) op { return op{data: true, b: b} }

var errBus = errors.New("bus fault")

// recorder is a Driver that keeps every byte it is given.
type recorder struct {
	eightBit  bool
	initErr   error
	failOn    int // fail the n-th byte (1-based); 0 never fails
	ops       []op
	backlight *bool
	closed    bool
}

func (r *recorder) Init() (bool, error) { return r.eightBit, r.initErr }

func (r *recorder) Command(b byte) error { return r.push(cmd(b)) }
func (r *recorder) Data(b byte) error    { return r.push(data(b)) }

func (r *recorder) push(o op) error {
	if r.failOn > 0 && len(r.ops)+1 == r.failOn {
		return errBus
	}
	r.ops = append(r.ops, o)
	return nil
}

func (r *recorder) reset() { r.ops = nil }

type backlightRecorder struct {
	recorder
}

func (r *backlightRecorder) SetBacklight(on bool) error {
	r.backlight = &on
	return nil
}

func (r *backlightRecorder) Close() error {
	r.closed = true
	return nil
}

type sleeps []time.Duration

func (s *sleeps) sleep(d time.Duration) { *s = append(*s, d) }
