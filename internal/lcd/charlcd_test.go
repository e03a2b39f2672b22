package lcd_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charlcd/internal/lcd"
)

func newLCD(t *testing.T, drv lcd.Driver, columns, lines int, opts ...lcd.Option) *lcd.CharLCD {
	t.Helper()
	opts = append([]lcd.Option{lcd.WithSleep(func(time.Duration) {})}, opts...)
	c, err := lcd.New(drv, columns, lines, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_EightBitInitSequence(t *testing.T) {
	var slept sleeps
	drv := &recorder{eightBit: true}
	c, err := lcd.New(drv, 16, 2, lcd.WithSleep(slept.sleep))
	require.NoError(t, err)

	assert.Equal(t, []op{
		cmd(0x30), cmd(0x30), // reset by instruction
		cmd(0x38),            // 8-bit, 2 lines, 5x8
		cmd(0x0C),            // display on
		cmd(0x01),            // clear
		cmd(0x06),            // left to right
	}, drv.ops)
	assert.Equal(t, sleeps{4100 * time.Microsecond, 100 * time.Microsecond, 2 * time.Millisecond}, slept)
	assert.True(t, c.Display())
	assert.False(t, c.Cursor())
	assert.False(t, c.Blink())
	assert.False(t, c.RightToLeft())
}

func TestNew_FourBitSkipsResetPair(t *testing.T) {
	drv := &recorder{}
	newLCD(t, drv, 20, 4, lcd.WithRowOffsets(lcd.RowOffsets4x20))
	assert.Equal(t, []op{cmd(0x28), cmd(0x0C), cmd(0x01), cmd(0x06)}, drv.ops)
}

func TestNew_LargeFontOnlyOnOneLine(t *testing.T) {
	drv := &recorder{}
	newLCD(t, drv, 16, 1, lcd.WithLargeFont())
	assert.Equal(t, cmd(0x24), drv.ops[0])

	drv = &recorder{}
	newLCD(t, drv, 16, 2, lcd.WithLargeFont())
	assert.Equal(t, cmd(0x28), drv.ops[0])
}

func TestNew_RejectsBadGeometry(t *testing.T) {
	_, err := lcd.New(&recorder{}, 0, 2)
	assert.ErrorIs(t, err, lcd.ErrGeometry)

	_, err = lcd.New(&recorder{}, 16, 5)
	assert.ErrorIs(t, err, lcd.ErrGeometry)

	_, err = lcd.New(&recorder{}, 41, 2)
	assert.ErrorIs(t, err, lcd.ErrGeometry)
	newLCD(t, &recorder{}, 80, 1)
	newLCD(t, &recorder{}, 40, 2)

	_, err = lcd.New(&recorder{}, 20, 4)
	assert.ErrorIs(t, err, lcd.ErrRowOffsets)
}

func TestNew_PropagatesDriverErrors(t *testing.T) {
	_, err := lcd.New(&recorder{initErr: errBus}, 16, 2)
	assert.ErrorIs(t, err, errBus)

	_, err = lcd.New(&recorder{eightBit: true, failOn: 3}, 16, 2, lcd.WithSleep(func(time.Duration) {}))
	assert.ErrorIs(t, err, errBus)
}

func TestDisplayControlFlags(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, c.SetCursor(true))
	require.NoError(t, c.SetBlink(true))
	require.NoError(t, c.SetDisplay(false))
	require.NoError(t, c.SetCursor(false))

	assert.Equal(t, []op{cmd(0x0E), cmd(0x0F), cmd(0x0B), cmd(0x09)}, drv.ops)
	assert.False(t, c.Display())
	assert.False(t, c.Cursor())
	assert.True(t, c.Blink())
}

func TestDisplayControl_FailedWriteKeepsShadow(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 16, 2)
	drv.failOn = len(drv.ops) + 1

	assert.ErrorIs(t, c.SetCursor(true), errBus)
	assert.False(t, c.Cursor())
}

func TestShiftAndMove(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, c.ShiftDisplayLeft())
	require.NoError(t, c.ShiftDisplayRight())
	require.NoError(t, c.MoveCursorLeft())
	require.NoError(t, c.MoveCursorRight())
	require.NoError(t, c.Home())
	require.NoError(t, c.SetRightToLeft(true))

	assert.Equal(t, []op{cmd(0x18), cmd(0x1C), cmd(0x10), cmd(0x14), cmd(0x02), cmd(0x04)}, drv.ops)
	assert.True(t, c.RightToLeft())
}

func TestSetCursorPosition_Clamps(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 20, 4, lcd.WithRowOffsets(lcd.RowOffsets4x20))
	drv.reset()

	require.NoError(t, c.SetCursorPosition(5, 2))
	require.NoError(t, c.SetCursorPosition(-3, -1))
	require.NoError(t, c.SetCursorPosition(99, 9))

	assert.Equal(t, []op{cmd(0x80 | 0x19), cmd(0x80), cmd(0x80 | 0x67)}, drv.ops)
	col, row := c.CursorPosition()
	assert.Equal(t, 19, col)
	assert.Equal(t, 3, row)
}

func TestMessage_LeftToRight(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, c.SetCursorPosition(3, 0))
	require.NoError(t, c.Message("AB\nC"))

	assert.Equal(t, []op{
		cmd(0x83), // anchor
		cmd(0x83), // first character
		data('A'), data('B'),
		cmd(0xC0), // newline starts at column 0
		data('C'),
	}, drv.ops)
	assert.Equal(t, "AB\nC", c.LastMessage())

	col, row := c.CursorPosition()
	assert.Zero(t, col)
	assert.Zero(t, row)
}

func TestMessage_ColumnAlign(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 16, 2)
	c.SetColumnAlign(true)
	require.NoError(t, c.SetCursorPosition(3, 0))
	drv.reset()

	require.NoError(t, c.Message("A\nB"))
	assert.Equal(t, []op{cmd(0x83), data('A'), cmd(0xC3), data('B')}, drv.ops)
}

func TestMessage_RightToLeft(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 16, 2)
	require.NoError(t, c.SetRightToLeft(true))
	drv.reset()

	require.NoError(t, c.Message("A\nB"))
	assert.Equal(t, []op{cmd(0x8F), data('A'), cmd(0xCF), data('B')}, drv.ops)
}

func TestMessage_ExtraLinesClampToLastRow(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, c.Message("a\nb\nc"))
	assert.Equal(t, []op{cmd(0x80), data('a'), cmd(0xC0), data('b'), cmd(0xC0), data('c')}, drv.ops)
}

func TestMessage_EncodesRunes(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, c.Message("21.5°C"))
	assert.Equal(t, []op{
		cmd(0x80),
		data('2'), data('1'), data('.'), data('5'), data(0xDF), data('C'),
	}, drv.ops)
}

func TestMessage_VoicedKanaTakeTwoCells(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, c.Message("ガス"))
	assert.Equal(t, []op{cmd(0x80), data(0xB6), data(0xDE), data(0xBD)}, drv.ops)
}

func TestMessage_EmptyWritesNothing(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, c.Message(""))
	assert.Empty(t, drv.ops)
}

func TestCreateChar(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 16, 2)
	drv.reset()

	dots := [8]byte{0x0E, 0x11, 0x11, 0xFF, 0x11, 0x11, 0x0E, 0x00}
	require.NoError(t, c.CreateChar(9, dots))

	want := []op{cmd(0x40 | 1<<3)}
	for _, d := range dots {
		want = append(want, data(d&0x1F))
	}
	assert.Equal(t, want, drv.ops)
}

func TestSetBacklight(t *testing.T) {
	c := newLCD(t, &recorder{}, 16, 2)
	assert.ErrorIs(t, c.SetBacklight(true), lcd.ErrNotSupported)

	drv := &backlightRecorder{}
	c = newLCD(t, drv, 16, 2)
	require.NoError(t, c.SetBacklight(false))
	require.NotNil(t, drv.backlight)
	assert.False(t, *drv.backlight)

	require.NoError(t, c.Close())
	assert.True(t, drv.closed)
}

func TestNew_AttachKeepsDDRAM(t *testing.T) {
	drv := &recorder{}
	c := newLCD(t, drv, 16, 2, lcd.WithAttach())

	assert.Equal(t, []op{cmd(0x28)}, drv.ops)
	assert.True(t, c.Display())

	drv.reset()
	require.NoError(t, c.SetCursor(true))
	assert.Equal(t, []op{cmd(0x0E)}, drv.ops)
}

func TestDefaultRowOffsets(t *testing.T) {
	assert.Equal(t, lcd.RowOffsets2Line, lcd.DefaultRowOffsets(16, 1))
	assert.Equal(t, lcd.RowOffsetsST7036, lcd.DefaultRowOffsets(16, 3))
	assert.Equal(t, lcd.RowOffsets4x16, lcd.DefaultRowOffsets(16, 4))
	assert.Equal(t, lcd.RowOffsets4x20, lcd.DefaultRowOffsets(20, 4))
}
