package lcd_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charlcd/internal/lcd"
)

func newExt(t *testing.T, drv lcd.Driver, columns, lines int, opts ...lcd.Option) *lcd.ExtLCD {
	t.Helper()
	opts = append([]lcd.Option{lcd.WithSleep(func(time.Duration) {})}, opts...)
	e, err := lcd.NewExt(drv, columns, lines, opts...)
	require.NoError(t, err)
	return e
}

func TestNewExt_InitSequence(t *testing.T) {
	var slept sleeps
	drv := &recorder{eightBit: true}
	e, err := lcd.NewExt(drv, 16, 2, lcd.WithSleep(slept.sleep))
	require.NoError(t, err)

	assert.Equal(t, []op{
		cmd(0x30), cmd(0x30),
		cmd(0x39), // function set, instruction table 1
		cmd(0x14), // bias 1/5
		cmd(0x73), // contrast low nibble
		cmd(0x56), // booster on, contrast high bits
		cmd(0x6C), // follower on, amp 4
		cmd(0x38), // back to table 0
		cmd(0x0C), cmd(0x01), cmd(0x06),
	}, drv.ops)
	assert.Contains(t, slept, 200*time.Millisecond)
	assert.Equal(t, 0x23, e.Contrast())
	assert.Equal(t, 4, e.Follower())
	assert.True(t, e.Booster())
	assert.False(t, e.Icon())
}

func TestNewExt_ThreeLineBias(t *testing.T) {
	drv := &recorder{eightBit: true}
	newExt(t, drv, 16, 3, lcd.WithRowOffsets(lcd.RowOffsetsST7036))
	assert.Equal(t, cmd(0x15), drv.ops[3])
}

func TestNewExt_IgnoresLargeFont(t *testing.T) {
	drv := &recorder{eightBit: true}
	newExt(t, drv, 16, 1, lcd.WithLargeFont())
	assert.Equal(t, cmd(0x31), drv.ops[2])
	assert.Equal(t, cmd(0x30), drv.ops[7])
}

func TestSetContrast_SwitchesInstructionTable(t *testing.T) {
	drv := &recorder{eightBit: true}
	e := newExt(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, e.SetContrast(0x10))
	assert.Equal(t, []op{cmd(0x39), cmd(0x70), cmd(0x55), cmd(0x38)}, drv.ops)
	assert.Equal(t, 0x10, e.Contrast())
}

func TestSetContrast_Clamps(t *testing.T) {
	e := newExt(t, &recorder{eightBit: true}, 16, 2)

	require.NoError(t, e.SetContrast(200))
	assert.Equal(t, lcd.MaxContrast, e.Contrast())

	require.NoError(t, e.SetContrast(-5))
	assert.Equal(t, 0, e.Contrast())
}

func TestSetFollower(t *testing.T) {
	drv := &recorder{eightBit: true}
	e := newExt(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, e.SetFollower(12))
	require.NoError(t, e.SetFollower(-1))

	assert.Equal(t, []op{
		cmd(0x39), cmd(0x6F), cmd(0x38),
		cmd(0x39), cmd(0x60), cmd(0x38),
	}, drv.ops)
	assert.Equal(t, -1, e.Follower())
}

func TestSetIconAndBooster_KeepContrastBits(t *testing.T) {
	drv := &recorder{eightBit: true}
	e := newExt(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, e.SetIcon(true))
	require.NoError(t, e.SetBooster(false))

	assert.Equal(t, []op{
		cmd(0x39), cmd(0x5E), cmd(0x38),
		cmd(0x39), cmd(0x5A), cmd(0x38),
	}, drv.ops)
	assert.True(t, e.Icon())
	assert.False(t, e.Booster())
}

func TestSetPower_FailureRestoresShadow(t *testing.T) {
	drv := &recorder{eightBit: true}
	e := newExt(t, drv, 16, 2)
	drv.failOn = len(drv.ops) + 2

	assert.ErrorIs(t, e.SetIcon(true), errBus)
	assert.False(t, e.Icon())
}

func TestSetBias(t *testing.T) {
	drv := &recorder{eightBit: true}
	e := newExt(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, e.SetBias(lcd.Bias1_4))
	assert.Equal(t, []op{cmd(0x39), cmd(0x1C), cmd(0x38)}, drv.ops)
}

func TestIconRAM(t *testing.T) {
	drv := &recorder{eightBit: true}
	e := newExt(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, e.SetIconAddress(0x13))
	require.NoError(t, e.WriteIcon(2, 0xFF))

	assert.Equal(t, []op{
		cmd(0x39), cmd(0x43), cmd(0x38),
		cmd(0x39), cmd(0x42), data(0x1F), cmd(0x38),
	}, drv.ops)
	assert.Equal(t, byte(2), e.IconAddress())
}

func TestExt_InheritsMessage(t *testing.T) {
	drv := &recorder{eightBit: true}
	e := newExt(t, drv, 16, 2)
	drv.reset()

	require.NoError(t, e.Message("hi"))
	assert.Equal(t, []op{cmd(0x80), data('h'), data('i')}, drv.ops)
}

func TestNewExt_Attach(t *testing.T) {
	drv := &recorder{eightBit: true}
	e := newExt(t, drv, 16, 2, lcd.WithAttach())

	assert.Equal(t, []op{cmd(0x38)}, drv.ops)
	assert.Equal(t, 0x23, e.Contrast())
	assert.Equal(t, 4, e.Follower())

	drv.reset()
	require.NoError(t, e.SetContrast(0x23))
	assert.Equal(t, []op{cmd(0x39), cmd(0x73), cmd(0x56), cmd(0x38)}, drv.ops)
}
