package lcd

import "time"

// HD44780 instruction set.
const (
	cmdClearDisplay = 0b0000_0001
	cmdReturnHome   = 0b0000_0010

	entryLeft  = 0b0000_0110
	entryRight = 0b0000_0100

	cmdDisplayControl = 0b0000_1000
	displayEnable     = 0b0000_0100
	cursorShow        = 0b0000_0010
	cursorBlink       = 0b0000_0001

	cmdCursorLeft   = 0b0001_0000
	cmdCursorRight  = 0b0001_0100
	cmdDisplayLeft  = 0b0001_1000
	cmdDisplayRight = 0b0001_1100

	function8Bit  = 0b0011_0000
	function4Bit  = 0b0010_0000
	function1Line = 0b0010_0000
	function2Line = 0b0010_1000
	function5x8   = 0b0010_0000
	function5x10  = 0b0010_0100

	cmdCGRAMAddress = 0b0100_0000
	cmdDDRAMAddress = 0b1000_0000
)

// ST7032/ST7036 instruction table 1.
const (
	functionTable0 = 0b0010_0000
	functionTable1 = 0b0010_0001

	cmdBiasSet = 0b0001_0100
	bias1_4    = 0b0000_1000
	bias1_5    = 0b0000_0000
	bias3Line  = 0b0000_0001

	cmdIconAddress = 0b0100_0000

	cmdPowerSet = 0b0101_0000
	iconOn      = 0b0000_1000
	boosterOn   = 0b0000_0100

	cmdFollowerOn  = 0b0110_1000
	cmdFollowerOff = 0b0110_0000

	cmdContrastLow = 0b0111_0000
)

const (
	MaxContrast = 0b11_1111
	MaxFollower = 7

	defaultContrast = 0b10_0011
	defaultFollower = 4
)

// Execution delays from the HD44780 and ST7032 datasheets.
const (
	resetDelayLong  = 4100 * time.Microsecond
	resetDelayShort = 100 * time.Microsecond
	clearDelay      = 2 * time.Millisecond
	followerDelay   = 200 * time.Millisecond
)
