package lcd

import (
	"fmt"
	"io"
	"time"
)

const (
	maxColumns = 80
	maxLines   = 4
	// DDRAM holds 40 cells per line once the controller runs two lines.
	maxMultiLineColumns = 40
)

// CharLCD is an HD44780 or ST7066U compatible controller.
type CharLCD struct {
	drv        Driver
	columns    int
	lines      int
	rowOffsets []byte
	largeFont  bool
	attach     bool
	enc        Encoder
	sleep      func(time.Duration)

	functionSet    byte
	displayControl byte

	// column and row anchor the next Message.
	column, row int
	message     string
	columnAlign bool
	rightToLeft bool
}

// New initialises the controller behind drv and returns it cleared, with the
// display on and left-to-right entry.
func New(drv Driver, columns, lines int, opts ...Option) (*CharLCD, error) {
	c, err := newCharLCD(drv, columns, lines, opts)
	if err != nil {
		return nil, err
	}
	setup := c.initialize
	if c.attach {
		setup = c.reattach
	}
	if err := setup(); err != nil {
		return nil, err
	}
	return c, nil
}

func newCharLCD(drv Driver, columns, lines int, opts []Option) (*CharLCD, error) {
	if columns < 1 || columns > maxColumns || lines < 1 || lines > maxLines {
		return nil, fmt.Errorf("%w: %dx%d", ErrGeometry, columns, lines)
	}
	if lines >= 2 && columns > maxMultiLineColumns {
		return nil, fmt.Errorf("%w: %dx%d, at most %d columns with more than one line",
			ErrGeometry, columns, lines, maxMultiLineColumns)
	}
	o := buildOptions(opts)
	if len(o.rowOffsets) < lines {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrRowOffsets, len(o.rowOffsets), lines)
	}
	return &CharLCD{
		drv:            drv,
		columns:        columns,
		lines:          lines,
		rowOffsets:     o.rowOffsets,
		largeFont:      o.largeFont,
		attach:         o.attach,
		enc:            o.encoder,
		sleep:          o.sleep,
		displayControl: cmdDisplayControl,
	}, nil
}

// resetBus runs the driver init and, for 8-bit buses, the datasheet's
// "initialising by instruction" function set pair.
func (c *CharLCD) resetBus() (bool, error) {
	eightBit, err := c.drv.Init()
	if err != nil {
		return false, fmt.Errorf("lcd: driver init: %w", err)
	}
	if !eightBit {
		return false, nil
	}
	if err := c.command(function8Bit); err != nil {
		return false, err
	}
	c.sleep(resetDelayLong)
	if err := c.command(function8Bit); err != nil {
		return false, err
	}
	c.sleep(resetDelayShort)
	return true, nil
}

func (c *CharLCD) baseFunctionSet(eightBit bool) byte {
	fs := byte(function1Line | function5x8)
	if eightBit {
		fs |= function8Bit
	}
	if c.lines >= 2 {
		fs |= function2Line
	} else if c.largeFont {
		fs |= function5x10
	}
	return fs
}

func (c *CharLCD) initialize() error {
	eightBit, err := c.resetBus()
	if err != nil {
		return err
	}
	c.functionSet = c.baseFunctionSet(eightBit)
	if err := c.command(c.functionSet); err != nil {
		return err
	}
	return c.finishInit()
}

// reattach syncs the bus and function set without touching DDRAM.
func (c *CharLCD) reattach() error {
	eightBit, err := c.drv.Init()
	if err != nil {
		return fmt.Errorf("lcd: driver init: %w", err)
	}
	c.functionSet = c.baseFunctionSet(eightBit)
	if err := c.command(c.functionSet); err != nil {
		return err
	}
	c.displayControl = cmdDisplayControl | displayEnable
	return nil
}

// finishInit is the tail shared by CharLCD and ExtLCD initialisation.
func (c *CharLCD) finishInit() error {
	if err := c.SetDisplay(true); err != nil {
		return err
	}
	if err := c.Clear(); err != nil {
		return err
	}
	return c.SetRightToLeft(false)
}

func (c *CharLCD) command(b byte) error {
	if err := c.drv.Command(b); err != nil {
		return fmt.Errorf("lcd: command %#02x: %w", b, err)
	}
	return nil
}

func (c *CharLCD) data(b byte) error {
	if err := c.drv.Data(b); err != nil {
		return fmt.Errorf("lcd: data %#02x: %w", b, err)
	}
	return nil
}

func (c *CharLCD) Driver() Driver { return c.drv }
func (c *CharLCD) Columns() int   { return c.columns }
func (c *CharLCD) Lines() int     { return c.lines }

// Clear blanks DDRAM and returns the cursor to (0,0).
func (c *CharLCD) Clear() error {
	if err := c.command(cmdClearDisplay); err != nil {
		return err
	}
	c.column, c.row = 0, 0
	c.sleep(clearDelay)
	return nil
}

// Home returns the cursor to (0,0) and undoes any display shift.
func (c *CharLCD) Home() error {
	if err := c.command(cmdReturnHome); err != nil {
		return err
	}
	c.column, c.row = 0, 0
	c.sleep(clearDelay)
	return nil
}

func (c *CharLCD) RightToLeft() bool { return c.rightToLeft }

// SetRightToLeft selects the entry mode: when enabled the address counter
// decrements after each character.
func (c *CharLCD) SetRightToLeft(enable bool) error {
	entry := byte(entryLeft)
	if enable {
		entry = entryRight
	}
	if err := c.command(entry); err != nil {
		return err
	}
	c.rightToLeft = enable
	return nil
}

func (c *CharLCD) setDisplayControl(field byte, set bool) error {
	mode := c.displayControl &^ field
	if set {
		mode |= field
	}
	if err := c.command(mode); err != nil {
		return err
	}
	c.displayControl = mode
	return nil
}

func (c *CharLCD) Display() bool { return c.displayControl&displayEnable != 0 }
func (c *CharLCD) Cursor() bool  { return c.displayControl&cursorShow != 0 }
func (c *CharLCD) Blink() bool   { return c.displayControl&cursorBlink != 0 }

// SetDisplay turns the panel on or off. DDRAM is kept while off.
func (c *CharLCD) SetDisplay(enable bool) error {
	return c.setDisplayControl(displayEnable, enable)
}

// SetCursor shows or hides the underline cursor.
func (c *CharLCD) SetCursor(show bool) error {
	return c.setDisplayControl(cursorShow, show)
}

// SetBlink enables the blinking block cursor.
func (c *CharLCD) SetBlink(blink bool) error {
	return c.setDisplayControl(cursorBlink, blink)
}

func (c *CharLCD) ShiftDisplayLeft() error  { return c.command(cmdDisplayLeft) }
func (c *CharLCD) ShiftDisplayRight() error { return c.command(cmdDisplayRight) }
func (c *CharLCD) MoveCursorLeft() error    { return c.command(cmdCursorLeft) }
func (c *CharLCD) MoveCursorRight() error   { return c.command(cmdCursorRight) }

// SetCursorPosition moves the address counter to (column,row), clamped to
// the display, and anchors the next Message there.
func (c *CharLCD) SetCursorPosition(column, row int) error {
	column = clamp(column, 0, c.columns-1)
	row = clamp(row, 0, c.lines-1)
	addr := c.rowOffsets[row] + byte(column)
	if err := c.command(cmdDDRAMAddress | addr&0x7F); err != nil {
		return err
	}
	c.column, c.row = column, row
	return nil
}

// CursorPosition returns the current message anchor.
func (c *CharLCD) CursorPosition() (column, row int) { return c.column, c.row }

func (c *CharLCD) ColumnAlign() bool { return c.columnAlign }

// SetColumnAlign makes lines after a newline start at the column the
// message started in instead of the display edge.
func (c *CharLCD) SetColumnAlign(enable bool) { c.columnAlign = enable }

// LastMessage returns the text passed to the last Message call.
func (c *CharLCD) LastMessage() string { return c.message }

// Message writes s starting at the anchor. In right-to-left mode the anchor
// column is counted from the right edge. The anchor is reset to (0,0)
// afterwards.
func (c *CharLCD) Message(s string) error {
	c.message = s
	line := c.row
	first := true
	var codes []byte
	for _, r := range s {
		if first {
			col := c.column
			if c.rightToLeft {
				col = c.columns - 1 - c.column
			}
			if err := c.SetCursorPosition(col, line); err != nil {
				return err
			}
			first = false
		}
		if r == '\n' {
			line++
			col := 0
			switch {
			case c.columnAlign:
				col = c.column
			case c.rightToLeft:
				col = c.columns - 1
			}
			if err := c.SetCursorPosition(col, line); err != nil {
				return err
			}
			continue
		}
		codes = c.enc.AppendRune(codes[:0], r)
		for _, b := range codes {
			if err := c.data(b); err != nil {
				return err
			}
		}
	}
	c.column, c.row = 0, 0
	return nil
}

// CreateChar stores a 5x8 glyph in CGRAM slot code (0..7). Each byte of
// dots is one row, least significant 5 bits used. The address counter is
// left in CGRAM; the next Message repositions it.
func (c *CharLCD) CreateChar(code byte, dots [8]byte) error {
	code &= 7
	if err := c.command(cmdCGRAMAddress | code<<3); err != nil {
		return err
	}
	for _, row := range dots {
		if err := c.data(row & 0x1F); err != nil {
			return err
		}
	}
	return nil
}

// SetBacklight switches the backlight when the driver supports it.
func (c *CharLCD) SetBacklight(on bool) error {
	b, ok := c.drv.(Backlighter)
	if !ok {
		return ErrNotSupported
	}
	if err := b.SetBacklight(on); err != nil {
		return fmt.Errorf("lcd: backlight: %w", err)
	}
	return nil
}

// Close releases the driver when it owns a bus.
func (c *CharLCD) Close() error {
	if cl, ok := c.drv.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
