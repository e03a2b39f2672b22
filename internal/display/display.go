package display

import (
	"fmt"
	"strings"
)

// Display is a character display addressed by line.
type Display interface {
	Backlight(on bool) error
	Clear() error
	ClearLine(line int) error
	PrintLine(line int, text string) error
	Columns() int
	Lines() int
	Close() error
}

// Panel is the subset of lcd.CharLCD (and lcd.ExtLCD) that LCD needs.
type Panel interface {
	Clear() error
	SetCursorPosition(column, row int) error
	Message(s string) error
	SetBacklight(on bool) error
	Columns() int
	Lines() int
	Close() error
}

// LCD implements Display on a Panel.
type LCD struct {
	panel Panel
}

var _ Display = (*LCD)(nil)

func NewLCD(p Panel) *LCD { return &LCD{panel: p} }

func (d *LCD) Backlight(on bool) error { return d.panel.SetBacklight(on) }
func (d *LCD) Clear() error            { return d.panel.Clear() }
func (d *LCD) Columns() int            { return d.panel.Columns() }
func (d *LCD) Lines() int              { return d.panel.Lines() }
func (d *LCD) Close() error            { return d.panel.Close() }

// ClearLine blanks one line with spaces.
func (d *LCD) ClearLine(line int) error { return d.PrintLine(line, "") }

// PrintLine writes text on line, cut or space padded to the panel width.
// Newlines and tabs are shown as spaces.
func (d *LCD) PrintLine(line int, text string) error {
	if line < 0 || line >= d.panel.Lines() {
		return fmt.Errorf("display: line %d out of range 0..%d", line, d.panel.Lines()-1)
	}
	if err := d.panel.SetCursorPosition(0, line); err != nil {
		return err
	}
	return d.panel.Message(Fit(text, d.panel.Columns()))
}

var blanker = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")

// Fit returns text as exactly width runes.
func Fit(text string, width int) string {
	rs := []rune(blanker.Replace(text))
	if len(rs) >= width {
		return string(rs[:width])
	}
	return string(rs) + strings.Repeat(" ", width-len(rs))
}

// Justify lays out label on the left and value flush right across width.
// The label is truncated when both do not fit.
func Justify(label, value string, width int) string {
	lr, vr := []rune(label), []rune(value)
	if len(vr) >= width {
		return string(vr[len(vr)-width:])
	}
	room := width - len(vr) - 1
	if room < 0 {
		room = 0
	}
	if len(lr) > room {
		lr = lr[:room]
	}
	gap := width - len(lr) - len(vr)
	return string(lr) + strings.Repeat(" ", gap) + string(vr)
}
