package commands

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"charlcd/internal/app"
	"charlcd/internal/charset"
)

// printCmd writes text. Literal "\n" sequences start a new line and {name}
// placeholders refer to glyphs uploaded with --glyph.
func printCmd() *cobra.Command {
	var (
		column, row int
		rtl, align  bool
		keep        bool
		glyphs      []string
	)
	cmd := &cobra.Command{
		Use:   "print <text>...",
		Short: "Write text to the display",
		Example: `  charlcd print 'Hello\nworld'
  charlcd print --glyph heart '{heart} I2C'
  charlcd print --glyph heart=♥ 'I ♥ I2C'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(glyphs) > charset.MaxCustom+1 {
				return fmt.Errorf("at most %d glyphs fit in CGRAM", charset.MaxCustom+1)
			}
			text := strings.ReplaceAll(strings.Join(args, " "), `\n`, "\n")
			return withDisplay(func(w *app.Wire) error {
				text, err := uploadGlyphs(w, glyphs, text)
				if err != nil {
					return err
				}
				if !keep && attach {
					if err := w.LCD.Clear(); err != nil {
						return err
					}
				}
				if err := w.LCD.SetRightToLeft(rtl); err != nil {
					return err
				}
				w.LCD.SetColumnAlign(align)
				if err := w.LCD.SetCursorPosition(column, row); err != nil {
					return err
				}
				return w.LCD.Message(text)
			})
		},
	}
	cmd.Flags().IntVar(&column, "col", 0, "start column")
	cmd.Flags().IntVar(&row, "row", 0, "start row")
	cmd.Flags().BoolVar(&rtl, "rtl", false, "write right to left")
	cmd.Flags().BoolVar(&align, "align", false, "start every line at the start column")
	cmd.Flags().BoolVar(&keep, "keep", false, "with --attach, write over the current content instead of clearing")
	cmd.Flags().StringArrayVar(&glyphs, "glyph", nil, "upload a stored glyph to the next CGRAM slot; use it as {name}, or bind a character with name=R")
	return cmd
}

// placeholderBase is the first private-use rune standing in for {name}
// placeholders. Slot n is bound to placeholderBase+n.
const placeholderBase = '\uE000'

// uploadGlyphs writes the named glyphs to CGRAM slots 0.. and binds them in
// the encoder. An entry is "name" or "name=R"; {name} in text and the rune R
// both render the glyph.
func uploadGlyphs(w *app.Wire, entries []string, text string) (string, error) {
	for slot, entry := range entries {
		name, bind, hasBind := strings.Cut(entry, "=")
		g, err := w.Glyphs.Load(name)
		if err != nil {
			return "", err
		}
		if err := w.LCD.CreateChar(byte(slot), g); err != nil {
			return "", err
		}
		placeholder := placeholderBase + rune(slot)
		if err := w.Encoder.Map(placeholder, byte(slot)); err != nil {
			return "", err
		}
		if hasBind {
			r, size := utf8.DecodeRuneInString(bind)
			if r == utf8.RuneError || size != len(bind) {
				return "", fmt.Errorf("--glyph %s: bind exactly one character", entry)
			}
			if err := w.Encoder.Map(r, byte(slot)); err != nil {
				return "", err
			}
		}
		text = strings.ReplaceAll(text, "{"+name+"}", string(placeholder))
	}
	return text, nil
}
