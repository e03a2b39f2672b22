package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"charlcd/internal/app"
)

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the display",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDisplay(func(w *app.Wire) error { return w.LCD.Clear() })
		},
	}
}

func backlightCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "backlight on|off",
		Short:     "Switch the backlight",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			return withDisplay(func(w *app.Wire) error { return w.LCD.SetBacklight(on) })
		},
	}
}

func cursorCmd() *cobra.Command {
	var show, blink, display bool
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Show, hide or blink the cursor",
		Example: `  charlcd --attach cursor --show --blink
  charlcd --attach cursor --display=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDisplay(func(w *app.Wire) error {
				if cmd.Flags().Changed("show") {
					if err := w.LCD.SetCursor(show); err != nil {
						return err
					}
				}
				if cmd.Flags().Changed("blink") {
					if err := w.LCD.SetBlink(blink); err != nil {
						return err
					}
				}
				if cmd.Flags().Changed("display") {
					if err := w.LCD.SetDisplay(display); err != nil {
						return err
					}
				}
				fmt.Printf("display=%t cursor=%t blink=%t\n", w.LCD.Display(), w.LCD.Cursor(), w.LCD.Blink())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "show the underline cursor")
	cmd.Flags().BoolVar(&blink, "blink", false, "blink the cursor block")
	cmd.Flags().BoolVar(&display, "display", true, "panel on")
	return cmd
}

func shiftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shift left|right [n]",
		Short: "Scroll the display window",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 1
			if len(args) == 2 {
				v, err := strconv.Atoi(args[1])
				if err != nil || v < 0 {
					return fmt.Errorf("bad shift count %q", args[1])
				}
				n = v
			}
			return withDisplay(func(w *app.Wire) error {
				step := w.LCD.ShiftDisplayLeft
				switch args[0] {
				case "left":
				case "right":
					step = w.LCD.ShiftDisplayRight
				default:
					return fmt.Errorf("direction must be left or right, got %q", args[0])
				}
				for i := 0; i < n; i++ {
					if err := step(); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("want on or off, got %q", s)
}
