package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"charlcd/internal/app"
	"charlcd/internal/lcd"
)

var errNotExtended = errors.New("this command needs an st7032 or st7036 driver")

func extDisplay(fn func(w *app.Wire, e *lcd.ExtLCD) error) error {
	return withDisplay(func(w *app.Wire) error {
		if w.Ext == nil {
			return errNotExtended
		}
		return fn(w, w.Ext)
	})
}

func contrastCmd() *cobra.Command {
	var (
		follower int
		booster  bool
		bias4    bool
	)
	cmd := &cobra.Command{
		Use:   "contrast [0-63]",
		Short: "Set contrast and LCD power options",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return extDisplay(func(w *app.Wire, e *lcd.ExtLCD) error {
				if len(args) == 1 {
					c, err := strconv.Atoi(args[0])
					if err != nil {
						return fmt.Errorf("bad contrast %q", args[0])
					}
					if err := e.SetContrast(c); err != nil {
						return err
					}
				}
				if cmd.Flags().Changed("follower") {
					if err := e.SetFollower(follower); err != nil {
						return err
					}
				}
				if cmd.Flags().Changed("booster") {
					if err := e.SetBooster(booster); err != nil {
						return err
					}
				}
				if cmd.Flags().Changed("bias4") {
					b := lcd.Bias1_5
					if bias4 {
						b = lcd.Bias1_4
					}
					if err := e.SetBias(b); err != nil {
						return err
					}
				}
				fmt.Printf("contrast=%d follower=%d booster=%t\n", e.Contrast(), e.Follower(), e.Booster())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&follower, "follower", 4, "follower amplification 0-7, negative switches it off")
	cmd.Flags().BoolVar(&booster, "booster", true, "internal voltage booster (off for 5V supplies)")
	cmd.Flags().BoolVar(&bias4, "bias4", false, "use 1/4 bias instead of 1/5")
	return cmd
}

func iconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icon",
		Short: "Control the icon row",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show on|off",
			Short: "Switch icon display",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				on, err := parseOnOff(args[0])
				if err != nil {
					return err
				}
				return extDisplay(func(_ *app.Wire, e *lcd.ExtLCD) error { return e.SetIcon(on) })
			},
		},
		&cobra.Command{
			Use:   "set <address 0-15> <bits 0x00-0x1f>",
			Short: "Write one icon RAM address",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				addr, err := strconv.ParseUint(args[0], 0, 4)
				if err != nil {
					return fmt.Errorf("bad icon address %q", args[0])
				}
				bits, err := strconv.ParseUint(args[1], 0, 5)
				if err != nil {
					return fmt.Errorf("bad icon bits %q", args[1])
				}
				return extDisplay(func(_ *app.Wire, e *lcd.ExtLCD) error {
					return e.WriteIcon(byte(addr), byte(bits))
				})
			},
		},
	)
	return cmd
}
