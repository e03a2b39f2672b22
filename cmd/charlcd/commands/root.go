package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"charlcd/internal/app"
	"charlcd/internal/config"
	"charlcd/internal/logger"
)

var (
	cfgFile string
	attach  bool

	cfg *config.Config
	log *zap.Logger
)

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "charlcd",
		Short:         "Drive HD44780/ST7032/ST7036 character LCDs over I2C",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			l, err := logger.New(c.LogLevel, c.LogFormat)
			if err != nil {
				return err
			}
			cfg, log = c, l
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./charlcd.yaml or ~/.charlcd/charlcd.yaml)")
	pf.BoolVar(&attach, "attach", false, "reuse an initialised display instead of resetting it")
	pf.String("driver", "st7032", "driver: st7032, st7036, pcf8574 or debug")
	pf.String("bus", "", "I2C bus name, e.g. 1 or /dev/i2c-1 (default first bus)")
	pf.String("addr", "", "I2C address, e.g. 0x3e (default per driver)")
	pf.Int("speed", 0, "I2C bus speed in kHz (0 keeps the bus default)")
	pf.Int("columns", 16, "display columns")
	pf.Int("lines", 2, "display lines")
	pf.String("rom", "a00", "character ROM: a00 or ascii")
	pf.Bool("trace", false, "log every byte sent to the controller")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("home", "", "directory holding the glyph library (default ~/.charlcd)")

	root.AddCommand(
		printCmd(),
		clearCmd(),
		backlightCmd(),
		cursorCmd(),
		shiftCmd(),
		contrastCmd(),
		iconCmd(),
		glyphCmd(),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	return newRoot().Execute()
}

// newWire builds the display for a command.
var newWire = func() (*app.Wire, error) {
	return app.NewWire(cfg, log, app.Options{Attach: attach})
}

// withDisplay opens the display, runs fn and closes it again.
func withDisplay(fn func(w *app.Wire) error) (err error) {
	w, err := newWire()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(w)
}
