// Command bhtmeter shows sensor readings on a character LCD.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"charlcd/internal/app"
	"charlcd/internal/config"
	"charlcd/internal/display"
	"charlcd/internal/logger"
	"charlcd/internal/meter"
)

var cfgFile string

func main() {
	if err := newRoot().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "bhtmeter",
		Short:        "Show sensor readings on a character LCD",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, log)
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "config file (default ./charlcd.yaml or ~/.charlcd/charlcd.yaml)")
	f.String("driver", "st7032", "driver: st7032, st7036, pcf8574 or debug")
	f.String("bus", "", "I2C bus name (default first bus)")
	f.String("addr", "", "I2C address, e.g. 0x3e (default per driver)")
	f.Int("columns", 16, "display columns")
	f.Int("lines", 2, "display lines")
	f.Bool("trace", false, "log every byte sent to the controller")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.String("log-format", "console", "log format: console or json")
	f.String("schedule", "@every 5s", "cron spec for refreshes")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	w, err := app.NewWire(cfg, log, app.Options{})
	if err != nil {
		log.Error("failed to open display", zap.Error(err))
		return err
	}
	defer w.Close()

	disp := display.NewLCD(w.LCD)
	if err := disp.PrintLine(0, "bhtmeter"); err != nil {
		return err
	}

	messages := make(chan display.Message, 1)
	handler := display.NewHandler(disp, messages, log)
	done := make(chan error, 1)
	go func() { done <- handler.Run(ctx) }()

	m := meter.New(sources(cfg), cfg.Columns, cfg.Lines, messages, log)
	m.Refresh(ctx)
	if err := m.Start(cfg.Meter.Schedule); err != nil {
		return err
	}
	log.Info("bhtmeter running", zap.Int("sources", len(cfg.Meter.Sources)), zap.Int("pages", m.Pages()))

	<-ctx.Done()
	m.Stop()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err := disp.Clear(); err != nil {
		log.Warn("clear on exit", zap.Error(err))
	}
	log.Info("bhtmeter stopped")
	return nil
}

func sources(cfg *config.Config) []meter.Source {
	out := make([]meter.Source, 0, len(cfg.Meter.Sources))
	for _, s := range cfg.Meter.Sources {
		out = append(out, meter.Source{
			Label:     s.Label,
			Path:      s.Path,
			Scale:     s.Scale,
			Unit:      s.Unit,
			Precision: s.Precision,
		})
	}
	return out
}
