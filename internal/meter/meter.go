package meter

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"charlcd/internal/display"
	"charlcd/internal/logger"
)

const (
	defaultReadTimeout = 2 * time.Second
	stopTimeout        = 10 * time.Second
)

// Meter periodically renders Sources onto a display.
type Meter struct {
	sources []Source
	columns int
	lines   int
	out     chan<- display.Message
	log     *zap.Logger

	readTimeout time.Duration
	scheduler   *cron.Cron
	page        int
}

// New returns a Meter laying out sources on a columns x lines display.
func New(sources []Source, columns, lines int, out chan<- display.Message, log *zap.Logger) *Meter {
	return &Meter{
		sources:     sources,
		columns:     columns,
		lines:       lines,
		out:         out,
		log:         log.Named("meter"),
		readTimeout: defaultReadTimeout,
	}
}

// Pages returns how many screens the sources need.
func (m *Meter) Pages() int {
	if len(m.sources) == 0 || m.lines < 1 {
		return 1
	}
	return (len(m.sources) + m.lines - 1) / m.lines
}

// Render reads the sources of the current page and formats one line each.
func (m *Meter) Render(ctx context.Context) []string {
	if len(m.sources) == 0 {
		return []string{display.Fit("no sources", m.columns)}
	}
	start := (m.page % m.Pages()) * m.lines
	end := min(start+m.lines, len(m.sources))

	out := make([]string, 0, end-start)
	for _, src := range m.sources[start:end] {
		v, err := src.Read(ctx)
		if err != nil {
			m.log.Warn("sensor read failed", zap.String("source", src.Label), zap.Error(err))
		}
		out = append(out, Reading{Source: src, Value: v, Err: err}.Format(m.columns))
	}
	return out
}

// Refresh renders the current page, queues it for display and advances to
// the next page.
func (m *Meter) Refresh(ctx context.Context) {
	lines := m.Render(ctx)
	m.page = (m.page + 1) % m.Pages()
	select {
	case m.out <- display.Message{Lines: lines}:
	default:
		m.log.Warn("display busy, dropping refresh")
	}
}

// Start schedules Refresh with a cron spec such as "@every 5s" and starts
// the scheduler in the background.
func (m *Meter) Start(spec string) error {
	if m.scheduler != nil {
		return errors.New("meter: already started")
	}
	cl := logger.NewCronLogger(m.log.Named("cron"))
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.readTimeout)
		defer cancel()
		m.Refresh(ctx)
	})
	if err != nil {
		m.log.Error("failed to schedule meter refresh", zap.String("spec", spec), zap.Error(err))
		return err
	}
	m.log.Info("meter refresh scheduled", zap.String("spec", spec), zap.Int("entry", int(id)))
	m.scheduler = c
	c.Start()
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (m *Meter) Stop() {
	if m.scheduler == nil {
		return
	}
	select {
	case <-m.scheduler.Stop().Done():
		m.log.Info("meter scheduler stopped")
	case <-time.After(stopTimeout):
		m.log.Warn("meter scheduler stop timed out")
	}
	m.scheduler = nil
}
