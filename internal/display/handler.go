package display

import (
	"context"

	"go.uber.org/zap"
)

// Message is a full screen of text, one entry per line. Missing lines are
// blanked; extra lines are dropped.
type Message struct {
	Lines []string
	// Backlight, when set, switches the backlight before drawing.
	Backlight *bool
}

// Handler renders Messages from a channel onto a Display.
type Handler struct {
	disp     Display
	messages <-chan Message
	log      *zap.Logger

	// shown caches what each line holds so unchanged lines are skipped.
	shown []string
}

func NewHandler(d Display, messages <-chan Message, log *zap.Logger) *Handler {
	return &Handler{
		disp:     d,
		messages: messages,
		log:      log.Named("display"),
	}
}

// Run processes messages until ctx is done or the channel is closed. Render
// failures are logged and do not stop the loop.
func (h *Handler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-h.messages:
			if !ok {
				return nil
			}
			h.render(msg)
		}
	}
}

func (h *Handler) render(msg Message) {
	if msg.Backlight != nil {
		if err := h.disp.Backlight(*msg.Backlight); err != nil {
			h.log.Warn("backlight", zap.Error(err))
		}
	}
	if h.shown == nil {
		h.shown = make([]string, h.disp.Lines())
		for i := range h.shown {
			h.shown[i] = "\x00" // force the first draw
		}
	}
	for i := range h.shown {
		text := ""
		if i < len(msg.Lines) {
			text = msg.Lines[i]
		}
		text = Fit(text, h.disp.Columns())
		if text == h.shown[i] {
			continue
		}
		if err := h.disp.PrintLine(i, text); err != nil {
			h.log.Error("print line", zap.Int("line", i), zap.Error(err))
			h.shown[i] = "\x00"
			continue
		}
		h.shown[i] = text
	}
}
