package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/parkjy76/haruplan/store"
)

// Poller periodically scans for un-notified events whose time fell into
// the last polling window and pushes alerts for them. Marking an event
// notified is independent of delivery outcome on secondary channels:
// one successful channel (console always counts) is enough.
type Poller struct {
	store    *store.Store
	senders  []Sender
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewPoller creates a poller with the given scan interval.
func NewPoller(s *store.Store, senders []Sender, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		store:    s,
		senders:  senders,
		interval: interval,
		// External push APIs dislike bursts; one alert per second is
		// plenty for a personal schedule.
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
		logger:  logger,
		now:     time.Now,
	}
}

// Run polls until the context is canceled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("notifier started", "interval", p.interval.String())
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("notifier stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := p.PollOnce(ctx); err != nil {
				p.logger.Warn("notifier poll failed", "error", err)
			}
		}
	}
}

// PollOnce scans one window and notifies due events.
func (p *Poller) PollOnce(ctx context.Context) error {
	now := p.now()
	windowStart := now.Add(-p.interval).Unix()
	// ListEvents treats EndTs as exclusive; include the current second.
	windowEnd := now.Unix() + 1

	notified := false
	due, err := p.store.ListEvents(ctx, &store.FindEvent{
		StartTs:  &windowStart,
		EndTs:    &windowEnd,
		Notified: &notified,
	})
	if err != nil {
		return err
	}

	for _, event := range due {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
		p.notify(ctx, event)
	}
	return nil
}

func (p *Poller) notify(ctx context.Context, event *store.Event) {
	when := time.Unix(event.EventTs, 0).In(p.now().Location())
	message := fmt.Sprintf("%s (%s)", event.Title, when.Format("01-02 15:04"))

	for _, sender := range p.senders {
		if err := sender.Send(ctx, "Schedule Alert", message); err != nil {
			p.logger.Warn("notification send failed",
				"channel", sender.Name(),
				"event_id", event.ID,
				"error", err,
			)
			continue
		}
		p.logger.Info("notification sent", "channel", sender.Name(), "event_id", event.ID)
	}

	done := true
	if err := p.store.UpdateEvent(ctx, &store.UpdateEvent{ID: event.ID, Notified: &done}); err != nil {
		p.logger.Warn("failed to mark event notified", "event_id", event.ID, "error", err)
	}
}
