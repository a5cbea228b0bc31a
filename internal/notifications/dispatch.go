package notifications

import (
	"context"
	"errors"
	"log/slog"

	"github.com/albapepper/comeback-scout/internal/model"
)

// ErrQueueFull is returned by Notify when the dispatch queue is saturated.
var ErrQueueFull = errors.New("notification queue full")

// Dispatcher queues alerts and delivers them from a background worker so the
// request path never waits on a broker or chat API.
// Nil-safe: a nil Dispatcher accepts and drops every alert.
type Dispatcher struct {
	senders []Sender
	queue   chan model.ComebackAlert
	logger  *slog.Logger
}

// NewDispatcher returns nil when no senders are configured.
func NewDispatcher(logger *slog.Logger, senders ...Sender) *Dispatcher {
	if len(senders) == 0 {
		return nil
	}
	return &Dispatcher{
		senders: senders,
		queue:   make(chan model.ComebackAlert, defaultQueueSize),
		logger:  logger,
	}
}

// Notify enqueues the alert without blocking.
func (d *Dispatcher) Notify(ctx context.Context, alert model.ComebackAlert) error {
	if d == nil {
		return nil
	}
	select {
	case d.queue <- alert:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// StartWorker delivers queued alerts until ctx is cancelled, then drains
// what is left and closes the senders. Intended to be called with `go`.
func (d *Dispatcher) StartWorker(ctx context.Context) {
	if d == nil {
		return
	}
	names := make([]string, 0, len(d.senders))
	for _, s := range d.senders {
		names = append(names, s.Name())
	}
	d.logger.Info("Notification dispatch worker started", "senders", names)

	defer d.closeSenders()
	for {
		select {
		case alert := <-d.queue:
			d.deliver(ctx, alert)
		case <-ctx.Done():
			d.drain()
			d.logger.Info("Notification dispatch worker stopped")
			return
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case alert := <-d.queue:
			d.deliver(context.Background(), alert)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, alert model.ComebackAlert) (sent, failed int) {
	for _, s := range d.senders {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		err := s.Send(sendCtx, alert)
		cancel()
		if err != nil {
			d.logger.Warn("send failed", "sender", s.Name(), "alert_id", alert.ID, "error", err)
			failed++
			continue
		}
		sent++
	}
	if sent+failed > 0 {
		d.logger.Debug("dispatch alert", "alert_id", alert.ID, "sent", sent, "failed", failed)
	}
	return sent, failed
}

func (d *Dispatcher) closeSenders() {
	for _, s := range d.senders {
		if err := s.Close(); err != nil {
			d.logger.Warn("close sender", "sender", s.Name(), "error", err)
		}
	}
}
