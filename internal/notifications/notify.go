// Package notifications fans newly created comeback alerts out to external
// channels (Kafka topic, Telegram chat).
//
// Pipeline: alert created → enqueue on the Dispatcher → background worker
// delivers to every configured Sender.
package notifications

import (
	"context"
	"time"

	"github.com/albapepper/comeback-scout/internal/model"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	defaultQueueSize = 100
	sendTimeout      = 10 * time.Second
)

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Sender delivers a single alert to one downstream channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, alert model.ComebackAlert) error
	Close() error
}

// Event is the JSON payload published for every created alert.
type Event struct {
	Type  string              `json:"type"`
	Alert model.ComebackAlert `json:"alert"`
}

const eventAlertCreated = "comeback_alert.created"
