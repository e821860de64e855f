// Package source defines the boundary to the event and message providers
// and ships two local adapters: an ICS-file calendar reader and a JSON
// fixture reader. Network-backed providers live outside this repository;
// they are expected to hand the pipeline records already normalized to
// these interfaces.
package source

import (
	"context"
	"time"

	"github.com/mstanton/daybrief/internal/model"
)

// EventSource supplies normalized calendar events for a time range.
type EventSource interface {
	Events(ctx context.Context, from, to time.Time) ([]model.Event, error)
}

// MessageSource supplies a bounded list of unread inbox messages. Only the
// daily run consumes messages.
type MessageSource interface {
	UnreadMessages(ctx context.Context, limit int) ([]model.Message, error)
}
