package analytics

import (
	"context"
	"log"
)

type Sink interface {
	Append(ctx context.Context, e Event) error
}

// Tracker records events on a best-effort basis: failures are logged and
// dropped so that tracking never blocks a respondent. A nil Tracker or one
// without a sink does nothing.
type Tracker struct {
	sink Sink
}

func NewTracker(sink Sink) *Tracker { return &Tracker{sink: sink} }

func (t *Tracker) Track(ctx context.Context, e Event) {
	if t == nil || t.sink == nil {
		return
	}
	if err := t.sink.Append(ctx, e); err != nil {
		log.Printf("analytics: drop %s event: %v", e.Name, err)
	}
}
