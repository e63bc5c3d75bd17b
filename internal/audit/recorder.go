package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"trustbridge/pkg/requestcontext"
)

// Sink persists or forwards audit events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher is the interface services depend on. Emission is best-effort and
// non-blocking: a full buffer drops the event with a log line rather than
// stalling a scoring request.
type Publisher interface {
	Emit(ctx context.Context, event Event)
}

// Recorder buffers events and drains them to sinks from a background worker.
type Recorder struct {
	inbox  chan Event
	sinks  []Sink
	logger *slog.Logger
}

// NewRecorder builds a recorder fanning out to the given sinks.
func NewRecorder(logger *slog.Logger, sinks ...Sink) *Recorder {
	return &Recorder{
		inbox:  make(chan Event, 256),
		sinks:  sinks,
		logger: logger,
	}
}

// Emit enqueues an event, stamping ID, timestamp, and request ID when unset.
func (r *Recorder) Emit(ctx context.Context, event Event) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	select {
	case r.inbox <- event:
	default:
		r.logger.Warn("audit buffer full, dropping event",
			"action", event.Action,
			"uid", event.UserID,
		)
	}
}

// Run drains the inbox until the context is cancelled. Sink failures are
// logged, not propagated: audit must never take down the request path.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-r.inbox:
			for _, sink := range r.sinks {
				if err := sink.Append(ctx, event); err != nil {
					r.logger.ErrorContext(ctx, "audit sink append failed",
						"action", event.Action,
						"error", err,
					)
				}
			}
		}
	}
}

// NopPublisher discards all events; used where audit is not configured.
type NopPublisher struct{}

func (NopPublisher) Emit(context.Context, Event) {}
