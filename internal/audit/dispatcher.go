package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Event struct {
	ActorID  *uuid.UUID
	Action   string
	Entity   string
	EntityID *int64
	Metadata any
}

// Dispatcher writes audit events off the request path. A full queue drops
// the event; audit never fails a request.
type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event

	timeout time.Duration
	once    sync.Once
	done    chan struct{}
}

func NewDispatcher(logger *Logger, log *zap.Logger, buffer int) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = 100
	}

	d := &Dispatcher{
		logger:  logger,
		log:     log.Named("audit"),
		queue:   make(chan Event, buffer),
		timeout: 5 * time.Second,
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := d.logger.Log(ctx, ev.ActorID, ev.Action, ev.Entity, ev.EntityID, ev.Metadata)
		cancel()

		if err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.String("entity", ev.Entity),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	defer func() {
		// send on closed queue after Close
		if recover() != nil {
			d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		}
	}()

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits until the queue is drained or ctx
// ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.once.Do(func() { close(d.queue) })

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
