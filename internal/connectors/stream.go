package connectors

import (
	"context"
	"sync"

	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
)

// Producer is a connector's generation loop. It emits entities in order and
// returns nil on normal completion or the fatal error that ended the run.
// emit blocks until the consumer pulls the entity and returns an error only
// when the stream has been cancelled; producers must stop on that error.
type Producer func(ctx context.Context, emit func(domain.Entity) error) error

// NewStream runs produce in a single goroutine behind a pull-based
// EntityStream. The channel is unbuffered, so the producer is suspended at
// each emit until the consumer asks for the next entity: at most one
// network request is ever in flight per stream, and closing the stream
// stops further requests.
func NewStream(ctx context.Context, produce Producer) driven.EntityStream {
	ctx, cancel := context.WithCancel(ctx)

	s := &stream{
		cancel: cancel,
		items:  make(chan domain.Entity),
		result: make(chan error, 1),
	}

	go func() {
		err := produce(ctx, func(e domain.Entity) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case s.items <- e:
				return nil
			}
		})
		s.result <- err
		close(s.items)
	}()

	return s
}

// stream is the pull facade over the producer goroutine.
// It is intended for a single consumer; Next and Close serialise through a
// mutex so Close from a deferred cleanup path is always safe.
type stream struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	items  chan domain.Entity
	result chan error
	err    error
	done   bool
}

// Next returns the next entity, domain.ErrEndOfStream on completion, or the
// producer's fatal error.
func (s *stream) Next(ctx context.Context) (domain.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil, s.finalErr()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case entity, ok := <-s.items:
		if !ok {
			s.finish()
			return nil, s.finalErr()
		}
		return entity, nil
	}
}

// Close cancels the producer and waits for it to exit. Safe to call on
// every exit path, including after exhaustion.
func (s *stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return nil
	}

	s.cancel()
	// Unblock a pending emit so the producer observes cancellation.
	for range s.items {
	}
	s.finish()
	return nil
}

// finish records the producer's result. Caller must hold the lock and have
// observed the items channel closed (or drained it).
func (s *stream) finish() {
	s.done = true
	s.cancel()
	if err := <-s.result; err != nil && s.err == nil {
		s.err = err
	}
}

func (s *stream) finalErr() error {
	if s.err != nil {
		return s.err
	}
	return domain.ErrEndOfStream
}
