package connectors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapestry-io/tapestry/internal/core/domain"
)

func entity(id string) domain.Entity {
	return &domain.EntityMeta{EntityID: id, Kind: "project", Name: id}
}

func TestStreamYieldsInOrder(t *testing.T) {
	stream := NewStream(context.Background(), func(_ context.Context, emit func(domain.Entity) error) error {
		for _, id := range []string{"a", "b", "c"} {
			if err := emit(entity(id)); err != nil {
				return err
			}
		}
		return nil
	})
	defer stream.Close()

	ctx := context.Background()
	var ids []string
	for {
		e, err := stream.Next(ctx)
		if errors.Is(err, domain.ErrEndOfStream) {
			break
		}
		require.NoError(t, err)
		ids = append(ids, e.Meta().EntityID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	// Exhausted streams keep reporting end of stream.
	_, err := stream.Next(ctx)
	assert.True(t, errors.Is(err, domain.ErrEndOfStream))
}

func TestStreamSurfacesProducerError(t *testing.T) {
	fatal := errors.New("upstream went away")
	stream := NewStream(context.Background(), func(_ context.Context, emit func(domain.Entity) error) error {
		if err := emit(entity("a")); err != nil {
			return err
		}
		return fatal
	})
	defer stream.Close()

	ctx := context.Background()
	e, err := stream.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", e.Meta().EntityID)

	_, err = stream.Next(ctx)
	assert.True(t, errors.Is(err, fatal))

	// The error sticks across calls.
	_, err = stream.Next(ctx)
	assert.True(t, errors.Is(err, fatal))
}

func TestStreamCloseStopsProducer(t *testing.T) {
	stopped := make(chan struct{})
	stream := NewStream(context.Background(), func(ctx context.Context, emit func(domain.Entity) error) error {
		defer close(stopped)
		for {
			if err := emit(entity("e")); err != nil {
				return err
			}
		}
	})

	_, err := stream.Next(context.Background())
	require.NoError(t, err)

	require.NoError(t, stream.Close())

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("producer did not stop after Close")
	}

	// Close is idempotent and Next after Close reports end of stream.
	require.NoError(t, stream.Close())
	_, err = stream.Next(context.Background())
	assert.True(t, errors.Is(err, domain.ErrEndOfStream))
}

func TestStreamNextHonoursContext(t *testing.T) {
	release := make(chan struct{})
	stream := NewStream(context.Background(), func(ctx context.Context, emit func(domain.Entity) error) error {
		<-release
		return emit(entity("late"))
	})
	defer func() {
		close(release)
		stream.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := stream.Next(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
