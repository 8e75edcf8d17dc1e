package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
	"github.com/tapestry-io/tapestry/internal/core/ports/driving"
	"github.com/tapestry-io/tapestry/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.SyncRunner = (*SyncService)(nil)

// SyncService drives one connector run end to end: validate, stream,
// write entities as JSON lines, record the run in the ledger.
type SyncService struct {
	sources driven.SourceStore
	runs    driven.SyncRunStore
	factory Connectors
}

// NewSyncService creates a sync runner over the given stores.
func NewSyncService(
	sources driven.SourceStore,
	runs driven.SyncRunStore,
	factory Connectors,
) *SyncService {
	return &SyncService{
		sources: sources,
		runs:    runs,
		factory: factory,
	}
}

// Run executes one sync for a source. Every entity the stream yields is
// written to out as one JSON document per line. The run is recorded in
// the ledger whether it completes or fails; a fatal stream error is both
// recorded and returned.
func (s *SyncService) Run(ctx context.Context, sourceID string, out io.Writer) (*domain.SyncRun, error) {
	source, err := s.sources.Get(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}

	connector, err := s.factory.Create(source)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close()

	if connector.Capabilities().SupportsValidation {
		if !connector.Validate(ctx) {
			return nil, fmt.Errorf("source %s (%s): %w", source.Name, source.Type, domain.ErrConnectorValidation)
		}
	}

	run := &domain.SyncRun{
		ID:           uuid.NewString(),
		SourceID:     sourceID,
		StartedAt:    time.Now().UTC(),
		EntityCounts: make(map[string]int),
	}

	logger.Info("Starting sync for source %s (%s)", source.Name, source.Type)

	streamErr := s.consume(ctx, connector, run, out)

	run.FinishedAt = time.Now().UTC()
	if streamErr != nil {
		run.Error = streamErr.Error()
	}

	if err := s.runs.Record(ctx, *run); err != nil {
		logger.Error("Failed to record sync run %s: %v", run.ID, err)
		if streamErr == nil {
			return run, fmt.Errorf("record sync run: %w", err)
		}
	}

	if streamErr != nil {
		return run, streamErr
	}

	logger.Info("Sync complete for %s: %d entities", source.Name, run.Total())
	return run, nil
}

// consume drains the entity stream into out, counting per kind.
func (s *SyncService) consume(ctx context.Context, connector driven.Connector, run *domain.SyncRun, out io.Writer) error {
	stream := connector.GenerateEntities(ctx)
	defer stream.Close()

	encoder := json.NewEncoder(out)
	for {
		entity, err := stream.Next(ctx)
		if errors.Is(err, domain.ErrEndOfStream) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := encoder.Encode(entity); err != nil {
			return fmt.Errorf("write entity %s: %w", entity.Meta().EntityID, err)
		}
		run.EntityCounts[entity.Meta().Kind]++
	}
}

// History returns a source's recorded runs, newest first.
func (s *SyncService) History(ctx context.Context, sourceID string) ([]domain.SyncRun, error) {
	return s.runs.ListBySource(ctx, sourceID)
}
