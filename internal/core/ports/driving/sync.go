package driving

import (
	"context"
	"io"

	"github.com/tapestry-io/tapestry/internal/core/domain"
)

// SyncRunner drives one connector run and hands the entity stream to a
// consumer. In the full platform the consumer is the sync pipeline; here it
// is an io.Writer receiving one JSON document per entity.
type SyncRunner interface {
	// Run validates the source, generates its entities, writes them to out
	// as JSON lines, and records a run in the ledger. It returns the run
	// record; a fatal mid-stream error is recorded and returned.
	Run(ctx context.Context, sourceID string, out io.Writer) (*domain.SyncRun, error)

	// History returns a source's recorded runs, newest first.
	History(ctx context.Context, sourceID string) ([]domain.SyncRun, error)
}
