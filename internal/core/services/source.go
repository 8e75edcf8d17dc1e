package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driven"
	"github.com/tapestry-io/tapestry/internal/core/ports/driving"
	"github.com/tapestry-io/tapestry/internal/logger"
)

// Ensure SourceService implements the interface.
var _ driving.SourceManager = (*SourceService)(nil)

// SourceService handles source lifecycle operations.
type SourceService struct {
	sources  driven.SourceStore
	registry driving.ConnectorRegistry
	factory  Connectors
	tokens   TokenProviders
}

// NewSourceService creates a source manager over the given stores.
func NewSourceService(
	sources driven.SourceStore,
	registry driving.ConnectorRegistry,
	factory Connectors,
	tokens TokenProviders,
) *SourceService {
	return &SourceService{
		sources:  sources,
		registry: registry,
		factory:  factory,
		tokens:   tokens,
	}
}

// Add creates a new source. The connector type and config are validated
// against the registry; the credential is stored separately from the
// source definition.
func (s *SourceService) Add(ctx context.Context, req driving.AddSourceRequest) (*domain.Source, error) {
	info, err := s.registry.Get(req.Type)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, fmt.Errorf("source name is required: %w", domain.ErrInvalidInput)
	}

	if err := s.registry.ValidateConfig(req.Type, req.Config); err != nil {
		return nil, err
	}

	method := req.AuthMethod
	if method == "" {
		method = info.AuthMethods[0]
	}
	if !supportsMethod(info, method) {
		return nil, fmt.Errorf("%s does not support auth method %q: %w",
			req.Type, method, domain.ErrInvalidInput)
	}

	source := domain.Source{
		ID:         uuid.NewString(),
		Type:       req.Type,
		Name:       req.Name,
		Config:     req.Config,
		AuthMethod: method,
		CreatedAt:  time.Now().UTC(),
	}

	// Construction catches config errors (bad URL etc.) before anything
	// is persisted.
	connector, err := s.factory.Create(&source)
	if err != nil {
		return nil, err
	}
	connector.Close()

	if err := s.sources.Save(ctx, source); err != nil {
		return nil, fmt.Errorf("save source: %w", err)
	}

	if req.Credential != "" {
		if err := s.tokens.SaveToken(source.ID, req.Credential); err != nil {
			return nil, fmt.Errorf("store credential: %w", err)
		}
	}

	logger.Info("Added %s source %s (%s)", source.Type, source.Name, source.ID)
	return &source, nil
}

func supportsMethod(info *driving.ConnectorTypeInfo, method domain.AuthMethod) bool {
	for _, m := range info.AuthMethods {
		if m == method {
			return true
		}
	}
	return false
}

// List returns all configured sources.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	return s.sources.List(ctx)
}

// Remove deletes a source and its stored credentials.
func (s *SourceService) Remove(ctx context.Context, id string) error {
	if err := s.sources.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.tokens.DeleteCredentials(id); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	logger.Info("Removed source %s", id)
	return nil
}

// Validate checks whether the source's credentials are usable by asking
// the connector for a whoami round trip.
func (s *SourceService) Validate(ctx context.Context, id string) (bool, error) {
	source, err := s.sources.Get(ctx, id)
	if err != nil {
		return false, err
	}

	connector, err := s.factory.Create(source)
	if err != nil {
		return false, err
	}
	defer connector.Close()

	return connector.Validate(ctx), nil
}
