package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapestry-io/tapestry/internal/core/domain"
	"github.com/tapestry-io/tapestry/internal/core/ports/driving"
)

// mockSourceManager implements driving.SourceManager for testing.
type mockSourceManager struct {
	sources  []domain.Source
	lastAdd  driving.AddSourceRequest
	removed  []string
	valid    bool
	validErr error
}

func (m *mockSourceManager) Add(_ context.Context, req driving.AddSourceRequest) (*domain.Source, error) {
	m.lastAdd = req
	return &domain.Source{ID: "src-new", Type: req.Type, Name: req.Name}, nil
}

func (m *mockSourceManager) List(_ context.Context) ([]domain.Source, error) {
	return m.sources, nil
}

func (m *mockSourceManager) Remove(_ context.Context, id string) error {
	m.removed = append(m.removed, id)
	return nil
}

func (m *mockSourceManager) Validate(_ context.Context, _ string) (bool, error) {
	return m.valid, m.validErr
}

// mockRegistry implements driving.ConnectorRegistry for testing.
type mockRegistry struct {
	infos []driving.ConnectorTypeInfo
}

func (m *mockRegistry) List() []driving.ConnectorTypeInfo { return m.infos }

func (m *mockRegistry) Get(id string) (*driving.ConnectorTypeInfo, error) {
	for i := range m.infos {
		if m.infos[i].ID == id {
			return &m.infos[i], nil
		}
	}
	return nil, domain.ErrUnsupportedType
}

func (m *mockRegistry) ValidateConfig(_ string, _ map[string]string) error { return nil }

func setupSourceTest(manager *mockSourceManager) func() {
	oldService := sourceService
	sourceService = manager
	return func() {
		sourceService = oldService
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSourceCmd_HasSubcommands(t *testing.T) {
	commands := sourceCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "add")
	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "remove")
	assert.Contains(t, commandNames, "validate")
}

func TestSourceAddCmd_Executes(t *testing.T) {
	manager := &mockSourceManager{}
	cleanup := setupSourceTest(manager)
	defer cleanup()

	out, err := execute(t,
		"source", "add", "redmine",
		"--name", "Tracker",
		"--token", "abc123",
		"-c", "base_url=https://redmine.example.com",
		"-c", "project_identifiers=alpha,beta",
	)
	defer func() { sourceAddConfig = nil }()

	require.NoError(t, err)
	assert.Contains(t, out, "Added source: Tracker (src-new)")
	assert.Equal(t, "redmine", manager.lastAdd.Type)
	assert.Equal(t, "abc123", manager.lastAdd.Credential)
	assert.Equal(t, map[string]string{
		"base_url":            "https://redmine.example.com",
		"project_identifiers": "alpha,beta",
	}, manager.lastAdd.Config)
}

func TestSourceAddCmd_RejectsMalformedConfig(t *testing.T) {
	cleanup := setupSourceTest(&mockSourceManager{})
	defer cleanup()

	_, err := execute(t, "source", "add", "redmine", "-c", "base_url")
	defer func() { sourceAddConfig = nil }()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected key=value")
}

func TestSourceAddCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupSourceTest(nil)
	sourceService = nil
	defer cleanup()

	_, err := execute(t, "source", "add", "redmine")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSourceListCmd_Executes(t *testing.T) {
	cleanup := setupSourceTest(&mockSourceManager{sources: []domain.Source{
		{ID: "src-1", Type: "redmine", Name: "Tracker", AuthMethod: domain.AuthMethodAPIKey, CreatedAt: time.Now()},
	}})
	defer cleanup()

	out, err := execute(t, "source", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Configured sources:")
	assert.Contains(t, out, "src-1")
	assert.Contains(t, out, "Name: Tracker")
}

func TestSourceListCmd_EmptyList(t *testing.T) {
	cleanup := setupSourceTest(&mockSourceManager{})
	defer cleanup()

	out, err := execute(t, "source", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No configured sources")
}

func TestSourceRemoveCmd_Executes(t *testing.T) {
	manager := &mockSourceManager{}
	cleanup := setupSourceTest(manager)
	defer cleanup()

	out, err := execute(t, "source", "remove", "src-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Removed source: src-1")
	assert.Equal(t, []string{"src-1"}, manager.removed)
}

func TestSourceValidateCmd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cleanup := setupSourceTest(&mockSourceManager{valid: true})
		defer cleanup()

		out, err := execute(t, "source", "validate", "src-1")
		require.NoError(t, err)
		assert.Contains(t, out, "credentials are valid")
	})

	t.Run("rejected", func(t *testing.T) {
		cleanup := setupSourceTest(&mockSourceManager{valid: false})
		defer cleanup()

		_, err := execute(t, "source", "validate", "src-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rejected")
	})

	t.Run("lookup failure", func(t *testing.T) {
		cleanup := setupSourceTest(&mockSourceManager{validErr: errors.New("no such source")})
		defer cleanup()

		_, err := execute(t, "source", "validate", "src-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no such source")
	})
}

func TestConnectorListCmd_Executes(t *testing.T) {
	oldRegistry := connectorRegistry
	connectorRegistry = &mockRegistry{infos: []driving.ConnectorTypeInfo{
		{
			ID: "redmine", Name: "Redmine", Description: "Redmine project tracker",
			AuthMethods: []domain.AuthMethod{domain.AuthMethodAPIKey},
			ConfigKeys: []driving.ConfigKey{
				{Key: "base_url", Description: "Instance URL", Required: true},
			},
		},
	}}
	defer func() {
		connectorRegistry = oldRegistry
	}()

	out, err := execute(t, "connector", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Available connectors:")
	assert.Contains(t, out, "redmine - Redmine")
	assert.Contains(t, out, "-c base_url=... (required)")
}

func TestConnectorListCmd_NotConfigured(t *testing.T) {
	oldRegistry := connectorRegistry
	connectorRegistry = nil
	defer func() {
		connectorRegistry = oldRegistry
	}()

	_, err := execute(t, "connector", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connector registry not configured")
}
