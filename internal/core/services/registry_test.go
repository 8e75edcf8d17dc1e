package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapestry-io/tapestry/internal/core/domain"
)

func TestRegistryListAndGet(t *testing.T) {
	registry := NewConnectorRegistry()

	infos := registry.List()
	require.Len(t, infos, 2)
	assert.Equal(t, "gitlab", infos[0].ID)
	assert.Equal(t, "redmine", infos[1].ID)

	info, err := registry.Get("redmine")
	require.NoError(t, err)
	assert.Equal(t, []domain.AuthMethod{domain.AuthMethodAPIKey}, info.AuthMethods)

	_, err = registry.Get("jira")
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))
}

func TestRegistryValidateConfig(t *testing.T) {
	registry := NewConnectorRegistry()

	t.Run("valid", func(t *testing.T) {
		err := registry.ValidateConfig("redmine", map[string]string{
			"base_url":            "https://redmine.example.com",
			"project_identifiers": "alpha",
		})
		assert.NoError(t, err)
	})

	t.Run("missing required key", func(t *testing.T) {
		err := registry.ValidateConfig("redmine", map[string]string{
			"project_identifiers": "alpha",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("unknown key", func(t *testing.T) {
		err := registry.ValidateConfig("gitlab", map[string]string{
			"instance_url": "gitlab.example.com",
			"basee_url":    "typo",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("unknown connector", func(t *testing.T) {
		err := registry.ValidateConfig("jira", nil)
		assert.True(t, errors.Is(err, domain.ErrUnsupportedType))
	})
}
