package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue_backoffice/internal/config"
	"venue_backoffice/internal/domain/entities"
)

func TestOpenMemory(t *testing.T) {
	cfg := config.Default()
	b, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.StorageMemory, b.Driver)
	_, err = b.Leases.Create(context.Background(), entities.Lease{ID: "l-1", Status: entities.LeaseStatusRequest})
	require.NoError(t, err)
	got, err := b.Leases.Get(context.Background(), "l-1")
	require.NoError(t, err)
	assert.Equal(t, entities.LeaseStatusRequest, got.Status)
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "cassandra"
	_, err := Open(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalidStorage)
}

func TestPrefixedTables(t *testing.T) {
	tables := PrefixedTables("staging_")
	assert.Equal(t, "staging_leases", tables.Leases)
	assert.Equal(t, "staging_audit_log", tables.Audit)
	assert.Equal(t, "staging_utility_metrics", tables.Metrics)
}
