package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, migrationsDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		body, err := fs.ReadFile(migrationsFS, migrationsDir+"/"+entry.Name())
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", entry.Name())
		assert.Contains(t, string(body), "-- +goose Down", entry.Name())
		assert.True(t, strings.HasSuffix(entry.Name(), ".sql"))
	}
}
