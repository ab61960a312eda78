package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrator_ListsMatchHistory(t *testing.T) {
	// sql.Open не подключается: провайдеру достаточно дескриптора.
	sqlDB, err := sql.Open("pgx", "postgres://skirmish@127.0.0.1:1/skirmish")
	require.NoError(t, err)
	defer sqlDB.Close()

	p, err := newMigrator(sqlDB)
	require.NoError(t, err)

	sources := p.ListSources()
	require.Len(t, sources, 1)
	assert.Equal(t, int64(1), sources[0].Version)
	assert.Equal(t, "00001_match_history.sql", filepath.Base(sources[0].Path))
}
