package database

import (
	"bytes"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/example/freshmarket/internal/models"
)

func TestBuildDialector(t *testing.T) {
	d, err := buildDialector("sqlite", "file::memory:")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = buildDialector("postgres", "postgres://localhost/freshmarket")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = buildDialector("mysql", "")
	assert.Error(t, err)
}

func TestEnsureDatabaseSkipsKeywordDSN(t *testing.T) {
	assert.NoError(t, ensureDatabase("host=localhost user=postgres dbname=freshmarket"))
	assert.NoError(t, ensureDatabase("postgres://localhost:5432"))
}

func TestGormLoggerIgnoresMissingRecords(t *testing.T) {
	var buf bytes.Buffer
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "kv.db")), &gorm.Config{
		Logger: newGormLogger(log.New(&buf, "", 0)),
	})
	require.NoError(t, err)
	require.NoError(t, migrate(conn))

	var entry models.KVEntry
	err = conn.Where("key_name = ?", "missing").First(&entry).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NotContains(t, buf.String(), "record not found")

	err = conn.Exec("SELECT * FROM no_such_table").Error
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "no_such_table")
}
