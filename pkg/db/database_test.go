package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	assert.Equal(t, "sqlite", Dialector("sqlite:file.db").Name())
	assert.Equal(t, "postgres", Dialector("postgres://u:p@localhost:5432/shop").Name())
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.db")

	gdb, err := Open(context.Background(), "sqlite:"+path)
	require.NoError(t, err)
	require.NoError(t, gdb.Exec("CREATE TABLE probe (id INTEGER)").Error)
	require.NoError(t, Close(gdb))
}
