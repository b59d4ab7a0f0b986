package main

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/quillside/weblog/internal/config"
)

func TestNewSessionManagerInstallsStore(t *testing.T) {
	db, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	sessions, err := newSessionManager(db, &config.Config{SessionLifetime: time.Hour})
	require.NoError(t, err)
	require.Equal(t, time.Hour, sessions.Lifetime)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM sessions`))
	require.Zero(t, count)
}

func TestNewSessionManagerReportsStoreFailure(t *testing.T) {
	db, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = newSessionManager(db, &config.Config{SessionLifetime: time.Hour})
	require.Error(t, err)
}
