package sqlutil

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE entries (key TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	return db
}

func count(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n))
	return n
}

func TestRunCommits(t *testing.T) {
	db := openDB(t)

	err := Run(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO entries (key) VALUES ('a'), ('b')`)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count(t, db))
}

func TestRunRollsBackOnError(t *testing.T) {
	db := openDB(t)
	boom := errors.New("boom")

	err := Run(context.Background(), db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO entries (key) VALUES ('a')`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, count(t, db))
}
