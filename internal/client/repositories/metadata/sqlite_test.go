package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/learnquest/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return db
}

func TestSetGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "session_token", []byte("tok-1")))

	v, err := r.Get(ctx, "session_token")
	require.NoError(t, err)
	assert.Equal(t, []byte("tok-1"), v)
}

func TestGet_AbsentIsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 1)
}

func TestSet_NilValueStoredEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", nil))
	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)
}

func TestEmptyValueIsDistinctFromAbsent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "empty", []byte{}))

	v, err := r.Get(ctx, "empty")
	require.NoError(t, err)
	assert.Equal(t, []byte{}, v)

	v, err = r.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, v)

	m, err := r.List(ctx)
	require.NoError(t, err)
	require.Contains(t, m, "empty")
	assert.NotNil(t, m["empty"])
	assert.Empty(t, m["empty"])
}

func TestDeleteAndClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{1}))
	require.NoError(t, r.Set(ctx, "b", []byte{2}))

	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Delete(ctx, "a"))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"b": {2}}, m)

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestWritesInsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := NewSQLiteRepository(tx)
		if err := r.Set(ctx, "a", []byte("1")); err != nil {
			return err
		}
		return r.Set(ctx, "b", []byte("2"))
	})
	require.NoError(t, err)

	m, err := NewSQLiteRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, `metadata get "k"`)

	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), `metadata set "k"`)
	require.ErrorContains(t, r.Delete(ctx, "k"), `metadata delete "k"`)
	require.ErrorContains(t, r.Clear(ctx), "metadata clear")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "metadata list")
}
