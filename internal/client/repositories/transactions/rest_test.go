package transactions

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/learnquest/internal/client/backend/backendtest"
	"github.com/dmitrijs2005/learnquest/internal/client/models"
	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByUser(t *testing.T) {
	db := backendtest.NewTables()
	db.Results["coin_transactions"] = []map[string]any{
		{"id": "t-2", "user_id": "u-1", "type": "spend", "amount": -20, "description": "hint", "reference_id": "lesson-3", "created_at": "2026-02-02T10:00:00Z"},
		{"id": "t-1", "user_id": "u-1", "type": "purchase", "amount": 100, "description": "100 coins", "created_at": "2026-02-01T10:00:00Z"},
	}

	got, err := NewRESTRepository(db).ListByUser(context.Background(), "u-1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.TransactionSpend, got[0].Type)
	require.NotNil(t, got[0].ReferenceID)
	assert.Equal(t, "lesson-3", *got[0].ReferenceID)
	assert.Nil(t, got[1].ReferenceID)

	q := db.CallsTo("select", "coin_transactions")[0].Query
	assert.Equal(t, "eq.u-1", q.Get("user_id"))
	assert.Equal(t, "created_at.desc", q.Get("order"))
	assert.Equal(t, "10", q.Get("limit"))
}

func TestListByUser_Error(t *testing.T) {
	db := backendtest.NewTables()
	db.Errs["select coin_transactions"] = common.ErrUnavailable

	got, err := NewRESTRepository(db).ListByUser(context.Background(), "u-1", 10)
	require.ErrorIs(t, err, common.ErrUnavailable)
	assert.Nil(t, got)
}

func TestDeleteByUser(t *testing.T) {
	db := backendtest.NewTables()
	require.NoError(t, NewRESTRepository(db).DeleteByUser(context.Background(), "u-1"))
	assert.Equal(t, "eq.u-1", db.CallsTo("delete", "coin_transactions")[0].Query.Get("user_id"))
}
