package wallets

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/learnquest/internal/client/backend/backendtest"
	"github.com/dmitrijs2005/learnquest/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByUserID(t *testing.T) {
	db := backendtest.NewTables()
	db.Results["user_wallets"] = []map[string]any{{"user_id": "u-1", "total_coins": 600, "spent_coins": 100}}

	w, err := NewRESTRepository(db).GetByUserID(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, int64(500), w.AvailableCoins())
	assert.Equal(t, "eq.u-1", db.CallsTo("select", "user_wallets")[0].Query.Get("user_id"))
}

func TestGetByUserID_NoWallet(t *testing.T) {
	w, err := NewRESTRepository(backendtest.NewTables()).GetByUserID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestGetByUserID_Error(t *testing.T) {
	db := backendtest.NewTables()
	db.Errs["select user_wallets"] = common.ErrUnavailable

	w, err := NewRESTRepository(db).GetByUserID(context.Background(), "u-1")
	require.ErrorIs(t, err, common.ErrUnavailable)
	assert.Nil(t, w)
}

func TestDeleteByUser(t *testing.T) {
	db := backendtest.NewTables()
	require.NoError(t, NewRESTRepository(db).DeleteByUser(context.Background(), "u-1"))
	assert.Len(t, db.CallsTo("delete", "user_wallets"), 1)
}
