package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetAuthorizedAccountsProxy проверяет, что неактивный или отсутствующий прокси не подставляется.
func TestGetAuthorizedAccountsProxy(t *testing.T) {
	db, mock := setupMockDB(t)
	cols := []string{"id", "phone", "api_id", "api_hash", "is_authorized", "proxy_id",
		"id", "ip", "port", "login", "password", "is_active"}
	rows := sqlmock.NewRows(cols).
		AddRow(1, "+100", 11, "h1", true, 5, 5, "10.0.0.1", 1080, "u", "p", true).
		AddRow(2, "+200", 22, "h2", true, 6, 6, "10.0.0.2", 1080, "", "", false).
		AddRow(3, "+300", 33, "h3", true, nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(`FROM accounts a LEFT JOIN proxy p`).WillReturnRows(rows)

	accounts, err := db.GetAuthorizedAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	require.NotNil(t, accounts[0].Proxy)
	assert.Equal(t, "10.0.0.1", accounts[0].Proxy.IP)
	assert.Equal(t, 1080, accounts[0].Proxy.Port)
	assert.Nil(t, accounts[1].Proxy)
	require.NotNil(t, accounts[1].ProxyID)
	assert.Equal(t, 6, *accounts[1].ProxyID)
	assert.Nil(t, accounts[2].Proxy)
	assert.Nil(t, accounts[2].ProxyID)
}
