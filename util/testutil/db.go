package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/network"
	"github.com/scorve12/disaster-uploads/util/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated, private in-memory sqlite database. The
// database disappears when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := common.OpenDB("sqlite", dsn, logger.Discard())
	require.Nil(t, err)
	sqlDB, err := db.DB()
	require.Nil(t, err)
	// Every connection to a shared in-memory database sees the same
	// data, but sqlite allows only one writer at a time.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.Nil(t, network.Migrate(context.Background(), db))
	return db
}

// NewRegistryClient returns a registry client on a fresh test database.
func NewRegistryClient(t *testing.T) *network.RegistryClient {
	return network.NewRegistryClient(NewTestDB(t), logger.Discard())
}
