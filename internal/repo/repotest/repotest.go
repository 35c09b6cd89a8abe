// Package repotest opens a migrated and seeded in-memory repository for tests.
package repotest

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/biblion/internal/catalog"
	"github.com/Skotchmaster/biblion/internal/repo"
)

func New(t testing.TB) *repo.GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err, "failed to connect to in-memory db")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate(context.Background()))
	_, err = r.SeedBooks(context.Background(), catalog.Seed())
	require.NoError(t, err)
	return r
}
