package db

import (
	"context"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Reset empties the given tables. Postgres also restarts identities.
func Reset(ctx context.Context, db *gorm.DB, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	quoted := make([]string, 0, len(tables))
	for _, t := range tables {
		quoted = append(quoted, pq.QuoteIdentifier(t))
	}

	if db.Dialector.Name() == DriverPostgres {
		stmt := "TRUNCATE TABLE " + strings.Join(quoted, ", ") + " RESTART IDENTITY CASCADE"
		return db.WithContext(ctx).Exec(stmt).Error
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range quoted {
			if err := tx.Exec("DELETE FROM " + t).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
