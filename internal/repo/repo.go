package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/biblion/internal/models"
	pkgdb "github.com/Skotchmaster/biblion/pkg/db"
)

var ErrDuplicate = errors.New("duplicate record")

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedBooks inserts catalog entries that are not present yet and returns how many were added.
func (r *GormRepo) SeedBooks(ctx context.Context, books []models.Book) (int64, error) {
	if len(books) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&books)
	return res.RowsAffected, res.Error
}

// Reset empties every table, children first.
func (r *GormRepo) Reset(ctx context.Context) error {
	all := models.All()
	tables := make([]string, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		stmt := &gorm.Statement{DB: r.DB}
		if err := stmt.Parse(all[i]); err != nil {
			return fmt.Errorf("parse model: %w", err)
		}
		tables = append(tables, stmt.Schema.Table)
	}
	return pkgdb.Reset(ctx, r.DB, tables...)
}

func (r *GormRepo) Ping(ctx context.Context) error {
	return pkgdb.Ping(ctx, r.DB)
}

func translate(err error) error {
	if pkgdb.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
