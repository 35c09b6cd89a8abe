package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Skotchmaster/biblion/internal/catalog"
	"github.com/Skotchmaster/biblion/internal/config"
	"github.com/Skotchmaster/biblion/internal/es"
	"github.com/Skotchmaster/biblion/internal/repo"
	pkgcfg "github.com/Skotchmaster/biblion/pkg/config"
	pkgdb "github.com/Skotchmaster/biblion/pkg/db"
)

// openRepo connects to the database, migrates the schema and seeds the
// catalog when it is empty.
func openRepo(ctx context.Context, cfg config.Config, l *slog.Logger) (*repo.GormRepo, error) {
	pkgcfg.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	r := &repo.GormRepo{DB: db}

	if err := r.Migrate(ctx); err != nil {
		_ = pkgdb.Close(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := seedCatalog(ctx, r, l); err != nil {
		_ = pkgdb.Close(db)
		return nil, err
	}
	return r, nil
}

func seedCatalog(ctx context.Context, r *repo.GormRepo, l *slog.Logger) error {
	n, err := r.SeedBooks(ctx, catalog.Seed())
	if err != nil {
		return fmt.Errorf("seed books: %w", err)
	}
	if n > 0 {
		l.Info("catalog_seeded", "books", n)
	}
	return nil
}

// openIndex returns nil when search is not configured.
func openIndex(ctx context.Context, cfg config.Config) (*es.BookIndex, error) {
	if cfg.ESURL == "" {
		return nil, nil
	}
	client, err := es.NewClient(es.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
	if err != nil {
		return nil, err
	}
	idx := &es.BookIndex{Client: client, Index: cfg.ESIndex}
	if err := idx.EnsureIndex(ctx); err != nil {
		return nil, err
	}
	return idx, nil
}

func reindex(ctx context.Context, r *repo.GormRepo, idx *es.BookIndex) (int, error) {
	books, err := r.ListBooks(ctx)
	if err != nil {
		return 0, err
	}
	if err := idx.IndexBooks(ctx, books); err != nil {
		return 0, err
	}
	return len(books), nil
}
