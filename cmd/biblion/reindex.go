package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/biblion/internal/config"
	pkgdb "github.com/Skotchmaster/biblion/pkg/db"
	"github.com/Skotchmaster/biblion/pkg/logging"
)

func newReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Push every book into the Elasticsearch index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			l := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "cmd", "reindex")
			ctx := logging.IntoContext(cmd.Context(), l)

			if cfg.ESURL == "" {
				return errors.New("ES_URL is not set")
			}
			r, err := openRepo(ctx, cfg, l)
			if err != nil {
				return err
			}
			defer pkgdb.Close(r.DB)

			idx, err := openIndex(ctx, cfg)
			if err != nil {
				l.Error("reindex_failed", "reason", "index unavailable", "error", err)
				return err
			}
			n, err := reindex(ctx, r, idx)
			if err != nil {
				l.Error("reindex_failed", "error", err)
				return err
			}
			l.Info("reindex_done", "index", cfg.ESIndex, "books", n)
			return nil
		},
	}
}
