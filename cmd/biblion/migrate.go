package main

import (
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/biblion/internal/config"
	"github.com/Skotchmaster/biblion/internal/service"
	pkgdb "github.com/Skotchmaster/biblion/pkg/db"
	"github.com/Skotchmaster/biblion/pkg/logging"
)

func newMigrateCmd() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema, seed the catalog and ensure the admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			l := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "cmd", "migrate")
			ctx := logging.IntoContext(cmd.Context(), l)

			r, err := openRepo(ctx, cfg, l)
			if err != nil {
				l.Error("migrate_failed", "error", err)
				return err
			}
			defer pkgdb.Close(r.DB)

			if reset {
				if err := r.Reset(ctx); err != nil {
					l.Error("reset_failed", "error", err)
					return err
				}
				l.Warn("database_reset")
				if err := seedCatalog(ctx, r, l); err != nil {
					l.Error("migrate_failed", "error", err)
					return err
				}
			}

			auth := &service.AuthService{Repo: r}
			created, err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
			if err != nil {
				l.Error("admin_seed_failed", "error", err)
				return err
			}
			l.Info("migrate_done", "admin_created", created, "reset", reset)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "empty every table before seeding")
	return cmd
}
