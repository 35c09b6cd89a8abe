package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Skotchmaster/biblion/internal/config"
	"github.com/Skotchmaster/biblion/internal/httpserver"
	"github.com/Skotchmaster/biblion/internal/kv"
	"github.com/Skotchmaster/biblion/internal/mykafka"
	"github.com/Skotchmaster/biblion/internal/reader"
	"github.com/Skotchmaster/biblion/internal/service"
	pkgcfg "github.com/Skotchmaster/biblion/pkg/config"
	pkgdb "github.com/Skotchmaster/biblion/pkg/db"
	"github.com/Skotchmaster/biblion/pkg/logging"
	middleware "github.com/Skotchmaster/biblion/pkg/middleware/auth"
	"github.com/Skotchmaster/biblion/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/biblion/pkg/middleware/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg config.Config) error {
	pkgcfg.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	pkgcfg.MustNonEmptyBytes(cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET")

	l := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	ctx, stop := signal.NotifyContext(logging.IntoContext(parent, l), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, err := openRepo(ctx, cfg, l)
	if err != nil {
		l.Error("db_unavailable", "error", err)
		return err
	}
	defer func() {
		if err := pkgdb.Close(r.DB); err != nil {
			l.Error("db_close_failed", "error", err)
		}
	}()

	prod := mykafka.NewProducer(cfg.KafkaBrokers, cfg.ServiceName)
	defer func() {
		if err := prod.Close(); err != nil {
			l.Error("kafka_close_failed", "error", err)
		}
	}()
	l.Info("kafka_configured", "enabled", prod.Enabled())

	authSvc := &service.AuthService{
		Repo:          r,
		Events:        prod,
		JWTSecret:     cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}
	if created, err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		l.Error("admin_seed_failed", "error", err)
	} else if created {
		l.Info("admin_created", "email", cfg.AdminEmail)
	}

	catalogSvc := &service.CatalogService{Repo: r, Events: prod}
	idx, err := openIndex(ctx, cfg)
	switch {
	case err != nil:
		l.Warn("search_backend_disabled", "reason", "elasticsearch unavailable", "error", err)
	case idx != nil:
		if n, err := reindex(ctx, r, idx); err != nil {
			l.Warn("search_backend_disabled", "reason", "initial indexing failed", "error", err)
		} else {
			catalogSvc.Search = idx
			l.Info("search_backend_ready", "index", cfg.ESIndex, "books", n)
		}
	}

	var (
		recent kv.RecentSearches   = kv.NewMemoryRecent()
		idem   kv.IdempotencyStore = kv.NewMemoryIdempotency()
	)
	if cfg.RedisAddr != "" {
		rdb := kv.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			l.Warn("redis_unavailable", "reason", "using in-process stores", "error", err)
		} else {
			recent = &kv.RedisRecent{RDB: rdb}
			idem = &kv.RedisIdempotency{RDB: rdb}
		}
	}

	history := &service.SearchHistoryService{Store: recent}

	deps := &httpserver.Deps{
		Books: &httpserver.BookHTTP{
			Svc:    catalogSvc,
			Reader: &service.ReaderService{Repo: r, Opener: reader.NewOpener(cfg.ReaderSamplesDir, cfg.ReaderFetchTimeout)},
		},
		Auth:     &httpserver.AuthHTTP{Svc: authSvc, SecureCookie: cfg.CookieSecure},
		Cart:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Events: prod}},
		Wishlist: &httpserver.WishlistHTTP{Svc: &service.WishlistService{Repo: r, Events: prod}},
		Checkout: &httpserver.CheckoutHTTP{
			Svc: &service.CheckoutService{
				Repo: r, Events: prod, Idempotency: idem, PaymentDelay: cfg.PaymentDelay,
			},
			Orders: &service.OrderService{Repo: r},
		},
		Session: &httpserver.SessionHTTP{
			Recent: history,
			Import: &service.ImportService{Repo: r, Recent: history, Events: prod},
		},
		AuthMW:     middleware.NewAutoRefreshMiddleware(cfg.JWTAccessSecret, authSvc, cfg.CookieSecure),
		Ready:      r.Ping,
		SamplesDir: cfg.ReaderSamplesDir,
	}
	if cfg.CSRFEnabled {
		csrfCfg := csrf.DefaultConfig()
		csrfCfg.Secure = cfg.CookieSecure
		csrfCfg.SkipPrefixes = []string{
			httpserver.APIPrefix + "/auth/login",
			httpserver.APIPrefix + "/auth/register",
		}
		deps.CSRF = &csrfCfg
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), loggingmw.RequestLogger(l))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: true,
			AllowHeaders: []string{
				echo.HeaderContentType, echo.HeaderAuthorization,
				"X-CSRF-Token", httpserver.HeaderIdempotencyKey,
			},
			ExposeHeaders: []string{httpserver.HeaderReaderFallback},
		}))
	}
	e.Use(echomw.BodyLimit("1M"))
	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.Info("http_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		l.Info("shutting_down")
		shCtx, cancel := context.WithTimeout(context.WithoutCancel(gCtx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil {
		l.Error("server_stopped", "error", err)
		return err
	}
	l.Info("shutdown_complete")
	return nil
}
