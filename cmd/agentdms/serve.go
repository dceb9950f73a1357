package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/agentdms/admin/email"
	"github.com/agentdms/admin/migrate"
	"github.com/agentdms/admin/seed"
	"github.com/agentdms/admin/server"
	"github.com/agentdms/admin/store"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.GetConfig()
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides http.addr")
	return cmd
}

func serve(ctx context.Context, cfg *server.AppConfig) error {
	log := server.NewLogger(cfg.Log)
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	opts := migrate.Options{Driver: cfg.Database.Driver, DSN: cfg.Database.DSN, Command: "up", Logger: log}
	if cfg.Migrate.OnStart {
		if err := migrate.Run(opts); err != nil {
			return err
		}
	}
	if cfg.Migrate.SeedOnStart {
		if err := seed.Run(opts); err != nil {
			return err
		}
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		return err
	}
	kv, err := store.OpenKV(cfg.KV)
	if err != nil {
		return err
	}
	defer kv.Close()
	mailer, err := email.New(cfg.Email, log)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(cfg, db, kv, mailer, log)
	if err != nil {
		return err
	}
	if cfg.Bootstrap.SuperAdminEmail != "" {
		user, created, err := srv.Users.EnsureSuperAdmin(ctx, cfg.Bootstrap.SuperAdminEmail, cfg.Bootstrap.SuperAdminPassword)
		if err != nil {
			return err
		}
		if created {
			log.WithField("email", user.Email).Info("bootstrap super admin created")
		}
	}

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.NewGinEngine(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTP.Addr).Info("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
