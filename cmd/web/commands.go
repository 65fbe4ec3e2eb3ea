package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"olivencia.com.ar/profile-web/internal/config"
	"olivencia.com.ar/profile-web/internal/observability"
)

const shutdownTimeout = 10 * time.Second

type serveFlags struct {
	addr        string
	templates   string
	public      string
	profileFile string
	envFile     string
}

func newRootCommand() *cobra.Command {
	flags := &serveFlags{}
	root := &cobra.Command{
		Use:           "profile-web",
		Short:         "Personal profile site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file with local overrides")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	serve.Flags().StringVar(&flags.addr, "addr", "", "HTTP listen address (default :$PROFILE_WEB_PORT)")
	serve.Flags().StringVar(&flags.templates, "templates", "", "templates directory")
	serve.Flags().StringVar(&flags.public, "public", "", "public assets directory")
	serve.Flags().StringVar(&flags.profileFile, "profile", "", "profile content file")

	root.AddCommand(serve, newEnvCommand(flags))
	return root
}

func newEnvCommand(flags *serveFlags) *cobra.Command {
	env := &cobra.Command{
		Use:   "env",
		Short: "Manage the local environment file",
	}
	env.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a .env file with default settings if none exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := config.EnsureEnvFile(flags.envFile)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", flags.envFile)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", flags.envFile)
			}
			return nil
		},
	})
	return env
}

// apply lets explicit command-line flags win over environment settings and
// returns the listen address.
func (f *serveFlags) apply(cfg *config.Config) string {
	if f.templates != "" {
		cfg.Site.TemplatesDir = f.templates
	}
	if f.public != "" {
		cfg.Site.PublicDir = f.public
	}
	if f.profileFile != "" {
		cfg.Site.ProfileFile = f.profileFile
	}
	if f.addr != "" {
		return f.addr
	}
	return cfg.Addr()
}

func runServe(ctx context.Context, flags *serveFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(config.WithEnvFile(flags.envFile))
	if err != nil {
		return err
	}
	addr := flags.apply(&cfg)

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	app, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           app.routes(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          observability.StdLogger(logger),
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverLogger := logger.Named("http").With(zap.String("addr", addr))
	errCh := make(chan error, 1)
	go func() {
		serverLogger.Info("profile-web listening",
			zap.String("env", cfg.Env),
			zap.Bool("dev_mode", cfg.Site.DevMode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
