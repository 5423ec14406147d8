// cmd/mealmate/serve.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mealmate/internal/app"
	"mealmate/internal/config"
	"mealmate/internal/genai"
	"mealmate/internal/location"
	"mealmate/internal/logging"
	"mealmate/internal/server"
	"mealmate/internal/speech"
	"mealmate/internal/storage"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MealMate tool server",
		RunE: func(cmd *cobra.Command, args []string) error {
			envFiles := []string{}
			if opts.envFile != "" {
				envFiles = append(envFiles, opts.envFile)
			}
			cfg, err := config.Load(config.Options{
				ConfigFile: opts.configFile,
				EnvFiles:   envFiles,
				Flags:      cmd.Flags(),
			})
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("transport", "http", "Transport mode: http")
	flags.String("host", "0.0.0.0", "Host address")
	flags.Int("port", 8011, "Port for HTTP transport")
	flags.String("db-path", "mealmate.db", "Database path")
	flags.String("model", "gemini-2.5-flash", "Gemini model")
	flags.String("speech", "", "Speech command, e.g. \"espeak -s 150\"")
	flags.String("export-dir", ".", "Directory for exported grocery lists")
	return cmd
}

func serve(parent context.Context, cfg *config.Config) error {
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)

	stor, err := storage.NewSQLiteStorage(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	if cfg.Gemini.APIKey == "" {
		logger.Warn("no gemini api key configured; AI operations will fail")
	}
	client := genai.NewGeminiClient(genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		BaseURL: cfg.Gemini.BaseURL,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
	})
	planner := genai.NewPlanner(client,
		genai.WithMetrics(genai.DefaultMetrics()),
		genai.WithLogger(logger),
		genai.WithStoreCache(cfg.Stores.CacheSize, cfg.Stores.CacheTTL),
	)

	controller := app.NewController(app.Deps{
		AI:      planner,
		Store:   storage.NewPersistence(stor, logger),
		Locator: newLocator(cfg.Location),
		Speaker: newSpeaker(cfg.Speech, logger),
		Logger:  logger,
	})

	srv, err := server.NewMealMateServer(&server.Config{
		Host:      cfg.Server.Host,
		Port:      cfg.Server.Port,
		ExportDir: cfg.Export.Dir,
	}, controller, server.WithLogger(logger), server.WithCloser(stor.Close))
	if err != nil {
		stor.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			logger.Info("received shutdown signal")
		}
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during shutdown", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		return err
	}
	return nil
}

func newLocator(cfg config.LocationConfig) location.Locator {
	if !cfg.Enabled {
		return location.Unavailable{}
	}
	return location.StaticLocator{Position: location.Coordinates{
		Latitude:  cfg.Latitude,
		Longitude: cfg.Longitude,
	}}
}

func newSpeaker(cfg config.SpeechConfig, logger *slog.Logger) speech.Speaker {
	if cfg.Command == "" {
		return speech.Unsupported{}
	}
	speaker, err := speech.NewCommandSpeaker(cfg.Command, logger)
	if err != nil {
		logger.Warn("speech disabled", "command", cfg.Command, "error", err)
		return speech.Unsupported{}
	}
	return speaker
}
