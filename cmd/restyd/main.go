// Command restyd runs the restaurant concierge chat API. Configuration
// comes from config.yaml and RESTY_* environment variables; see the
// config package for the full surface.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	resty "github.com/restyhq/resty"
	"github.com/restyhq/resty/config"
	"github.com/restyhq/resty/logging"
	"github.com/restyhq/resty/model"
	"github.com/restyhq/resty/model/anthropic"
	"github.com/restyhq/resty/model/openai"
	"github.com/restyhq/resty/server"
	sessionredis "github.com/restyhq/resty/session/redis"
	"github.com/restyhq/resty/sheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger(nil).Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
	})

	backend, err := newModel(cfg)
	if err != nil {
		logger.Error("model setup failed", "error", err)
		os.Exit(1)
	}

	var source sheet.Source = sheet.NewGoogleSheets(cfg.Sheets.APIKey, cfg.Sheets.SpreadsheetID,
		func(o *sheet.GoogleSheetsOptions) {
			if cfg.Sheets.Range != "" {
				o.Range = cfg.Sheets.Range
			}
			o.Logger = logger
		})

	conciergeOpts := []func(o *resty.Options){func(o *resty.Options) {
		o.Logger = logger
	}}

	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Error("redis unreachable", "address", cfg.Redis.Address, "error", err)
			os.Exit(1)
		}

		source = sheet.NewCache(source, client, func(o *sheet.CacheOptions) {
			o.TTL = cfg.Redis.TableCacheTTL
			o.Logger = logger
		})
		conciergeOpts = append(conciergeOpts, func(o *resty.Options) {
			o.SessionStore = sessionredis.NewStore(client, func(so *sessionredis.Options) {
				so.TTL = cfg.Redis.SessionTTL
			})
		})
		logger.Info("redis wiring enabled", "address", cfg.Redis.Address)
	}

	concierge := resty.New(backend, source, conciergeOpts...)

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: server.New(concierge, func(o *server.Options) {
			o.AllowedOrigins = cfg.HTTP.AllowedOrigins
			o.Logger = logger
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTP.Addr, "provider", cfg.Model.Provider)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown incomplete", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("stopped")
}

func newModel(cfg *config.Config) (model.Model, error) {
	switch cfg.Model.Provider {
	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Model.AnthropicModel != "" {
				o.Model = cfg.Model.AnthropicModel
			}
		}), nil
	default:
		return openai.NewModel(func(o *openai.Options) {
			if cfg.Model.OpenAIModel != "" {
				o.Model = cfg.Model.OpenAIModel
			}
		}), nil
	}
}
