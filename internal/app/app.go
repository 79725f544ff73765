package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"

	postgres "github.com/heartmarshall/miskai-core/internal/adapter/postgres"
	"github.com/heartmarshall/miskai-core/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/miskai-core/internal/config"
	"github.com/heartmarshall/miskai-core/internal/transport/rest"
	"github.com/heartmarshall/miskai-core/internal/watcher"
)

// Serve is the server entry point. It builds the engine, preloads stored
// dictionaries, loads and watches the dictionary directory and serves HTTP
// until ctx is cancelled.
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	boundary, err := NewBoundary(cfg.Engine, logger)
	if err != nil {
		return err
	}
	defer boundary.Shutdown()

	var repo *lexicon.Repo
	if cfg.Database.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()

		if cfg.Database.Migrate {
			if err := postgres.Migrate(ctx, pool, logger); err != nil {
				return fmt.Errorf("database: %w", err)
			}
		}
		repo = lexicon.New(pool)

		if err := Preload(ctx, repo, boundary.Engine(), cfg.Dictionaries.Preload, logger); err != nil {
			return err
		}
	}

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		wg.Wait()
	}()

	if cfg.Dictionaries.Dir != "" {
		w := watcher.New(cfg.Dictionaries.Dir, boundary,
			watcher.WithLogger(logger),
			watcher.WithDebounce(cfg.Dictionaries.Debounce),
			watcher.WithMaxSize(int64(cfg.Dictionaries.MaxSizeMB)<<20),
		)
		n, err := w.LoadAll(ctx)
		if err != nil {
			return err
		}
		logger.Info("dictionary directory loaded", slog.String("dir", cfg.Dictionaries.Dir), slog.Int("dictionaries", n))

		if cfg.Dictionaries.Watch {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := w.Watch(ctx); err != nil {
					logger.Error("dictionary watcher stopped", slog.String("error", err.Error()))
				}
			}()
		}
	}

	// repo is passed only when set, so the handlers never hold a typed nil.
	var (
		health  *rest.HealthHandler
		handler *rest.Handler
	)
	if repo != nil {
		health = rest.NewHealthHandler(boundary, repo, BuildVersion())
		handler = rest.NewHandler(boundary, rest.WithLexicon(repo))
	} else {
		health = rest.NewHealthHandler(boundary, nil, BuildVersion())
		handler = rest.NewHandler(boundary)
	}
	router := rest.NewRouter(handler, health, logger, int64(cfg.Server.MaxBodyMB)<<20)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
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

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
