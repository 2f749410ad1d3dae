package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joestump/cuecard/internal/build"
	"github.com/joestump/cuecard/internal/coach"
	"github.com/joestump/cuecard/internal/config"
	"github.com/joestump/cuecard/internal/db"
	"github.com/joestump/cuecard/internal/export"
	"github.com/joestump/cuecard/internal/handler"
	"github.com/joestump/cuecard/internal/logger"
	"github.com/joestump/cuecard/internal/metrics"
	"github.com/joestump/cuecard/internal/session"
	"github.com/joestump/cuecard/internal/store"
)

const eventBuffer = 256

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Log.Mode)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			sessionManager := session.NewManager(database, cfg.DB.Driver, cfg.SessionLifetime, !cfg.InsecureCookies)

			capturer, err := export.NewPNGCapturer(cfg.Export.Font)
			if err != nil {
				return err
			}
			if cfg.Export.Font == "" {
				log.Warn("CUECARD_EXPORT_FONT is not set; exported images cannot show Hangul")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			eventCh := make(chan store.GenerationEvent, eventBuffer)
			eventStore := store.NewEventStore(database)
			writerDone := make(chan struct{})
			go func() {
				defer close(writerDone)
				runEventWriter(ctx, eventCh, eventStore, log)
			}()

			svc, err := coach.New(cfg.LLM, log, coach.WithEvents(eventCh))
			if err != nil {
				return err
			}
			if !svc.Configured() {
				log.Warn("no model API key configured; visitors must enter their own",
					zap.String("provider", cfg.LLM.Provider))
			}

			router := handler.NewRouter(handler.Deps{
				Sessions: session.NewStore(sessionManager),
				Coach:    svc,
				Capturer: capturer,
				Events:   eventStore,
				Log:      log,
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening",
					zap.String("addr", cfg.HTTP.Addr),
					zap.String("version", build.Version),
					zap.String("llm_provider", cfg.LLM.Provider),
				)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
				log.Info("shutting down")
				// Generations can take as long as the model timeout.
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout+5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.Error("server shutdown", zap.Error(err))
				}
			}

			stop()
			<-writerDone
			return nil
		},
	}
}

// runEventWriter reads generation events from the channel and persists them.
// On context cancellation it drains remaining events before returning.
func runEventWriter(ctx context.Context, ch <-chan store.GenerationEvent, es *store.EventStore, log *zap.Logger) {
	record := func(ctx context.Context, e store.GenerationEvent) {
		if err := es.Record(ctx, e); err != nil {
			metrics.EventsRecordErrorsTotal.Inc()
			log.Error("event write error", zap.Error(err), zap.String("outcome", e.Outcome))
			return
		}
		metrics.EventsRecordedTotal.Inc()
	}

	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return
			}
			record(ctx, e)
		case <-ctx.Done():
			for {
				select {
				case e, ok := <-ch:
					if !ok {
						return
					}
					record(context.Background(), e)
				default:
					return
				}
			}
		}
	}
}
