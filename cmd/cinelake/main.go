// Command cinelake runs the movie catalog API server and, when
// configured, the storage notification listener that imports staged
// batches.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cinelake/cinelake/internal/api"
	"github.com/cinelake/cinelake/internal/config"
	"github.com/cinelake/cinelake/internal/db"
	"github.com/cinelake/cinelake/internal/db/migrations"
	"github.com/cinelake/cinelake/internal/dbpool"
	"github.com/cinelake/cinelake/internal/models"
	"github.com/cinelake/cinelake/internal/service"
	"github.com/cinelake/cinelake/internal/source"
	"github.com/cinelake/cinelake/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	base := store.Base{Pool: pool, Log: log}
	movies := store.NewMovieStore(base)
	genres := store.NewGenreStore(base)
	queries := store.NewQueryStore(base, cfg.QueryRowLimit)

	importer := service.NewImporter(movies, log)

	predictor := service.NewPredictor(log)
	if cfg.ModelManifest != "" {
		if err := predictor.LoadManifest(cfg.ModelManifest); err != nil {
			// The rest of the API serves fine without a model.
			log.WithError(err).Warn("prediction model unavailable")
		}
	}

	strategies := []service.TranslationStrategy{}
	if cfg.GeminiAPIKey.Value() != "" {
		gemini, err := service.NewGeminiStrategy(ctx, cfg.GeminiAPIKey.Value(), cfg.GeminiModel)
		if err != nil {
			return err
		}
		defer gemini.Close() //nolint:errcheck
		strategies = append(strategies, gemini)
	} else {
		log.Info("no Gemini API key, questions use pattern translation only")
	}
	strategies = append(strategies, service.NewPatternStrategy())

	ask := service.NewAskService(service.NewTranslator(log, strategies...), queries)

	deps := &api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Importer:    importer,
		Ask:         ask,
		Predictor:   predictor,
		Movies:      movies,
		Genres:      genres,
		CORSOrigins: cfg.CORSOrigins,
		Version:     config.Version,
	}

	group, ctx := errgroup.WithContext(ctx)

	if cfg.BatchBucket != "" {
		sc, err := storage.NewClient(ctx)
		if err != nil {
			return err
		}
		defer sc.Close() //nolint:errcheck

		reader := source.NewBatchReader(sc, cfg.BatchBucket)
		deps.Batches = reader

		if cfg.BatchSubscription != "" {
			pc, err := pubsub.NewClient(ctx, cfg.GCPProject)
			if err != nil {
				return err
			}
			defer pc.Close() //nolint:errcheck

			listener := source.NewListener(pc, cfg.BatchSubscription, cfg.BatchBucket,
				func(ctx context.Context, object string) error {
					records, err := reader.ReadBatch(ctx, object)
					if err != nil {
						return err
					}

					_, err = importer.Run(ctx, object, records, models.UpsertPolicy(cfg.ImportPolicy))
					return err
				}, log)

			group.Go(func() error { return listener.Listen(ctx) })
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(ctx, deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	group.Go(func() error {
		log.WithField("addr", srv.Addr).Info("server listening")

		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
