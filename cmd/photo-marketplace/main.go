package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"photoMarketplace/internal/config"
	"photoMarketplace/internal/http-server/handlers/gallery/listGallery"
	"photoMarketplace/internal/http-server/handlers/photo/getPhoto"
	"photoMarketplace/internal/http-server/handlers/photo/reprocessPhoto"
	"photoMarketplace/internal/http-server/handlers/photo/uploadPhoto"
	"photoMarketplace/internal/http-server/middleware/mwlogger"
	"photoMarketplace/internal/kafka/consumer"
	"photoMarketplace/internal/kafka/producer"
	"photoMarketplace/internal/lib/logger/handlers/slogpretty"
	"photoMarketplace/internal/lib/logger/sl"
	"photoMarketplace/internal/processor"
	"photoMarketplace/internal/storage/files"
	"photoMarketplace/internal/storage/postgres"
	"photoMarketplace/internal/watermark"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting photo marketplace", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	fileStore, err := newFileStore(cfg)
	if err != nil {
		log.Error("failed to init file store", sl.Err(err))
		os.Exit(1)
	}

	renderer := watermark.New(log, cfg.Watermark.FontPath)

	proc := processor.New(log, storage, fileStore, renderer, cfg.Watermark.Quality, cfg.Media.ReadTimeout)

	eventsProducer, err := producer.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic, log)
	if err != nil {
		log.Error("failed to create events producer", sl.Err(err))
		os.Exit(1)
	}

	reprocessProducer, err := producer.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ReprocessTopic, log)
	if err != nil {
		log.Error("failed to create reprocess producer", sl.Err(err))
		os.Exit(1)
	}

	reprocessConsumer, err := consumer.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.ReprocessTopic, cfg.Kafka.GroupID, log)
	if err != nil {
		log.Error("failed to create reprocess consumer", sl.Err(err))
		os.Exit(1)
	}

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	go reprocessConsumer.ReadMessages(consumerCtx, proc.HandleReprocess)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	if cfg.Media.Backend == "local" {
		router.Handle(cfg.Media.BaseURL+"/*",
			http.StripPrefix(cfg.Media.BaseURL+"/", http.FileServer(http.Dir(cfg.Media.Root))))
	}

	router.Post("/upload", uploadPhoto.New(log, storage, fileStore, proc, eventsProducer))
	router.Get("/photo/{id}", getPhoto.New(log, storage, fileStore))
	router.Post("/photo/{id}/reprocess", reprocessPhoto.New(log, storage, reprocessProducer))
	router.Get("/gallery", listGallery.New(log, storage, fileStore))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", sl.Err(err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down server", sl.Err(err))
	}

	stopConsumer()

	if err = reprocessConsumer.Close(); err != nil {
		log.Error("failed to close kafka consumer", sl.Err(err))
	}

	if err = eventsProducer.Close(); err != nil {
		log.Error("failed to close events producer", sl.Err(err))
	}

	if err = reprocessProducer.Close(); err != nil {
		log.Error("failed to close reprocess producer", sl.Err(err))
	}

	log.Info("kafka connections closed")

	if err = storage.Close(); err != nil {
		log.Error("failed to close database", sl.Err(err))
	}

	log.Info("application stopped")
}

func newFileStore(cfg *config.Config) (files.Store, error) {
	switch cfg.Media.Backend {
	case "s3":
		return files.NewS3(context.Background(), cfg.S3)
	default:
		return files.NewLocal(cfg.Media.Root, cfg.Media.BaseURL), nil
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
