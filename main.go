package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/cache"
	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/notify"
	"github.com/robalobadob/hangman/internal/scheduler"
	"github.com/robalobadob/hangman/internal/service"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()

	src, err := wordSource(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	c, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect cache")
	}
	defer closeCache()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	avg := service.NewAverageAttempts(st, c, m)
	reminder := notify.NewReminder(st, st, mailer(ctx, cfg))
	sched, err := scheduler.New(avg, reminder, scheduler.Options{
		AverageInterval:  cfg.AverageInterval,
		ReminderInterval: cfg.ReminderInterval,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler")
	}
	sched.Start()

	svc := service.New(service.Config{
		Store:           st,
		Words:           src,
		Metrics:         m,
		DefaultAttempts: cfg.DefaultAttempts,
		OnGameCreated:   sched.TriggerAverage,
	})
	srv := httpserver.New(httpserver.Deps{Service: svc, Average: avg, Gatherer: reg})

	httpSrv := &http.Server{Addr: ":" + cfg.Port, Handler: srv.Router()}
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Str("words", cfg.WordMode).Msg("starting hangman server")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := sched.Shutdown(); err != nil {
		log.Error().Err(err).Msg("scheduler shutdown")
	}
}

func openStore(cfg config.Config) (store.Store, error) {
	if cfg.StoreDriver == "sqlite" {
		return store.OpenSQLite(cfg.DatabasePath)
	}
	return store.NewMemoryStore(), nil
}

func wordSource(cfg config.Config) (words.Source, error) {
	list, err := words.Load(cfg.WordsFile)
	if err != nil {
		return nil, err
	}
	log.Info().Int("words", len(list)).Msg("word list loaded")
	if cfg.WordMode == "daily" {
		return words.NewDaily(list, cfg.DailySalt)
	}
	return words.NewRandom(list)
}

func openCache(ctx context.Context, cfg config.Config) (cache.Cache, func(), error) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(), func() {}, nil
	}
	r, err := cache.NewRedis(ctx, cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Prefix:   "hangman:",
	})
	if err != nil {
		return nil, nil, err
	}
	return r, func() { _ = r.Close() }, nil
}

func mailer(ctx context.Context, cfg config.Config) notify.Mailer {
	if cfg.SESFromEmail == "" {
		log.Info().Msg("SES_FROM_EMAIL not set, reminders will be logged only")
		return notify.LogMailer{}
	}
	m, err := notify.NewSESMailer(ctx, cfg.SESRegion, cfg.SESFromEmail)
	if err != nil {
		log.Warn().Err(err).Msg("email disabled")
		return notify.LogMailer{}
	}
	return m
}
