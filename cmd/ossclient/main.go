package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/opensource-sharing/internal/api"
	"github.com/pribylovaa/opensource-sharing/internal/app"
	"github.com/pribylovaa/opensource-sharing/internal/clients/interceptors"
	"github.com/pribylovaa/opensource-sharing/internal/comments"
	"github.com/pribylovaa/opensource-sharing/internal/config"
	"github.com/pribylovaa/opensource-sharing/internal/feed"
	viewhttp "github.com/pribylovaa/opensource-sharing/internal/http"
	"github.com/pribylovaa/opensource-sharing/internal/http/handlers"
	"github.com/pribylovaa/opensource-sharing/internal/models"
	"github.com/pribylovaa/opensource-sharing/internal/notify"
	"github.com/pribylovaa/opensource-sharing/internal/search"
	"github.com/pribylovaa/opensource-sharing/internal/storage"
	"github.com/pribylovaa/opensource-sharing/internal/storage/file"
	"github.com/pribylovaa/opensource-sharing/internal/storage/memory"
	"github.com/pribylovaa/opensource-sharing/internal/storage/redis"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting ossclient", "env", cfg.Env, "api", cfg.API.BaseURL, "storage", cfg.Storage.Driver)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	kv, err := setupStorage(rootCtx, cfg.Storage)
	if err != nil {
		log.Error("storage_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if cerr := kv.Close(); cerr != nil {
			log.Warn("storage_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	store, err := app.Create(rootCtx, kv)
	if err != nil {
		log.Error("store_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	client, err := api.New(api.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.Timeouts.Request,
		UserAgent: cfg.API.UserAgent,
		Tokens:    store,
		Logger:    log,
		Metrics:   interceptors.NewMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		log.Error("api_client_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	localizer := notify.NewLocalizer(cfg.Locale)
	notices := notify.NewRecorder(localizer, cfg.Notices.Limit)
	notifier := notify.Tee{notify.Log{Localizer: localizer}, notices}

	projects := feed.New(
		feed.ProjectFetcher(client, cfg.Feed.PageSize, cfg.Feed.OrderBy, models.Order(cfg.Feed.Order)),
		models.ProjectID,
		feed.WithName("home"),
		feed.WithNotifier(notifier, notify.KeyFeedLoadFailed),
	)
	sentinel := feed.NewSignal()

	go func() {
		if err := feed.Watch(rootCtx, sentinel, projects); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("feed_watch_stopped", slog.String("err", err.Error()))
		}
	}()

	suggester := search.NewSuggester(client, cfg.Search.SuggestDebounce)
	defer suggester.Close()

	deps := handlers.Deps{
		Store:        store,
		Auth:         app.NewAuth(client, store, notifier),
		Feed:         projects,
		FeedSignal:   sentinel,
		Search:       search.NewSession(client, notifier, cfg.Search.PageSize),
		Suggest:      suggester,
		Backend:      client,
		Threads:      comments.NewThreads(client, store, notifier),
		Tags:         client.ListTags,
		Notices:      notices,
		Notifier:     notifier,
		Platform:     client,
		RelatedLimit: cfg.Search.RelatedLimit,
	}

	viewHandler := viewhttp.NewRouter(deps, viewhttp.Options{
		Logger:   log,
		Timeout:  cfg.Timeouts.Request,
		BasePath: "",

		HydrationWait: cfg.Timeouts.Hydration,
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Готовность: сервер слушает и сессия загружена из хранилища.
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 && store.Hydrated() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/", viewHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("client_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Shutdown)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	// Закрытие вкладки: сессионные ключи не переживают запуск.
	if err := store.Dispose(shutdownCtx); err != nil {
		log.Warn("store_dispose_failed", slog.String("err", err.Error()))
	}

	log.Info("client_stopped")
}

func setupStorage(ctx context.Context, cfg config.StorageConfig) (storage.KV, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverFile:
		return file.New(cfg.Path)
	case config.DriverRedis:
		return redis.New(ctx, cfg.RedisURL, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
