package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"playlist-viewer/internal/archive"
	"playlist-viewer/internal/filesystem"
	"playlist-viewer/internal/handlers"
	"playlist-viewer/internal/logging"
	"playlist-viewer/internal/memory"
	"playlist-viewer/internal/metrics"
	"playlist-viewer/internal/middleware"
	"playlist-viewer/internal/playlist"
	"playlist-viewer/internal/resolver"
	"playlist-viewer/internal/session"
	"playlist-viewer/internal/startup"

	"github.com/gorilla/mux"
)

const (
	metricsCollectInterval = time.Minute
	shutdownTimeout        = 30 * time.Second
)

func main() {
	startTime := time.Now()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	startup.LogMemoryConfig(memory.Apply(os.Getenv))

	filesystem.SetObserver(metrics.NewFilesystemObserver())
	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)

	// A missing or broken playlist file is reported through /readyz
	// instead of stopping the server.
	loadStart := time.Now()
	catalog, loadErr := playlist.Load(config.PlaylistsFile)
	startup.LogPlaylistsLoaded(config.PlaylistsFile, catalog.Len(), time.Since(loadStart), loadErr)

	client := archive.NewClient(
		archive.WithBaseURL(config.ArchiveBaseURL),
		archive.WithTimeout(config.ArchiveTimeout),
		archive.WithUserAgent("PlaylistViewer/"+startup.Version),
	)
	startup.LogResolverInit(config.ArchiveBaseURL+"/metadata/", config.ArchiveTimeout, config.Grouping, config.PlaybackMode)
	res := resolver.New(client, config.Grouping)

	startup.LogSessionStoreInit(config.SessionTTL, config.SessionSweepInterval)
	sessions := session.NewStore(config.SessionTTL)
	sessions.StartSweeper(config.SessionSweepInterval)

	h := handlers.New(catalog, loadErr, res, sessions, config)

	var collector *metrics.Collector
	if config.MetricsEnabled {
		collector = metrics.NewCollector(metrics.StatsFunc(func() metrics.Stats {
			return metrics.Stats{
				ActiveSessions: sessions.Len(),
				Playlists:      catalog.Len(),
			}
		}), metricsCollectInterval)
		collector.Start()
	}

	router := setupRouter(h, config)
	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.ServiceName = "PlaylistViewer/" + startup.Version
	loggingConfig.SessionCookie = handlers.SessionCookieName
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(router)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsSrv = newMetricsServer(h, config.MetricsPort)
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	done := make(chan struct{})
	go handleShutdown(done, srv, metricsSrv, collector, sessions)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		startup.LogFatal("Server error: %v", err)
	}
	<-done
}

func setupRouter(h *handlers.Handlers, config *startup.Config) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/playlists", h.ListPlaylists).Methods("GET")
	api.HandleFunc("/playlists/{index:[0-9]+}/select", h.SelectPlaylist).Methods("POST")
	api.HandleFunc("/state", h.GetState).Methods("GET")
	api.HandleFunc("/tracks/{index:[0-9]+}/play", h.PlayTrack).Methods("POST")
	api.HandleFunc("/playback", h.ClosePlayback).Methods("DELETE")

	r.HandleFunc("/data/playlists.json", h.ServePlaylistsFile).Methods("GET")

	if config.StaticDirAvailable {
		r.HandleFunc("/", serveStaticFile(filepath.Join(config.StaticDir, "index.html"), "text/html; charset=utf-8")).Methods("GET")
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(config.StaticDir)))
	}

	return r
}

// serveStaticFile serves a single file with a fixed content type.
func serveStaticFile(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig()); err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, path)
	}
}

func newMetricsServer(h *handlers.Handlers, port string) *http.Server {
	mr := http.NewServeMux()
	mr.Handle("/metrics", h.MetricsHandler())

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mr,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}

func handleShutdown(done chan<- struct{}, srv, metricsSrv *http.Server, collector *metrics.Collector, sessions *session.Store) {
	defer close(done)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	if collector != nil {
		startup.LogShutdownStep("Stopping metrics collector")
		collector.Stop()
		startup.LogShutdownStepComplete("Metrics collector stopped")
	}

	startup.LogShutdownStep("Stopping session sweeper")
	sessions.Stop()
	startup.LogShutdownStepComplete("Session sweeper stopped")

	startup.LogShutdownComplete()
}
