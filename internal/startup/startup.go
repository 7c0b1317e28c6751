package startup

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"playlist-viewer/internal/logging"
	"playlist-viewer/internal/memory"
	"playlist-viewer/internal/resolver"
	"playlist-viewer/internal/session"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Defaults for the environment variables read by LoadConfig.
const (
	DefaultPort                 = "8080"
	DefaultMetricsPort          = "9090"
	DefaultPlaylistsFile        = "./data/playlists.json"
	DefaultStaticDir            = "./static"
	DefaultArchiveBaseURL       = "https://archive.org"
	DefaultSessionSweepInterval = time.Hour
)

// Config holds all application configuration
type Config struct {
	Port           string
	MetricsPort    string
	MetricsEnabled bool

	PlaylistsFile string
	StaticDir     string

	ArchiveBaseURL string
	// ArchiveTimeout bounds one metadata request. Zero means no limit.
	ArchiveTimeout time.Duration
	Grouping       resolver.Grouping
	PlaybackMode   session.PlaybackMode

	SessionTTL           time.Duration
	SessionSweepInterval time.Duration

	LogStaticFiles  bool
	LogHealthChecks bool

	// StaticDirAvailable is false when StaticDir does not exist; the API
	// still works but no front end is served.
	StaticDirAvailable bool
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	port := getEnv("PORT", DefaultPort)
	metricsPort := getEnv("METRICS_PORT", DefaultMetricsPort)
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)
	playlistsFile := getEnv("PLAYLISTS_FILE", DefaultPlaylistsFile)
	staticDir := getEnv("STATIC_DIR", DefaultStaticDir)
	archiveBaseURL := getEnv("ARCHIVE_BASE_URL", DefaultArchiveBaseURL)
	archiveTimeout := getEnvDuration("ARCHIVE_TIMEOUT", 0)
	groupingStr := getEnv("TRACK_GROUPING", string(resolver.GroupingFlat))
	playbackModeStr := getEnv("PLAYBACK_MODE", string(session.ModeIframe))
	sessionTTL := getEnvDuration("SESSION_TTL", session.DefaultTTL)
	sweepInterval := getEnvDuration("SESSION_SWEEP_INTERVAL", DefaultSessionSweepInterval)
	logStaticFiles := getEnvBool("LOG_STATIC_FILES", false)
	logHealthChecks := getEnvBool("LOG_HEALTH_CHECKS", true)

	logging.Info("  PORT:                    %s", port)
	logging.Info("  METRICS_PORT:            %s", metricsPort)
	logging.Info("  METRICS_ENABLED:         %v", metricsEnabled)
	logging.Info("  PLAYLISTS_FILE:          %s", playlistsFile)
	logging.Info("  STATIC_DIR:              %s", staticDir)
	logging.Info("  ARCHIVE_BASE_URL:        %s", archiveBaseURL)
	logging.Info("  ARCHIVE_TIMEOUT:         %s", timeoutString(archiveTimeout))
	logging.Info("  TRACK_GROUPING:          %s", groupingStr)
	logging.Info("  PLAYBACK_MODE:           %s", playbackModeStr)
	logging.Info("  SESSION_TTL:             %s", sessionTTL)
	logging.Info("  SESSION_SWEEP_INTERVAL:  %s", sweepInterval)
	logging.Info("  LOG_STATIC_FILES:        %v", logStaticFiles)
	logging.Info("  LOG_HEALTH_CHECKS:       %v", logHealthChecks)
	logging.Info("  LOG_LEVEL:               %s", logging.GetLevel())

	grouping, err := resolver.ParseGrouping(groupingStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TRACK_GROUPING: %w", err)
	}

	playbackMode, err := session.ParsePlaybackMode(playbackModeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PLAYBACK_MODE: %w", err)
	}

	if err := validateBaseURL(archiveBaseURL); err != nil {
		return nil, fmt.Errorf("invalid ARCHIVE_BASE_URL: %w", err)
	}

	if sweepInterval <= 0 {
		logging.Warn("  SESSION_SWEEP_INTERVAL must be positive, using default: %s", DefaultSessionSweepInterval)
		sweepInterval = DefaultSessionSweepInterval
	}

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("FILE SETUP")
	logging.Info("------------------------------------------------------------")

	playlistsFile, err = filepath.Abs(playlistsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve playlists file path: %w", err)
	}
	logging.Info("  Playlists file (absolute): %s", playlistsFile)

	staticDir, err = filepath.Abs(staticDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve static directory path: %w", err)
	}
	logging.Info("  Static directory (absolute): %s", staticDir)

	config := &Config{
		Port:                 port,
		MetricsPort:          metricsPort,
		MetricsEnabled:       metricsEnabled,
		PlaylistsFile:        playlistsFile,
		StaticDir:            staticDir,
		ArchiveBaseURL:       strings.TrimRight(archiveBaseURL, "/"),
		ArchiveTimeout:       archiveTimeout,
		Grouping:             grouping,
		PlaybackMode:         playbackMode,
		SessionTTL:           sessionTTL,
		SessionSweepInterval: sweepInterval,
		LogStaticFiles:       logStaticFiles,
		LogHealthChecks:      logHealthChecks,
	}

	if err := checkDirectory(staticDir, "static"); err != nil {
		logging.Warn("  Static directory issue: %v", err)
		logging.Warn("  The front end will not be served")
	} else {
		config.StaticDirAvailable = true
	}

	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Front end:   %s", enabledString(config.StaticDirAvailable))
	logging.Info("    Metrics:     %s", enabledString(config.MetricsEnabled))

	return config, nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func timeoutString(d time.Duration) string {
	if d <= 0 {
		return "none"
	}
	return d.String()
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogMemoryConfig logs the Go soft memory limit
func LogMemoryConfig(limit memory.Limit) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("MEMORY CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	if !limit.Configured() {
		logging.Info("  GOMEMLIMIT: not configured (set MEMORY_LIMIT or GOMEMLIMIT)")
		return
	}
	logging.Info("  GOMEMLIMIT: %s", limit)
}

// LogPlaylistsLoaded logs the outcome of loading the playlist file. A load
// error is reported but does not stop startup.
func LogPlaylistsLoaded(path string, count int, duration time.Duration, err error) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("PLAYLIST LOADING")
	logging.Info("------------------------------------------------------------")

	if err != nil {
		logging.Error("  Failed to load %s: %v", path, err)
		logging.Warn("  The server will start but report not ready")
		return
	}
	logging.Info("  [OK] Loaded %d playlists in %v", count, duration)
}

// LogResolverInit logs the track resolver setup
func LogResolverInit(metadataURL string, timeout time.Duration, grouping resolver.Grouping, mode session.PlaybackMode) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("RESOLVER INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Metadata endpoint: %s", metadataURL)
	logging.Info("  Request timeout:   %s", timeoutString(timeout))
	logging.Info("  Track grouping:    %s", grouping)
	logging.Info("  Playback mode:     %s", mode)
}

// LogSessionStoreInit logs the viewer session store setup
func LogSessionStoreInit(ttl, sweepInterval time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SESSION STORE INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Session TTL:     %v", ttl)
	logging.Info("  Sweep interval:  %v", sweepInterval)
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			// Prefix-only routes such as the static file server
			pathTemplate, err = route.GetPathRegexp()
			if err != nil {
				return err
			}
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes dynamically
func LogHTTPRoutes(router *mux.Router, logStaticFiles, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))
		logging.Debug("")

		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			prefix := getRouteGroup(route.Path)
			groups[prefix] = append(groups[prefix], route)
		}

		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		for _, group := range groupKeys {
			if group != "" {
				logging.Debug("  [%s]", group)
			} else {
				logging.Debug("  [root]")
			}

			for _, route := range groups[group] {
				logging.Debug("    %-6s %s", route.Method, route.Path)
			}
			logging.Debug("")
		}
	}

	logging.Info("  HTTP logging enabled")
	if logStaticFiles {
		logging.Info("    Static file logging: ON")
	} else {
		logging.Info("    Static file logging: OFF (set LOG_STATIC_FILES=true to enable)")
	}
	if logHealthChecks {
		logging.Info("    Health check logging: ON")
	} else {
		logging.Info("    Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// getRouteGroup extracts a group name from a route path
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "^")
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	first := parts[0]

	if first == "api" && len(parts) > 1 {
		subParts := strings.SplitN(parts[1], "/", 2)
		return "api/" + subParts[0]
	}

	return first
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Application:   http://0.0.0.0:%s", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Local access:")
	logging.Info("    Application:   http://localhost:%s", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://localhost:%s/metrics", config.MetricsPort)
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func printBanner() {
	banner := `
------------------------------------------------------------
    ____  __            ___      __     _    ___
   / __ \/ /___ ___  __/ (_)____/ /_   | |  / (_)__ _      _____  _____
  / /_/ / / __ '/ / / / / / ___/ __/   | | / / / _ \ | /| / / _ \/ ___/
 / ____/ / /_/ / /_/ / / (__  ) /_     | |/ / /  __/ |/ |/ /  __/ /
/_/   /_/\__,_/\__, /_/_/____/\__/     |___/_/\___/|__/|__/\___/_/
              /____/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if logging.IsDebugEnabled() {
		logging.Debug("  Goroutines:      %d", runtime.NumGoroutine())

		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}

		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func checkDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed < 0 {
		logging.Warn("Invalid duration value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
