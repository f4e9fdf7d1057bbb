// Command terrainroute-server serves route planning over HTTP.
//
//	terrainroute-server -terrain terrain.png -elevation mpp.txt -trim-columns 5
//
// Environment:
//
//	TERRAINROUTE_ADDR              listen address (default ":8080")
//	TERRAINROUTE_TIMEOUT_SECONDS   per-request planning deadline, 0 = none (default 30)
//	TERRAINROUTE_MAX_EXPANSIONS    per-search node budget, 0 = unlimited (default 0)
package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/katalvlaran/terrainroute/astar"
	"github.com/katalvlaran/terrainroute/httpapi"
	"github.com/katalvlaran/terrainroute/loader"
	"github.com/katalvlaran/terrainroute/terrain"
)

func main() {
	var (
		terrainPath   string
		elevationPath string
		trimColumns   int
		debug         bool
	)
	flag.StringVar(&terrainPath, "terrain", "", "Terrain map image (required)")
	flag.StringVar(&elevationPath, "elevation", "", "Elevation text file (required)")
	flag.IntVar(&trimColumns, "trim-columns", 0, "Trailing values to drop from every elevation row")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if terrainPath == "" || elevationPath == "" {
		slog.Error("-terrain and -elevation are required")
		flag.Usage()
		os.Exit(2)
	}

	m, err := loader.Load(terrainPath, elevationPath, terrain.DefaultSpeeds(), loader.WithTrimColumns(trimColumns))
	if err != nil {
		slog.Error("failed to load terrain", "error", err)
		os.Exit(1)
	}
	slog.Info("terrain loaded", "width", m.Grid.Width, "height", m.Grid.Height)

	h := buildHandler(m.Grid, logger)
	addr := resolveAddr()

	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	slog.Info("terrainroute server listening", "addr", addr, "timeout", h.Timeout)
	s.Spin()
}

func buildHandler(g *terrain.Grid, logger *slog.Logger) httpapi.Handler {
	h := httpapi.Handler{
		Grid:    g,
		Logger:  logger,
		Timeout: time.Duration(intEnv("TERRAINROUTE_TIMEOUT_SECONDS", 30)) * time.Second,
	}
	if n := intEnv("TERRAINROUTE_MAX_EXPANSIONS", 0); n > 0 {
		h.Search = append(h.Search, astar.WithMaxExpansions(n))
	}
	return h
}

func resolveAddr() string {
	if addr := strings.TrimSpace(os.Getenv("TERRAINROUTE_ADDR")); addr != "" {
		return addr
	}
	return ":8080"
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
