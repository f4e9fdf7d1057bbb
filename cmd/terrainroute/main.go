// Command terrainroute plans an orienteering route over a terrain map and
// writes it as an image.
//
// Usage:
//
//	terrainroute [flags] <terrain.png> <elevation.txt> <checkpoints.txt> <season> <output.png>
//
// # Winter route with the frozen-lake overlay saved separately
// terrainroute -overlay winter.png -trim-columns 5 terrain.png mpp.txt brown.txt winter out.png
//
// # Fail if any checkpoint is unreachable, then look at the result in the terminal
// terrainroute -strict -preview terrain.png mpp.txt red.txt summer out.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/terrainroute/loader"
	"github.com/katalvlaran/terrainroute/preview"
	"github.com/katalvlaran/terrainroute/render"
	"github.com/katalvlaran/terrainroute/route"
	"github.com/katalvlaran/terrainroute/season"
	"github.com/katalvlaran/terrainroute/terrain"
)

// errUsage marks command-line argument errors.
var errUsage = errors.New("usage")

type config struct {
	terrainPath     string
	elevationPath   string
	checkpointsPath string
	season          season.Season
	outputPath      string

	trimColumns int
	overlayPath string
	strict      bool
	preview     bool
	logLevel    slog.Level
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.logLevel}))
	slog.SetDefault(logger)

	if err := plan(ctx, cfg, logger, stdout); err != nil {
		logger.Error("route failed", "error", err)
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (config, error) {
	var (
		cfg      config
		logLevel string
	)
	fs := flag.NewFlagSet("terrainroute", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.trimColumns, "trim-columns", 0, "Trailing values to drop from every elevation row")
	fs.StringVar(&cfg.overlayPath, "overlay", "", "Also write the seasonal overlay (without the route) to this PNG")
	fs.BoolVar(&cfg.strict, "strict", false, "Fail when a checkpoint pair has no route instead of skipping it")
	fs.BoolVar(&cfg.preview, "preview", false, "Show the route in the terminal after planning")
	fs.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: terrainroute [options] <terrain.png> <elevation.txt> <checkpoints.txt> <season> <output.png>")
		fmt.Fprintln(stderr, "\nOptions:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr, "\nSeasons: spring, summer, fall, winter")
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if fs.NArg() != 5 {
		fs.Usage()
		return cfg, fmt.Errorf("%w: want 5 arguments, got %d", errUsage, fs.NArg())
	}
	if err := cfg.logLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return cfg, fmt.Errorf("%w: -log-level: %v", errUsage, err)
	}
	s, err := season.Parse(fs.Arg(3))
	if err != nil {
		return cfg, err
	}

	cfg.terrainPath = fs.Arg(0)
	cfg.elevationPath = fs.Arg(1)
	cfg.checkpointsPath = fs.Arg(2)
	cfg.season = s
	cfg.outputPath = fs.Arg(4)

	return cfg, nil
}

func plan(ctx context.Context, cfg config, logger *slog.Logger, stdout io.Writer) error {
	m, err := loader.Load(cfg.terrainPath, cfg.elevationPath, terrain.DefaultSpeeds(), loader.WithTrimColumns(cfg.trimColumns))
	if err != nil {
		return err
	}
	logger.Info("terrain loaded", "width", m.Grid.Width, "height", m.Grid.Height)

	checkpoints, err := loader.ReadCheckpointsFile(cfg.checkpointsPath)
	if err != nil {
		return err
	}

	opts := []route.Option{route.WithLogger(logger)}
	if cfg.strict {
		opts = append(opts, route.WithStrict())
	}
	planner, err := route.NewPlanner(m.Grid, cfg.season, opts...)
	if err != nil {
		return err
	}
	it, err := planner.Plan(ctx, checkpoints)
	if err != nil {
		return err
	}

	base := m.Image
	if res := it.Season; res != nil && len(res.Overrides) > 0 {
		base = render.Overlay(base, res.Overrides, res.Profile.PathColor)
	}
	if cfg.overlayPath != "" {
		if err := render.SavePNG(cfg.overlayPath, base); err != nil {
			return err
		}
		logger.Info("overlay written", "path", cfg.overlayPath)
	}

	out, err := render.DrawRoute(base, it.Path)
	if err != nil {
		return err
	}
	if err := render.SavePNG(cfg.outputPath, out); err != nil {
		return err
	}
	logger.Info("route written", "path", cfg.outputPath, "cells", len(it.Path), "skipped", len(it.Skipped()))

	fmt.Fprintf(stdout, "Total distance: %.2f\n", it.Distance)

	if cfg.preview {
		return showPreview(it, cfg.season)
	}
	return nil
}

func showPreview(it *route.Itinerary, s season.Season) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer screen.Fini()

	preview.Run(screen, preview.Frame{
		Grid:   it.Season.Grid,
		Path:   it.Path,
		Status: fmt.Sprintf("%s  %.0f m  %d segments  (any key to quit)", s, it.Distance, len(it.Segments)),
	})
	return nil
}
