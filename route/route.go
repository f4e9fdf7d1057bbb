package route

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/terrainroute/astar"
	"github.com/katalvlaran/terrainroute/season"
	"github.com/katalvlaran/terrainroute/terrain"
)

// Planner plans itineraries over one base grid for one season.
// A Planner is not safe for concurrent use; build one per goroutine over
// the same base grid instead.
type Planner struct {
	base       *terrain.Grid
	season     season.Season
	logger     *slog.Logger
	strict     bool
	searchOpts []astar.Option
	seasonOpts []season.Option

	seasoned *season.Result
	regions  *terrain.Components
}

// NewPlanner returns a Planner for base and s. The season is validated here
// and applied on first use.
func NewPlanner(base *terrain.Grid, s season.Season, opts ...Option) (*Planner, error) {
	if base == nil {
		return nil, ErrNilGrid
	}
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", season.ErrUnknownSeason, int(s))
	}
	p := &Planner{
		base:   base,
		season: s,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Season applies the planner's season if that has not happened yet and
// returns the result.
func (p *Planner) Season() (*season.Result, error) {
	if p.seasoned != nil {
		return p.seasoned, nil
	}
	opts := append([]season.Option{season.WithLogger(p.logger)}, p.seasonOpts...)
	res, err := season.Apply(p.base, p.season, opts...)
	if err != nil {
		return nil, err
	}
	p.seasoned = res
	p.regions = res.Grid.Components()
	return res, nil
}

// Segment searches a single pair of checkpoints on the seasoned grid.
// Checkpoints in different passable regions are reported unreachable
// without running the search.
func (p *Planner) Segment(ctx context.Context, from, to terrain.Point) (Segment, error) {
	res, err := p.Season()
	if err != nil {
		return Segment{From: from, To: to}, err
	}
	if p.regions.Disconnected(from, to) {
		return Segment{From: from, To: to, Err: segmentError(from, to)}, nil
	}
	opts := append([]astar.Option{astar.WithContext(ctx)}, p.searchOpts...)
	found, err := astar.FindPath(res.Grid, from, to, opts...)

	seg := Segment{From: from, To: to}
	switch {
	case errors.Is(err, terrain.ErrOutOfBounds):
		seg.Err = fmt.Errorf("%w: %w", ErrNoRoute, err)
		return seg, nil
	case err != nil:
		return seg, err
	case !found.Found():
		seg.Err = segmentError(from, to)
		return seg, nil
	}
	seg.Path = found.Path
	seg.Cost = found.Cost

	return seg, nil
}

// Plan searches every consecutive pair of checkpoints and concatenates the
// sub-paths. Unreachable segments (no path, or a checkpoint off the grid)
// contribute nothing and are listed in Itinerary.Skipped; with WithStrict
// they abort the plan with ErrNoRoute. Lookup failures always abort.
func (p *Planner) Plan(ctx context.Context, checkpoints []terrain.Point) (*Itinerary, error) {
	if len(checkpoints) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewCheckpoints, len(checkpoints))
	}
	res, err := p.Season()
	if err != nil {
		return nil, err
	}

	it := &Itinerary{Season: res, Segments: make([]Segment, 0, len(checkpoints)-1)}
	for i := 0; i+1 < len(checkpoints); i++ {
		from, to := checkpoints[i], checkpoints[i+1]
		seg, err := p.Segment(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("route: segment %d %s → %s: %w", i, from, to, err)
		}
		it.Segments = append(it.Segments, seg)

		if !seg.Reachable() {
			if p.strict {
				return nil, fmt.Errorf("route: segment %d: %w", i, seg.Err)
			}
			p.logger.Warn("segment skipped", "segment", i, "from", from.String(), "to", to.String(), "error", seg.Err)
			continue
		}
		p.logger.Debug("segment found", "segment", i, "from", from.String(), "to", to.String(), "cells", len(seg.Path), "cost", seg.Cost)
		it.Path = append(it.Path, seg.Path...)
		it.Cost += seg.Cost
		it.Distance += TotalDistance(seg.Path)
	}

	return it, nil
}

// TotalDistance sums the planar distance between consecutive points of path,
// ignoring elevation. Repeated points contribute nothing.
func TotalDistance(path terrain.Path) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += terrain.PlanarDistance(path[i], path[i+1])
	}
	return total
}
