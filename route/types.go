// Package route strings A* searches together into an orienteering itinerary.
//
// A Planner owns a base terrain.Grid and a season. The season is applied
// once, lazily, before the first search; every consecutive pair of
// checkpoints is then searched independently and the sub-paths are concatenated.
// TotalDistance reports the planar length of any path in meters.
package route

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/terrainroute/astar"
	"github.com/katalvlaran/terrainroute/season"
	"github.com/katalvlaran/terrainroute/terrain"
)

// Sentinel errors for route planning.
var (
	// ErrNilGrid is returned when NewPlanner receives a nil grid.
	ErrNilGrid = errors.New("route: grid is nil")

	// ErrTooFewCheckpoints is returned when fewer than two checkpoints are given.
	ErrTooFewCheckpoints = errors.New("route: at least two checkpoints are required")

	// ErrNoRoute is returned in strict mode when a segment has no path.
	ErrNoRoute = errors.New("route: no route between checkpoints")
)

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger for per-segment records.
func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithStrict makes an unreachable segment abort the whole plan with ErrNoRoute
// instead of being skipped.
func WithStrict() Option {
	return func(p *Planner) {
		p.strict = true
	}
}

// WithSearchOptions forwards options to every astar.FindPath call.
func WithSearchOptions(opts ...astar.Option) Option {
	return func(p *Planner) {
		p.searchOpts = append(p.searchOpts, opts...)
	}
}

// WithSeasonOptions forwards options to season.Apply.
func WithSeasonOptions(opts ...season.Option) Option {
	return func(p *Planner) {
		p.seasonOpts = append(p.seasonOpts, opts...)
	}
}

// Segment is the search result between two consecutive checkpoints.
// Err is set when the segment was skipped.
type Segment struct {
	From, To terrain.Point
	Path     terrain.Path
	Cost     float64
	Err      error
}

// Reachable reports whether the segment produced a path.
func (s Segment) Reachable() bool {
	return len(s.Path) > 0
}

// Itinerary is the outcome of Plan.
//
//   - Path: every segment's path concatenated; junction checkpoints appear twice.
//   - Segments: one entry per consecutive checkpoint pair.
//   - Distance: sum of TotalDistance over the reachable segments, in meters.
//     Skipped segments leave a gap in Path that is not measured.
//   - Cost: sum of segment costs (travel time units).
type Itinerary struct {
	Season   *season.Result
	Path     terrain.Path
	Segments []Segment
	Distance float64
	Cost     float64
}

// Skipped returns the segments without a path.
func (it *Itinerary) Skipped() []Segment {
	var out []Segment
	for _, s := range it.Segments {
		if !s.Reachable() {
			out = append(out, s)
		}
	}
	return out
}

// segmentError builds the error recorded on an unreachable segment.
func segmentError(from, to terrain.Point) error {
	return fmt.Errorf("%w: %s → %s", ErrNoRoute, from, to)
}
