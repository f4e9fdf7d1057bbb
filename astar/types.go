// Package astar defines options, results and sentinel errors for the A*
// search over a terrain.Grid.
package astar

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/terrainroute/terrain"
)

// Sentinel errors returned by FindPath.
var (
	// ErrNilGrid indicates that a nil *terrain.Grid was passed to FindPath.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrSearchLimit indicates that the search expanded more nodes than
	// allowed by WithMaxExpansions.
	ErrSearchLimit = errors.New("astar: expansion limit reached")

	// ErrOptionViolation indicates an invalid Option.
	ErrOptionViolation = errors.New("astar: invalid option supplied")
)

// CostFunc returns the cost of moving between two adjacent cells.
type CostFunc func(g *terrain.Grid, from, to terrain.Point) (float64, error)

// HeuristicFunc estimates the remaining cost from a cell to the goal.
type HeuristicFunc func(g *terrain.Grid, from, goal terrain.Point) (float64, error)

// TravelTime is the default cost: terrain.Grid.TravelTime.
func TravelTime(g *terrain.Grid, from, to terrain.Point) (float64, error) {
	return g.TravelTime(from, to)
}

// UnitCost charges terrain.Grid.StepCost for every move.
func UnitCost(g *terrain.Grid, from, to terrain.Point) (float64, error) {
	return g.StepCost(from, to), nil
}

// TravelTimeEstimate is the default heuristic: the travel time of a straight
// 3-D line to the goal at the speed of the evaluated cell's terrain.
// It depends on terrain speed and is therefore not guaranteed admissible.
func TravelTimeEstimate(g *terrain.Grid, from, goal terrain.Point) (float64, error) {
	return g.TravelTime(from, goal)
}

// Zero is a heuristic that always returns 0, turning A* into Dijkstra.
func Zero(*terrain.Grid, terrain.Point, terrain.Point) (float64, error) {
	return 0, nil
}

// Options configures FindPath.
//
// Ctx            – checked between expansions; cancellation aborts the search.
// Cost           – cost of one move (default TravelTime).
// Heuristic      – estimate to the goal (default TravelTimeEstimate).
// MaxExpansions  – stop with ErrSearchLimit after this many pops; 0 = unlimited.
type Options struct {
	Ctx           context.Context
	Cost          CostFunc
	Heuristic     HeuristicFunc
	MaxExpansions int

	err error
}

// Option represents a functional option for configuring FindPath.
type Option func(*Options)

// DefaultOptions returns the configuration used when no Option is given.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		Cost:      TravelTime,
		Heuristic: TravelTimeEstimate,
	}
}

// WithContext sets a context checked between expansions.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithCost replaces the move cost.
func WithCost(fn CostFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.Cost = fn
		}
	}
}

// WithHeuristic replaces the goal estimate.
func WithHeuristic(fn HeuristicFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.Heuristic = fn
		}
	}
}

// WithMaxExpansions bounds the number of nodes popped from the frontier.
//
//	n > 0: limit to n expansions
//	n == 0: no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxExpansions cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

// Result is the outcome of one search.
//
//   - Path: start..goal inclusive, or empty when the goal is unreachable.
//   - Cost: accumulated cost (g) of the goal; 0 for an empty path.
//   - Expanded: number of nodes popped from the frontier.
type Result struct {
	Path     terrain.Path
	Cost     float64
	Expanded int
}

// Found reports whether a path was produced.
func (r *Result) Found() bool {
	return r != nil && len(r.Path) > 0
}
