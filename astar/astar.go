// Package astar implements A* search over a terrain.Grid.
//
// The frontier is a min-heap keyed by f = g + h, where g is the accumulated
// travel time and h estimates the time to the goal at the speed of the
// evaluated cell's terrain. Because h depends on terrain speed it is not a
// fixed lower bound, so paths are not guaranteed optimal; this is intended.
//
// Notes on implementation choices:
//
//   - Lazy decrease-key: improved nodes are pushed again and stale heap
//     entries (f above the best known f) are skipped when popped.
//   - No closed set: a node whose f improves is re-inserted even after it
//     was expanded.
//   - Ties on f are broken by insertion order, so results are deterministic.
package astar

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/terrainroute/terrain"
)

// FindPath searches g for a route from start to goal.
//
// Returns:
//
//   - a Result whose Path runs from start to goal inclusive;
//   - an empty Path with a nil error when the frontier empties first;
//   - an empty Path with an error wrapping terrain.ErrOutOfBounds when start
//     or goal lies off the grid;
//   - an error wrapping terrain.ErrUnknownTerrain when a cost or estimate
//     meets a terrain color without a speed (the search is aborted);
//   - ErrSearchLimit, ErrOptionViolation or the context error otherwise.
//
// Complexity:
//
//   - Time:  O((V + E) log V) expansions on a W×H grid (V = W×H, E ≤ 4V),
//     more when re-insertions occur.
//   - Space: O(V).
func FindPath(g *terrain.Grid, start, goal terrain.Point, opts ...Option) (*Result, error) {
	// 1) Build and validate Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return &Result{}, cfg.err
	}
	if g == nil {
		return &Result{}, ErrNilGrid
	}

	// 2) Both endpoints must be on the grid.
	if !g.InBounds(start) {
		return &Result{}, fmt.Errorf("%w: start %s", terrain.ErrOutOfBounds, start)
	}
	if !g.InBounds(goal) {
		return &Result{}, fmt.Errorf("%w: goal %s", terrain.ErrOutOfBounds, goal)
	}

	// 3) Run the search with fresh per-call state.
	r := &runner{
		g:         g,
		options:   cfg,
		goal:      goal,
		costSoFar: make(map[terrain.Point]float64),
		fBest:     make(map[terrain.Point]float64),
		cameFrom:  make(map[terrain.Point]terrain.Point),
	}
	if err := r.init(start); err != nil {
		return &Result{}, err
	}
	found, err := r.process()
	if err != nil {
		return &Result{Expanded: r.expanded}, err
	}
	if !found {
		return &Result{Path: terrain.Path{}, Expanded: r.expanded}, nil
	}

	return &Result{
		Path:     r.reconstruct(start),
		Cost:     r.costSoFar[goal],
		Expanded: r.expanded,
	}, nil
}

// runner holds the mutable state for a single A* execution.
type runner struct {
	g         *terrain.Grid
	options   Options
	goal      terrain.Point
	costSoFar map[terrain.Point]float64       // g: best known accumulated cost
	fBest     map[terrain.Point]float64       // best known g + h
	cameFrom  map[terrain.Point]terrain.Point // predecessor on the best known route
	pq        nodePQ
	seq       uint64
	expanded  int
}

// init seeds the frontier with start at g = 0.
func (r *runner) init(start terrain.Point) error {
	h, err := r.options.Heuristic(r.g, start, r.goal)
	if err != nil {
		return fmt.Errorf("astar: estimate from %s: %w", start, err)
	}
	r.costSoFar[start] = 0
	r.fBest[start] = h
	heap.Init(&r.pq)
	r.push(start, h)

	return nil
}

// process pops the lowest-f node until the goal is popped or the frontier
// is empty. It reports whether the goal was reached.
func (r *runner) process() (bool, error) {
	for r.pq.Len() > 0 {
		// cancellation check (once per pop)
		select {
		case <-r.options.Ctx.Done():
			return false, r.options.Ctx.Err()
		default:
		}

		item := heap.Pop(&r.pq).(*nodeItem)

		// Skip stale entries superseded by a better f.
		if item.f > r.fBest[item.p] {
			continue
		}
		if item.p == r.goal {
			return true, nil
		}

		r.expanded++
		if r.options.MaxExpansions > 0 && r.expanded > r.options.MaxExpansions {
			return false, fmt.Errorf("%w: %d", ErrSearchLimit, r.options.MaxExpansions)
		}

		if err := r.relax(item.p); err != nil {
			return false, err
		}
	}

	return false, nil
}

// relax evaluates every passable neighbor of u and (re)inserts those whose
// candidate f improves on the best known f, or that have no cost yet.
func (r *runner) relax(u terrain.Point) error {
	gu := r.costSoFar[u]
	for _, v := range r.g.Neighbors(u) {
		step, err := r.options.Cost(r.g, u, v)
		if err != nil {
			return fmt.Errorf("astar: cost %s→%s: %w", u, v, err)
		}
		h, err := r.options.Heuristic(r.g, v, r.goal)
		if err != nil {
			return fmt.Errorf("astar: estimate from %s: %w", v, err)
		}
		gv := gu + step
		fv := gv + h

		if best, seen := r.fBest[v]; seen && fv >= best {
			continue
		}
		r.costSoFar[v] = gv
		r.fBest[v] = fv
		r.cameFrom[v] = u
		r.push(v, fv)
	}

	return nil
}

// reconstruct follows predecessor links from the goal back to start.
func (r *runner) reconstruct(start terrain.Point) terrain.Path {
	path := terrain.Path{r.goal}
	for cur := r.goal; cur != start; {
		cur = r.cameFrom[cur]
		path = append(path, cur)
	}
	// reverse to get start → goal
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

func (r *runner) push(p terrain.Point, f float64) {
	r.seq++
	heap.Push(&r.pq, &nodeItem{p: p, f: f, seq: r.seq})
}

// nodeItem is a frontier entry: a cell, its f at insertion and an insertion
// counter for deterministic tie-breaking.
type nodeItem struct {
	p   terrain.Point
	f   float64
	seq uint64
}

// nodePQ is a min-heap of *nodeItem ordered by f, then by insertion order.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap; x must be a *nodeItem.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element; called by heap.Pop.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
