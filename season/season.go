package season

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/terrainroute/terrain"
)

// Apply derives the seasonal variant of g for s.
//
// Returns ErrNilGrid, ErrUnknownSeason, ErrOptionViolation, or an error
// wrapping terrain.ErrBadSpeed when a profile carries an invalid speed.
// Complexity: O(B·D²) for B boundary cells and depth limit D, plus O(W×H).
func Apply(g *terrain.Grid, s Season, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if g == nil {
		return nil, ErrNilGrid
	}

	var prof Profile
	if o.Profile != nil {
		prof = *o.Profile
	} else {
		var err error
		if prof, err = ProfileOf(s); err != nil {
			return nil, fmt.Errorf("%w: %d", err, int(s))
		}
	}
	if o.Depth >= 0 {
		prof.Depth = o.Depth
	}

	speeds := g.Speeds()
	for c, v := range prof.Speeds {
		if err := speeds.Set(c, v); err != nil {
			return nil, fmt.Errorf("season %s: %w", s, err)
		}
	}

	res := &Result{Season: s, Profile: prof, Speeds: speeds}
	if prof.Identity {
		res.Grid = g
		o.Logger.Info("season applied", "season", s.String(), "identity", true)
		return res, nil
	}

	res.Boundary = Boundary(g, prof.Trigger)
	seen := make(map[int]struct{})
	for _, origin := range res.Boundary {
		for _, p := range Flood(g, prof, origin) {
			seen[g.Index(p)] = struct{}{}
		}
	}
	idx := make([]int, 0, len(seen))
	for i := range seen {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	res.Overrides = make([]terrain.Point, len(idx))
	for k, i := range idx {
		res.Overrides[k] = g.Coordinate(i)
	}

	seasoned, err := g.WithSeason(res.Overrides, prof.PathColor, speeds)
	if err != nil {
		return nil, fmt.Errorf("season %s: %w", s, err)
	}
	res.Grid = seasoned

	o.Logger.Info("season applied",
		"season", s.String(),
		"boundary", len(res.Boundary),
		"overrides", len(res.Overrides),
		"depth", prof.Depth,
	)

	return res, nil
}

// Boundary returns every in-bounds cell that is adjacent to a trigger cell
// but is not one itself. Cells are scanned column by column (x outer, y
// inner) and each boundary cell is reported once, on first sight.
// Complexity: O(W×H).
func Boundary(g *terrain.Grid, trigger terrain.Color) []terrain.Point {
	var out []terrain.Point
	seen := make(map[terrain.Point]bool)
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			p := terrain.Point{X: x, Y: y}
			if c, _ := g.At(p); c != trigger {
				continue
			}
			for _, n := range g.Adjacent(p) {
				if c, _ := g.At(n); c == trigger || seen[n] {
					continue
				}
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// Flood runs one bounded breadth-first traversal from origin and returns the
// cells the profile accepts, in discovery order.
//
// A neighbor is admitted when it is in bounds, not yet seen and passes
// prof.Admit. Every admitted cell is tested once against prof.Accept, and
// queued for expansion only when prof.Enqueue (if set) allows it. Cells
// whose x or y offset from origin has reached prof.Depth are not expanded.
func Flood(g *terrain.Grid, prof Profile, origin terrain.Point) []terrain.Point {
	if prof.Identity || prof.Admit == nil || prof.Accept == nil || !g.InBounds(origin) {
		return nil
	}
	w := &walker{
		g:      g,
		prof:   prof,
		origin: origin,
		queue:  []terrain.Point{origin},
		seen:   map[terrain.Point]bool{origin: true},
	}
	w.loop()
	return w.accepted
}

// walker encapsulates mutable flood state for one origin.
type walker struct {
	g        *terrain.Grid
	prof     Profile
	origin   terrain.Point
	queue    []terrain.Point
	seen     map[terrain.Point]bool
	accepted []terrain.Point
}

func (w *walker) loop() {
	for len(w.queue) > 0 {
		p := w.queue[0]
		w.queue = w.queue[1:]

		if w.atLimit(p) {
			continue
		}
		for _, n := range w.g.Adjacent(p) {
			if w.seen[n] || !w.prof.Admit(w.g, w.origin, n) {
				continue
			}
			w.seen[n] = true
			if w.prof.Accept(w.g, n) {
				w.accepted = append(w.accepted, n)
			}
			if w.prof.Enqueue == nil || w.prof.Enqueue(w.g, n) {
				w.queue = append(w.queue, n)
			}
		}
	}
}

// atLimit reports whether p's offset from the origin reached the depth limit
// on either axis.
func (w *walker) atLimit(p terrain.Point) bool {
	return abs(p.X-w.origin.X) >= w.prof.Depth || abs(p.Y-w.origin.Y) >= w.prof.Depth
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
