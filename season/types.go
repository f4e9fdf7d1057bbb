package season

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/katalvlaran/terrainroute/terrain"
)

// Sentinel errors for season operations.
var (
	// ErrUnknownSeason is returned for a season token outside spring, summer,
	// fall and winter.
	ErrUnknownSeason = errors.New("season: unknown season")

	// ErrNilGrid is returned if a nil grid pointer is passed.
	ErrNilGrid = errors.New("season: grid is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("season: invalid option supplied")
)

// Season is a closed set of seasonal variants. The zero value is Summer,
// which leaves the map unchanged.
type Season int

const (
	Summer Season = iota
	Spring
	Fall
	Winter
)

// All lists every season in calendar order.
var All = []Season{Spring, Summer, Fall, Winter}

var names = map[Season]string{
	Spring: "spring",
	Summer: "summer",
	Fall:   "fall",
	Winter: "winter",
}

// String returns the lower-case season token.
func (s Season) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return fmt.Sprintf("season(%d)", int(s))
}

// Valid reports whether s is one of the four seasons.
func (s Season) Valid() bool {
	_, ok := names[s]
	return ok
}

// Parse converts a token such as "winter" into a Season. Matching ignores
// case and surrounding space; "autumn" is accepted for Fall.
func Parse(token string) (Season, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "autumn" {
		return Fall, nil
	}
	for s, n := range names {
		if n == t {
			return s, nil
		}
	}
	return Summer, fmt.Errorf("%w: %q", ErrUnknownSeason, token)
}

// MarshalText implements encoding.TextMarshaler.
func (s Season) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeason, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Season) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Option configures Apply.
type Option func(*Options)

// Options holds parameters for Apply.
type Options struct {
	// Logger receives one summary record per Apply.
	Logger *slog.Logger

	// Depth, if >= 0, replaces the profile's flood depth limit.
	Depth int

	// Profile, if non-nil, replaces the built-in profile of the season.
	Profile *Profile

	err error
}

// DefaultOptions returns Options with a discarding logger and the built-in
// profile depth.
func DefaultOptions() Options {
	return Options{
		Logger: slog.New(slog.DiscardHandler),
		Depth:  -1,
	}
}

// WithLogger sets the logger used for the Apply summary.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithDepth overrides the flood depth limit. Negative values are invalid.
func WithDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: depth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.Depth = d
	}
}

// WithProfile replaces the built-in profile, e.g. to model a custom season.
func WithProfile(p Profile) Option {
	return func(o *Options) {
		o.Profile = &p
	}
}

// Result is the outcome of Apply.
//
//   - Boundary: cells next to the trigger terrain, in scan order.
//   - Overrides: union of all accepted flood cells, row-major order.
//   - Speeds: the season's speed table.
//   - Grid: the seasoned grid; for Summer the input grid itself.
type Result struct {
	Season    Season
	Profile   Profile
	Boundary  []terrain.Point
	Overrides []terrain.Point
	Speeds    terrain.SpeedTable
	Grid      *terrain.Grid
}
