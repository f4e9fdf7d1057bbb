// Package loader reads the on-disk inputs of a route computation: the
// terrain image, the elevation text file and the checkpoint list.
//
// Loading is the only place where external data enters the module; every
// reader validates dimensions eagerly so that terrain.NewGrid never sees
// misaligned layers.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/katalvlaran/terrainroute/terrain"
)

var (
	// ErrMalformed is returned when an input line cannot be parsed.
	ErrMalformed = errors.New("loader: malformed input")

	// ErrOptionViolation is returned when an invalid option is supplied.
	ErrOptionViolation = errors.New("loader: invalid option")
)

// Options configures elevation parsing.
//
// TrimColumns – trailing values dropped from every elevation row.
type Options struct {
	TrimColumns int

	err error
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns strict parsing: every row holds exactly Width values.
func DefaultOptions() Options {
	return Options{}
}

// WithTrimColumns drops n trailing values per elevation row.
// A negative n is recorded as ErrOptionViolation.
func WithTrimColumns(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: trim columns %d", ErrOptionViolation, n)
			return
		}
		o.TrimColumns = n
	}
}

// Map is a loaded terrain image together with the grid built from it.
type Map struct {
	Image image.Image
	Grid  *terrain.Grid
}

// Load reads the terrain image and the elevation file and builds a grid with
// the given speed table.
func Load(terrainPath, elevationPath string, speeds terrain.SpeedTable, opts ...Option) (*Map, error) {
	img, err := LoadImage(terrainPath)
	if err != nil {
		return nil, err
	}
	cells := Cells(img)

	f, err := os.Open(elevationPath)
	if err != nil {
		return nil, fmt.Errorf("loader: open elevation: %w", err)
	}
	defer f.Close()

	b := img.Bounds()
	elev, err := ReadElevation(f, b.Dx(), b.Dy(), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", elevationPath, err)
	}

	g, err := terrain.NewGrid(cells, elev, speeds)
	if err != nil {
		return nil, err
	}
	return &Map{Image: img, Grid: g}, nil
}

// LoadImage decodes a PNG or JPEG terrain map.
func LoadImage(path string) (image.Image, error) {
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("loader: load image %s: %w", path, err)
	}
	return img, nil
}

// Cells converts every pixel of img into a terrain color, indexed [y][x]
// relative to the image bounds. Alpha is ignored.
func Cells(img image.Image) [][]terrain.Color {
	b := img.Bounds()
	out := make([][]terrain.Color, b.Dy())
	for y := range out {
		out[y] = make([]terrain.Color, b.Dx())
		for x := range out[y] {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out[y][x] = terrain.Color{R: c.R, G: c.G, B: c.B}
		}
	}
	return out
}

// ReadElevation parses height rows of whitespace-separated meters, each
// holding width values plus Options.TrimColumns trailing values that are
// dropped. Blank lines are skipped.
// Returns terrain.ErrDimensionMismatch for a wrong row or value count and
// ErrMalformed for unparsable numbers.
func ReadElevation(r io.Reader, width, height int, opts ...Option) ([][]float64, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	out := make([][]float64, 0, height)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(out) == height {
			return nil, fmt.Errorf("%w: more than %d elevation rows (line %d)", terrain.ErrDimensionMismatch, height, line)
		}
		if len(fields) != width+o.TrimColumns {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d+%d",
				terrain.ErrDimensionMismatch, line, len(fields), width, o.TrimColumns)
		}
		row := make([]float64, width)
		for x := range row {
			v, err := strconv.ParseFloat(fields[x], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %q", ErrMalformed, line, x+1, fields[x])
			}
			row[x] = v
		}
		out = append(out, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("loader: read elevation: %w", err)
	}
	if len(out) != height {
		return nil, fmt.Errorf("%w: %d elevation rows, want %d", terrain.ErrDimensionMismatch, len(out), height)
	}

	return out, nil
}

// ReadCheckpoints parses one "x y" integer pair per line. Blank lines are
// skipped. Points are not bounds checked here.
func ReadCheckpoints(r io.Reader) ([]terrain.Point, error) {
	var out []terrain.Point
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want \"x y\", got %q", ErrMalformed, line, sc.Text())
		}
		x, errX := strconv.Atoi(fields[0])
		y, errY := strconv.Atoi(fields[1])
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformed, line, sc.Text())
		}
		out = append(out, terrain.Point{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("loader: read checkpoints: %w", err)
	}
	return out, nil
}

// ReadCheckpointsFile opens path and calls ReadCheckpoints.
func ReadCheckpointsFile(path string) ([]terrain.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open checkpoints: %w", err)
	}
	defer f.Close()
	return ReadCheckpoints(f)
}
