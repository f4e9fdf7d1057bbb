// Package preview shows a downsampled terrain map with a route on a tcell
// screen.
package preview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/katalvlaran/terrainroute/season"
	"github.com/katalvlaran/terrainroute/terrain"
)

// RouteGlyph marks screen cells the route passes through.
const RouteGlyph = '@'

// Glyphs maps terrain and season colors to the rune drawn for them.
// Colors not listed are drawn as '?'.
var Glyphs = map[terrain.Color]rune{
	terrain.OpenLand:             '.',
	terrain.Water:                '~',
	terrain.OutOfBounds:          '#',
	terrain.Footpath:             'f',
	terrain.PavedRoad:            'r',
	terrain.EasyMovementForest:   'w',
	terrain.RoughMeadow:          'm',
	terrain.ImpassableVegetation: 'v',
	terrain.WalkForest:           '4',
	terrain.SlowRunForest:        '5',
	season.SpringPath:            '"',
	season.FallPath:              ':',
	season.WinterPath:            '=',
}

// Frame is the content of one preview.
type Frame struct {
	Grid   *terrain.Grid
	Path   terrain.Path
	Status string
}

// Scale returns how many grid cells per axis share one screen cell so that
// a w×h grid fits into sw×sh screen cells.
func Scale(w, h, sw, sh int) int {
	step := 1
	if sw > 0 {
		step = max(step, (w+sw-1)/sw)
	}
	if sh > 0 {
		step = max(step, (h+sh-1)/sh)
	}
	return step
}

// Draw renders f onto s: the map fills every row but the last, which holds
// the status line. Each screen cell shows the top-left grid cell of its
// block; blocks touched by the route show RouteGlyph.
func Draw(s tcell.Screen, f Frame) {
	s.Clear()
	sw, sh := s.Size()
	mapH := sh - 1
	if f.Grid == nil || sw <= 0 || mapH <= 0 {
		s.Show()
		return
	}
	step := Scale(f.Grid.Width, f.Grid.Height, sw, mapH)

	for sy := 0; sy < mapH; sy++ {
		for sx := 0; sx < sw; sx++ {
			p := terrain.Point{X: sx * step, Y: sy * step}
			c, err := f.Grid.At(p)
			if err != nil {
				continue
			}
			r, ok := Glyphs[c]
			if !ok {
				r = '?'
			}
			st := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).
				Background(tcell.ColorBlack)
			s.SetContent(sx, sy, r, nil, st)
		}
	}

	route := tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack).Bold(true)
	for _, p := range f.Path {
		if !f.Grid.InBounds(p) {
			continue
		}
		sx, sy := p.X/step, p.Y/step
		if sx < sw && sy < mapH {
			s.SetContent(sx, sy, RouteGlyph, nil, route)
		}
	}

	putText(s, 0, sh-1, f.Status, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	s.Show()
}

// Run draws f and blocks until a key is pressed or the screen is finalized.
// Resize events redraw the frame. The caller owns Init and Fini.
func Run(s tcell.Screen, f Frame) {
	Draw(s, f)
	for {
		switch s.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.Sync()
			Draw(s, f)
		case *tcell.EventKey:
			return
		}
	}
}

// putText writes str from (x, y), advancing by each rune's display width and
// stopping at the right edge.
func putText(s tcell.Screen, x, y int, str string, st tcell.Style) {
	sw, _ := s.Size()
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > sw {
			break
		}
		s.SetContent(x, y, r, nil, st)
		x += w
	}
}
