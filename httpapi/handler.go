// Package httpapi exposes route planning over HTTP with hertz.
//
//	POST /api/route    {"season":"winter","checkpoints":[{"x":1,"y":2},...],"strict":false}
//	GET  /api/terrain  map dimensions and speed table
//	GET  /healthz      liveness
//
// The base grid is shared read-only; every request builds its own planner.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/katalvlaran/terrainroute/astar"
	"github.com/katalvlaran/terrainroute/route"
	"github.com/katalvlaran/terrainroute/season"
	"github.com/katalvlaran/terrainroute/terrain"
)

// ErrNoGrid is reported when the handler was built without a grid.
var ErrNoGrid = errors.New("httpapi: no terrain loaded")

type Handler struct {
	Grid    *terrain.Grid
	Logger  *slog.Logger
	Timeout time.Duration
	Search  []astar.Option
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	api := s.Group("/api")
	api.POST("/route", h.planRoute)
	api.GET("/terrain", h.terrainInfo)

	s.GET("/healthz", h.healthz)
}

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type routeRequest struct {
	Season      string  `json:"season"`
	Checkpoints []point `json:"checkpoints"`
	Strict      bool    `json:"strict"`
}

type segmentResponse struct {
	From     point   `json:"from"`
	To       point   `json:"to"`
	Cells    int     `json:"cells"`
	Distance float64 `json:"distance"`
	Cost     float64 `json:"cost"`
	Error    string  `json:"error,omitempty"`
}

type routeResponse struct {
	Season    string            `json:"season"`
	Path      []point           `json:"path"`
	Distance  float64           `json:"distance"`
	Cost      float64           `json:"cost"`
	Overrides int               `json:"overrides"`
	Segments  []segmentResponse `json:"segments"`
}

type speedEntry struct {
	Color string  `json:"color"`
	R     uint8   `json:"r"`
	G     uint8   `json:"g"`
	B     uint8   `json:"b"`
	Speed float64 `json:"speed"`
}

type terrainResponse struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Speeds []speedEntry `json:"speeds"`
}

func (h Handler) planRoute(c context.Context, ctx *app.RequestContext) {
	if h.Grid == nil {
		writeError(ctx, ErrNoGrid)
		return
	}

	var body routeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	s := season.Summer
	if body.Season != "" {
		var err error
		if s, err = season.Parse(body.Season); err != nil {
			writeError(ctx, err)
			return
		}
	}

	opts := []route.Option{route.WithLogger(h.logger()), route.WithSearchOptions(h.Search...)}
	if body.Strict {
		opts = append(opts, route.WithStrict())
	}
	planner, err := route.NewPlanner(h.Grid, s, opts...)
	if err != nil {
		writeError(ctx, err)
		return
	}

	if h.Timeout > 0 {
		var cancel context.CancelFunc
		c, cancel = context.WithTimeout(c, h.Timeout)
		defer cancel()
	}

	checkpoints := make([]terrain.Point, len(body.Checkpoints))
	for i, p := range body.Checkpoints {
		checkpoints[i] = terrain.Point{X: p.X, Y: p.Y}
	}
	it, err := planner.Plan(c, checkpoints)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, newRouteResponse(s, it))
}

func (h Handler) terrainInfo(_ context.Context, ctx *app.RequestContext) {
	if h.Grid == nil {
		writeError(ctx, ErrNoGrid)
		return
	}

	speeds := h.Grid.Speeds()
	resp := terrainResponse{
		Width:  h.Grid.Width,
		Height: h.Grid.Height,
		Speeds: make([]speedEntry, 0, len(speeds)),
	}
	for c, v := range speeds {
		resp.Speeds = append(resp.Speeds, speedEntry{Color: c.String(), R: c.R, G: c.G, B: c.B, Speed: v})
	}
	sort.Slice(resp.Speeds, func(i, j int) bool {
		if resp.Speeds[i].Speed != resp.Speeds[j].Speed {
			return resp.Speeds[i].Speed > resp.Speeds[j].Speed
		}
		return resp.Speeds[i].Color < resp.Speeds[j].Color
	})

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{
		"status": "ok",
		"loaded": h.Grid != nil,
	})
}

func (h Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func newRouteResponse(s season.Season, it *route.Itinerary) routeResponse {
	resp := routeResponse{
		Season:   s.String(),
		Path:     toPoints(it.Path),
		Distance: it.Distance,
		Cost:     it.Cost,
		Segments: make([]segmentResponse, len(it.Segments)),
	}
	if it.Season != nil {
		resp.Overrides = len(it.Season.Overrides)
	}
	for i, seg := range it.Segments {
		sr := segmentResponse{
			From:     point{X: seg.From.X, Y: seg.From.Y},
			To:       point{X: seg.To.X, Y: seg.To.Y},
			Cells:    len(seg.Path),
			Distance: route.TotalDistance(seg.Path),
			Cost:     seg.Cost,
		}
		if seg.Err != nil {
			sr.Error = seg.Err.Error()
		}
		resp.Segments[i] = sr
	}
	return resp
}

func toPoints(path terrain.Path) []point {
	out := make([]point, len(path))
	for i, p := range path {
		out[i] = point{X: p.X, Y: p.Y}
	}
	return out
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return errors.New("empty body")
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, season.ErrUnknownSeason):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_season", err.Error())
	case errors.Is(err, route.ErrTooFewCheckpoints):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, route.ErrNoRoute):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "no_route", err.Error())
	case errors.Is(err, astar.ErrSearchLimit):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "search_limit", err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "timeout", err.Error())
	case errors.Is(err, ErrNoGrid):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "not_loaded", err.Error())
	case errors.Is(err, terrain.ErrUnknownTerrain):
		writeErrorBody(ctx, consts.StatusInternalServerError, "unknown_terrain", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
