package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/terrainroute/astar"
	"github.com/katalvlaran/terrainroute/route"
	"github.com/katalvlaran/terrainroute/season"
	"github.com/katalvlaran/terrainroute/terrain"
	"github.com/katalvlaran/terrainroute/terrain/terraintest"
)

func testHandler() Handler {
	return Handler{Grid: terraintest.Grid(
		"~~~..",
		"~~~..",
		".....",
		"..#..",
	)}
}

func post(h Handler, body string) *app.RequestContext {
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(body))
	h.planRoute(context.Background(), ctx)
	return ctx
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	code, _ := body["error"]["code"].(string)
	return code
}

func TestPlanRoute_OK(t *testing.T) {
	ctx := post(testHandler(), `{"season":"winter","checkpoints":[{"x":4,"y":0},{"x":4,"y":3},{"x":0,"y":2}]}`)
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var resp routeResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, "winter", resp.Season)
	require.Len(t, resp.Segments, 2)
	assert.Equal(t, point{X: 4, Y: 0}, resp.Path[0])
	assert.Equal(t, point{X: 0, Y: 2}, resp.Path[len(resp.Path)-1])
	assert.InDelta(t, 3*terrain.YScale+4*terrain.XScale+terrain.YScale, resp.Distance, 1e-6)
	assert.Positive(t, resp.Overrides)
	assert.Empty(t, resp.Segments[0].Error)
}

func TestPlanRoute_DefaultsToSummer(t *testing.T) {
	ctx := post(testHandler(), `{"checkpoints":[{"x":3,"y":0},{"x":4,"y":0}]}`)
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())

	var resp routeResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, "summer", resp.Season)
	assert.Zero(t, resp.Overrides)
	assert.Len(t, resp.Path, 2)
}

func TestPlanRoute_SkippedSegment(t *testing.T) {
	ctx := post(testHandler(), `{"checkpoints":[{"x":3,"y":0},{"x":40,"y":0}]}`)
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())

	var resp routeResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Empty(t, resp.Path)
	require.Len(t, resp.Segments, 1)
	assert.NotEmpty(t, resp.Segments[0].Error)
	assert.Zero(t, resp.Segments[0].Cells)
}

func TestPlanRoute_Errors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"EmptyBody", ``, consts.StatusBadRequest, "invalid_json"},
		{"BadJSON", `{"checkpoints":`, consts.StatusBadRequest, "invalid_json"},
		{"UnknownSeason", `{"season":"monsoon","checkpoints":[{"x":0,"y":0},{"x":1,"y":0}]}`, consts.StatusBadRequest, "unknown_season"},
		{"OneCheckpoint", `{"checkpoints":[{"x":0,"y":0}]}`, consts.StatusBadRequest, "bad_request"},
		{"StrictOffGrid", `{"strict":true,"checkpoints":[{"x":0,"y":0},{"x":9,"y":9}]}`, consts.StatusUnprocessableEntity, "no_route"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := post(testHandler(), tc.body)
			assert.Equal(t, tc.status, ctx.Response.StatusCode())
			assert.Equal(t, tc.code, errorCode(t, ctx))
		})
	}
}

func TestPlanRoute_SearchLimit(t *testing.T) {
	h := testHandler()
	h.Search = []astar.Option{astar.WithMaxExpansions(1)}
	ctx := post(h, `{"checkpoints":[{"x":4,"y":0},{"x":0,"y":3}]}`)
	assert.Equal(t, consts.StatusUnprocessableEntity, ctx.Response.StatusCode())
	assert.Equal(t, "search_limit", errorCode(t, ctx))
}

func TestPlanRoute_NoGrid(t *testing.T) {
	ctx := post(Handler{}, `{"checkpoints":[]}`)
	assert.Equal(t, consts.StatusServiceUnavailable, ctx.Response.StatusCode())
	assert.Equal(t, "not_loaded", errorCode(t, ctx))
}

func TestTerrainInfo(t *testing.T) {
	ctx := &app.RequestContext{}
	testHandler().terrainInfo(context.Background(), ctx)
	require.Equal(t, consts.StatusOK, ctx.Response.StatusCode())

	var resp terrainResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, 5, resp.Width)
	assert.Equal(t, 4, resp.Height)
	require.Len(t, resp.Speeds, len(terrain.DefaultSpeeds()))
	assert.Equal(t, terrain.Footpath.String(), resp.Speeds[0].Color, "fastest first")
	assert.Equal(t, 15.0, resp.Speeds[0].Speed)
}

func TestHealthz(t *testing.T) {
	ctx := &app.RequestContext{}
	Handler{}.healthz(context.Background(), ctx)
	assert.Equal(t, consts.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"status":"ok","loaded":false}`, string(ctx.Response.Body()))
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{season.ErrUnknownSeason, consts.StatusBadRequest, "unknown_season"},
		{route.ErrNoRoute, consts.StatusUnprocessableEntity, "no_route"},
		{context.DeadlineExceeded, consts.StatusServiceUnavailable, "timeout"},
		{terrain.ErrUnknownTerrain, consts.StatusInternalServerError, "unknown_terrain"},
		{errors.New("boom"), consts.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, tc.err)
		assert.Equal(t, tc.status, ctx.Response.StatusCode(), tc.err.Error())
		assert.Equal(t, tc.code, errorCode(t, ctx))
	}
}
