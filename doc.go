// Package terrainroute plans orienteering routes over color-coded terrain
// maps with elevation, for any of the four seasons.
//
// 🚀 What is terrainroute?
//
//	A small stack of packages that turns a map image into a timed route:
//		• terrain — Grid of terrain colors + elevation, speeds, travel time
//		• season  — boundary detection and bounded flood fill per season
//		• astar   — A* over the grid with a 3-D travel-time cost
//		• route   — checkpoint itineraries and total planar distance
//
// Around the core:
//
//	loader/  — terrain image, elevation text and checkpoint list readers
//	render/  — route line and season overlay drawing (fogleman/gg)
//	preview/ — terminal preview (tcell)
//	httpapi/ — POST /api/route, GET /api/terrain, GET /healthz (hertz)
//	cmd/terrainroute/        — batch CLI: inputs in, PNG + total distance out
//	cmd/terrainroute-server/ — HTTP server over one loaded map
//
// Data flow:
//
//	loader.Load ─► terrain.Grid ─► season.Apply ─► astar.FindPath (per segment)
//	                                                   │
//	                        render.DrawRoute ◄─ route.Planner.Plan ─► route.TotalDistance
//
// Geometry: one pixel is 10.29 m wide and 7.55 m tall; elevation is in
// meters. Moves are 4-directional only.
//
//	go install github.com/katalvlaran/terrainroute/cmd/terrainroute@latest
package terrainroute
