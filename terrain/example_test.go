// Package terrain_test shows how a Grid turns map colors and elevation into
// travel times.
package terrain_test

import (
	"fmt"

	"github.com/katalvlaran/terrainroute/terrain"
	"github.com/katalvlaran/terrainroute/terrain/terraintest"
)

// ExampleGrid_TravelTime prices one step uphill from open land onto a
// footpath and the same step back. The cost uses the source cell's speed, so
// the two directions differ.
func ExampleGrid_TravelTime() {
	g, err := terrain.NewGrid(
		terraintest.Cells(".f"),
		[][]float64{{0, 2}},
		terrain.DefaultSpeeds(),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	up, _ := g.TravelTime(terrain.Point{X: 0, Y: 0}, terrain.Point{X: 1, Y: 0})
	down, _ := g.TravelTime(terrain.Point{X: 1, Y: 0}, terrain.Point{X: 0, Y: 0})
	fmt.Printf("open land → footpath: %.4f\n", up)
	fmt.Printf("footpath → open land: %.4f\n", down)
	// Output:
	// open land → footpath: 1.3103
	// footpath → open land: 0.6988
}

// ExampleGrid_Neighbors lists passable neighbors in enumeration order; the
// out-of-bounds sentinel is never returned.
func ExampleGrid_Neighbors() {
	g := terraintest.Grid(
		"...",
		".#.",
		"...",
	)
	fmt.Println(g.Neighbors(terrain.Point{X: 1, Y: 0}))
	// Output: [(2,0) (0,0)]
}

// ExamplePlanarDistance measures a diagonal jump in meters.
func ExamplePlanarDistance() {
	fmt.Printf("%.2f\n", terrain.PlanarDistance(terrain.Point{X: 0, Y: 0}, terrain.Point{X: 1, Y: 1}))
	// Output: 12.76
}
