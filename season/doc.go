// Package season derives seasonal variants of a terrain.Grid.
//
// A season is described by a Profile: the trigger terrain whose edges are
// affected, the color painted over affected cells, a flood depth limit, speed
// overrides and predicates deciding which cells a flood may reach (Admit),
// which of those it keeps expanding from (Enqueue) and which are relabeled
// (Accept). Spring marks the impassable sentinel next to a muddy shore but
// never floods through it.
//
//	Season  Trigger               Depth  Relabels
//	spring  water                 15     land near water, no more than 1 m above the edge (mud)
//	summer  -                     0      nothing (identity)
//	fall    easy-movement forest  1      open land and footpaths next to the forest (leaf litter)
//	winter  water                 7      water near the shore (ice)
//
// Apply runs three steps:
//
//  1. Boundary: every in-bounds cell adjacent to, but not part of, the
//     trigger terrain, deduplicated in scan order.
//  2. Speeds: the grid's table is cloned and the profile overrides installed.
//  3. Flood: one bounded breadth-first traversal per boundary cell; the union
//     of accepted cells is relabeled on a new Grid.
//
// The input grid is never mutated, so several seasons can be derived from
// one base map, also from different goroutines.
package season
