package terrain

// Components labels the 4-connected regions of passable cells of a Grid.
// Two cells with the same label can reach each other without crossing the
// OutOfBounds sentinel; cells in different regions never can.
type Components struct {
	width  int
	labels []int // -1 for impassable cells
	sizes  []int
}

// Components labels every passable region of g, scanning row by row and
// flooding each unlabeled cell breadth-first.
//
// Time:   O(W·H).
// Memory: O(W·H) for labels and the queue.
func (g *Grid) Components() *Components {
	total := g.Width * g.Height
	c := &Components{width: g.Width, labels: make([]int, total)}
	for i := range c.labels {
		c.labels[i] = -1
	}

	queue := make([]int, 0, total)
	for i0 := 0; i0 < total; i0++ {
		if c.labels[i0] >= 0 || g.cells[i0] == OutOfBounds {
			continue
		}
		label := len(c.sizes)
		c.labels[i0] = label
		queue = append(queue[:0], i0)

		for qi := 0; qi < len(queue); qi++ {
			for _, n := range g.Neighbors(g.Coordinate(queue[qi])) {
				vi := g.index(n)
				if c.labels[vi] < 0 {
					c.labels[vi] = label
					queue = append(queue, vi)
				}
			}
		}
		c.sizes = append(c.sizes, len(queue))
	}
	return c
}

// Count returns the number of regions.
func (c *Components) Count() int { return len(c.sizes) }

// Size returns the number of cells carrying label, or 0 for an unknown label.
func (c *Components) Size(label int) int {
	if label < 0 || label >= len(c.sizes) {
		return 0
	}
	return c.sizes[label]
}

// Label returns p's region, or -1 when p is off the grid or impassable.
func (c *Components) Label(p Point) int {
	if p.X < 0 || p.X >= c.width || p.Y < 0 || p.Y >= len(c.labels)/c.width {
		return -1
	}
	return c.labels[p.Y*c.width+p.X]
}

// Disconnected reports whether a and b are both passable and lie in
// different regions, i.e. no 4-connected walk joins them.
func (c *Components) Disconnected(a, b Point) bool {
	la, lb := c.Label(a), c.Label(b)
	return la >= 0 && lb >= 0 && la != lb
}
