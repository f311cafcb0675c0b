package grid

// eightDirs enumerates the 8-connected neighborhood offsets.
var eightDirs = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// fourDirs enumerates the orthogonal neighborhood offsets.
var fourDirs = [4][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
}

// Islands returns one representative cell per connected component of filled
// cells, using 8-directional adjacency. Representatives are yielded in
// row-major discovery order; every filled cell is visited at most once.
func (g *Grid) Islands() []*Cell {
	visited := make([]bool, len(g.cells))
	var reps []*Cell

	for i := range g.cells {
		cell := &g.cells[i]
		if !cell.Filled || visited[i] {
			continue
		}
		reps = append(reps, cell)

		// Depth-first sweep over the component.
		stack := []*Cell{cell}
		visited[i] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, d := range eightDirs {
				nb, ok := g.CellAt(cur.Row+d[0], cur.Col+d[1])
				if !ok || !nb.Filled {
					continue
				}
				idx := nb.Row*g.cols + nb.Col
				if visited[idx] {
					continue
				}
				visited[idx] = true
				stack = append(stack, nb)
			}
		}
	}
	return reps
}

// Pools classifies empty cells and returns one representative per enclosed
// "pool" component. An empty cell touching the grid boundary is a "spill";
// spill-ness propagates through 4-directional adjacency until fixpoint, so
// any empty region with a path to the border drains out. The remaining
// empty cells are flood-filled with 8-directional adjacency, each visited
// cell's pooled flag is set, and one representative per component is
// returned.
func (g *Grid) Pools() []*Cell {
	// Initial classification plus the spill worklist.
	var spillQueue []*Cell
	for i := range g.cells {
		cell := &g.cells[i]
		if cell.Filled {
			cell.pooled = pooledNo
			continue
		}
		if g.onBoundary(cell) {
			cell.pooled = pooledNo
			spillQueue = append(spillQueue, cell)
		} else {
			cell.pooled = pooledUnknown
		}
	}

	// Drain: an unknown empty cell orthogonally adjacent to a spill cell
	// becomes a spill itself.
	for len(spillQueue) > 0 {
		cur := spillQueue[0]
		spillQueue = spillQueue[1:]
		for _, d := range fourDirs {
			nb, ok := g.CellAt(cur.Row+d[0], cur.Col+d[1])
			if !ok || nb.Filled || nb.pooled != pooledUnknown {
				continue
			}
			nb.pooled = pooledNo
			spillQueue = append(spillQueue, nb)
		}
	}

	// What is left are genuine pools. Flood-fill each component.
	var reps []*Cell
	for i := range g.cells {
		cell := &g.cells[i]
		if cell.pooled != pooledUnknown {
			continue
		}
		reps = append(reps, cell)

		stack := []*Cell{cell}
		cell.pooled = pooledYes
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, d := range eightDirs {
				nb, ok := g.CellAt(cur.Row+d[0], cur.Col+d[1])
				if !ok || nb.pooled != pooledUnknown {
					continue
				}
				nb.pooled = pooledYes
				stack = append(stack, nb)
			}
		}
	}
	return reps
}

// onBoundary reports whether the cell lies on the outer edge of the grid.
func (g *Grid) onBoundary(c *Cell) bool {
	return c.Row == 0 || c.Row == g.rows-1 || c.Col == 0 || c.Col == g.cols-1
}
