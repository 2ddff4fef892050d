package systems

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lark/components"
)

// FoodGrid buckets food entities by position over the unit square so an
// animal only tests the foods in its neighborhood.
type FoodGrid struct {
	cellSize float32
	cols     int
	cells    [][]ecs.Entity // flat grid of entity lists
}

// maxGridCols bounds memory for tiny food sizes.
const maxGridCols = 256

// NewFoodGrid creates a grid whose cells are at least cellSize wide.
func NewFoodGrid(cellSize float32) *FoodGrid {
	cols := maxGridCols
	if cellSize > 1.0/maxGridCols {
		cols = max(int(1/cellSize), 1)
	}

	cells := make([][]ecs.Entity, cols*cols)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 4)
	}

	return &FoodGrid{
		cellSize: 1 / float32(cols),
		cols:     cols,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *FoodGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *FoodGrid) Insert(e ecs.Entity, p components.Position) {
	idx := g.cellIndex(p)
	g.cells[idx] = append(g.cells[idx], e)
}

// Move re-buckets e after it moved from one position to another.
func (g *FoodGrid) Move(e ecs.Entity, from, to components.Position) {
	src, dst := g.cellIndex(from), g.cellIndex(to)
	if src == dst {
		return
	}
	g.cells[src] = slices.DeleteFunc(g.cells[src], func(o ecs.Entity) bool { return o == e })
	g.cells[dst] = append(g.cells[dst], e)
}

// QueryInto appends every entity in a cell overlapping the square of
// half-width radius around p. Callers still test the exact distance. Results
// are sorted by entity ID, which is query order for entities created
// together and never removed. Reuse dst across calls to avoid allocations.
func (g *FoodGrid) QueryInto(dst []ecs.Entity, p components.Position, radius float32) []ecs.Entity {
	dst = dst[:0]
	minCol, maxCol := g.clampCell(p.X-radius), g.clampCell(p.X+radius)
	minRow, maxRow := g.clampCell(p.Y-radius), g.clampCell(p.Y+radius)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	slices.SortFunc(dst, func(a, b ecs.Entity) int { return cmp.Compare(a.ID(), b.ID()) })
	return dst
}

// cellIndex returns the flat index for a world position.
func (g *FoodGrid) cellIndex(p components.Position) int {
	return g.clampCell(p.Y)*g.cols + g.clampCell(p.X)
}

func (g *FoodGrid) clampCell(v float32) int {
	return min(max(int(v/g.cellSize), 0), g.cols-1)
}
