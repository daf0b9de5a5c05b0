package engine

import "github.com/vovakirdan/tui-tetris/internal/core"

// Playfield dimensions. Row 0 is the top.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// maxClearRows bounds a single contiguous clear.
const maxClearRows = 4

// Cell is one square of the playfield.
type Cell struct {
	Occupied bool
	Color    core.Color
}

// Grid is a value copy of the playfield, row-major.
type Grid [BoardHeight][BoardWidth]Cell

// Placement reports the outcome of writing a piece into the board.
type Placement int

const (
	PlacementOK Placement = iota
	// PlacementAboveCeiling means part of the piece was still above row 0;
	// the board is left untouched and the session is over.
	PlacementAboveCeiling
)

// Board is the 10x20 playfield of settled cells.
type Board struct {
	cells Grid
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// InBounds reports whether (x, y) is on the visible board.
func InBounds(x, y int) bool {
	return x >= 0 && x < BoardWidth && y >= 0 && y < BoardHeight
}

// At returns the cell at (x, y); out-of-range coordinates read as empty.
func (b *Board) At(x, y int) Cell {
	if !InBounds(x, y) {
		return Cell{}
	}
	return b.cells[y][x]
}

// Occupied reports whether (x, y) holds a settled block.
func (b *Board) Occupied(x, y int) bool {
	return b.At(x, y).Occupied
}

// Fill marks (x, y) as settled with color c. Out-of-range writes are ignored.
func (b *Board) Fill(x, y int, c core.Color) {
	if !InBounds(x, y) {
		return
	}
	b.cells[y][x] = Cell{Occupied: true, Color: c}
}

// Place writes the piece's cells into the board. If any cell is above the
// ceiling nothing is written and PlacementAboveCeiling is returned.
func (b *Board) Place(p Piece) Placement {
	blocks := p.Blocks()
	for _, c := range blocks {
		if c.Y < 0 {
			return PlacementAboveCeiling
		}
	}
	color := p.Color()
	for _, c := range blocks {
		b.Fill(c.X, c.Y, color)
	}
	return PlacementOK
}

// RowFull reports whether every cell in row y is occupied.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= BoardHeight {
		return false
	}
	for _, c := range b.cells[y] {
		if !c.Occupied {
			return false
		}
	}
	return true
}

// FirstFullLine returns the topmost full row.
func (b *Board) FirstFullLine() (int, bool) {
	for y := 0; y < BoardHeight; y++ {
		if b.RowFull(y) {
			return y, true
		}
	}
	return 0, false
}

// CountFullLines counts consecutive full rows starting at start, scanning
// downward and stopping at four.
func (b *Board) CountFullLines(start int) int {
	n := 0
	for y := start; y < BoardHeight && n < maxClearRows; y++ {
		if !b.RowFull(y) {
			break
		}
		n++
	}
	return n
}

// ClearLines removes count rows beginning at start and shifts everything
// above them down by count. The top count rows become empty.
func (b *Board) ClearLines(start, count int) {
	if count <= 0 || start < 0 || start+count > BoardHeight {
		return
	}
	for y := start + count - 1; y >= 0; y-- {
		if y-count >= 0 {
			b.cells[y] = b.cells[y-count]
		} else {
			b.cells[y] = [BoardWidth]Cell{}
		}
	}
}

// ClearFullLines repeatedly finds and clears full row groups until none remain
// and returns the total number of rows removed.
func (b *Board) ClearFullLines() int {
	total := 0
	for {
		start, ok := b.FirstFullLine()
		if !ok {
			return total
		}
		n := b.CountFullLines(start)
		b.ClearLines(start, n)
		total += n
	}
}

// Grid returns a copy of the board contents.
func (b *Board) Grid() Grid {
	return b.cells
}

// Height returns the number of rows from the highest settled block to the floor.
func (b *Board) Height() int {
	for y := 0; y < BoardHeight; y++ {
		for _, c := range b.cells[y] {
			if c.Occupied {
				return BoardHeight - y
			}
		}
	}
	return 0
}
