package engine

import "github.com/vovakirdan/tui-tetris/internal/core"

// Collides reports whether the cells placed at pos leave the playfield or
// overlap a settled block. Cells above row 0 only have to respect the side
// walls; they never hit settled blocks.
func Collides(cells [4]core.Point, pos core.Point, b *Board) bool {
	for _, c := range cells {
		x, y := c.X+pos.X, c.Y+pos.Y
		if x < 0 || x >= BoardWidth || y >= BoardHeight {
			return true
		}
		if y >= 0 && b.Occupied(x, y) {
			return true
		}
	}
	return false
}

// Fits reports whether p can occupy its current position.
func Fits(p Piece, b *Board) bool {
	return !Collides(p.Cells, p.Pos, b)
}

// Grounded reports whether p cannot move one row down.
func Grounded(p Piece, b *Board) bool {
	return Collides(p.Cells, p.Pos.Add(core.Point{Y: 1}), b)
}

// DropPosition returns p moved down to the lowest row it can legally reach.
// This is the hard-drop target and the ghost-piece position.
func DropPosition(p Piece, b *Board) Piece {
	for !Grounded(p, b) {
		p = p.Moved(0, 1)
	}
	return p
}

// ShiftLimit returns p slid as far as possible in the direction of dx (-1 or 1).
func ShiftLimit(p Piece, dx int, b *Board) Piece {
	if dx == 0 {
		return p
	}
	for {
		next := p.Moved(dx, 0)
		if !Fits(next, b) {
			return p
		}
		p = next
	}
}
