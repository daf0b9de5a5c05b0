package engine

import "github.com/vovakirdan/tui-tetris/internal/core"

// rotateCells turns the piece a quarter turn around its pivot cell and
// returns the new offsets plus the re-identified pivot index.
func rotateCells(p Piece, clockwise bool) ([4]core.Point, int) {
	if p.Kind == KindO {
		return p.Cells, p.Pivot
	}

	center := p.Cells[p.Pivot]
	var out [4]core.Point
	for i, c := range p.Cells {
		rel := c.Sub(center)
		if clockwise {
			rel = core.Point{X: -rel.Y, Y: rel.X}
		} else {
			rel = core.Point{X: rel.Y, Y: -rel.X}
		}
		out[i] = rel.Add(center)
	}

	pivot := p.Pivot
	for i, c := range out {
		if c == center {
			pivot = i
			break
		}
	}
	return out, pivot
}

func nextRotation(r int, clockwise bool) int {
	if clockwise {
		return (r + 1) % 4
	}
	return (r + 3) % 4
}

// SRSRotate rotates p a quarter turn, trying each wall kick for the
// transition in order. The first offset that fits is committed; if none
// fits p is left untouched. The O piece never rotates.
func SRSRotate(p *Piece, clockwise bool, b *Board) bool {
	if p.Kind == KindO {
		return false
	}

	cells, pivot := rotateCells(*p, clockwise)
	to := nextRotation(p.Rotation, clockwise)
	for _, kick := range kicksFor(p.Kind, p.Rotation, to) {
		pos := p.Pos.Add(kick)
		if Collides(cells, pos, b) {
			continue
		}
		p.Cells = cells
		p.Pivot = pivot
		p.Pos = pos
		p.Rotation = to
		return true
	}
	return false
}

// Rotate180 performs two clockwise SRS rotations and commits only if both
// succeed.
func Rotate180(p *Piece, b *Board) bool {
	scratch := *p
	if !SRSRotate(&scratch, true, b) || !SRSRotate(&scratch, true, b) {
		return false
	}
	*p = scratch
	return true
}
