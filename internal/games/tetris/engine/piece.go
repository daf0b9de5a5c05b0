// Package engine is the falling-block simulation core: playfield, piece
// kinematics, rotation with wall kicks, line clears, scoring and lock-delay
// timing. It owns no I/O; collaborators feed it input events and read
// immutable snapshots.
package engine

import (
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// Kinds lists every piece kind in bag order before shuffling.
var Kinds = [...]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "?"
	}
}

// Color returns the fixed display color of the kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindI:
		return core.ColorCyan
	case KindO:
		return core.ColorYellow
	case KindT:
		return core.ColorMagenta
	case KindS:
		return core.ColorGreen
	case KindZ:
		return core.ColorRed
	case KindJ:
		return core.ColorBlue
	case KindL:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// layout returns the spawn-orientation cell offsets and the pivot index.
func (k Kind) layout() ([4]core.Point, int) {
	switch k {
	case KindI:
		return [4]core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}, 1
	case KindO:
		return [4]core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, 0
	case KindT:
		return [4]core.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}, 2
	case KindS:
		return [4]core.Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, 3
	case KindZ:
		return [4]core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}}, 2
	case KindJ:
		return [4]core.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}, 2
	case KindL:
		return [4]core.Point{{X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}, 2
	default:
		panic("engine: unknown piece kind " + k.String())
	}
}

// spawnPosition is where a fresh piece of this kind enters the playfield.
// Everything except I starts one row above the visible board.
func (k Kind) spawnPosition() core.Point {
	switch k {
	case KindI:
		return core.Point{X: 3, Y: 0}
	case KindO:
		return core.Point{X: 4, Y: -1}
	default:
		return core.Point{X: 3, Y: -1}
	}
}

// Piece is an active tetromino: cell offsets relative to Pos, the index of
// the rotation pivot among those cells, and the rotation state 0..3
// (0 = spawn, 1 = R, 2 = 180, 3 = L).
type Piece struct {
	Kind     Kind
	Cells    [4]core.Point
	Pivot    int
	Pos      core.Point
	Rotation int
}

// NewPiece returns a piece of kind k in spawn orientation and position.
func NewPiece(k Kind) Piece {
	cells, pivot := k.layout()
	return Piece{
		Kind:  k,
		Cells: cells,
		Pivot: pivot,
		Pos:   k.spawnPosition(),
	}
}

// Color is shorthand for p.Kind.Color().
func (p Piece) Color() core.Color {
	return p.Kind.Color()
}

// Blocks returns the absolute board coordinates of the four cells.
func (p Piece) Blocks() [4]core.Point {
	var out [4]core.Point
	for i, c := range p.Cells {
		out[i] = c.Add(p.Pos)
	}
	return out
}

// Moved returns a copy translated by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.Pos = p.Pos.Add(core.Point{X: dx, Y: dy})
	return p
}
