package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Rotation states.
const (
	RotationSpawn = 0
	RotationRight = 1
	RotationTwo   = 2
	RotationLeft  = 3
)

type transition struct {
	from, to int
}

type kickTable map[transition][5]core.Point

// Wall-kick offsets in board coordinates (y grows downward), tried in order.
// These are the guideline SRS tables with the vertical axis flipped.
var jlstzKicks = kickTable{
	{RotationSpawn, RotationRight}: {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: 2}, {X: -1, Y: 2}},
	{RotationRight, RotationSpawn}: {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: -2}, {X: 1, Y: -2}},
	{RotationRight, RotationTwo}:   {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: -2}, {X: 1, Y: -2}},
	{RotationTwo, RotationRight}:   {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: 2}, {X: -1, Y: 2}},
	{RotationTwo, RotationLeft}:    {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: -1}, {X: 0, Y: 2}, {X: 1, Y: 2}},
	{RotationLeft, RotationTwo}:    {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: -2}, {X: -1, Y: -2}},
	{RotationLeft, RotationSpawn}:  {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: -2}, {X: -1, Y: -2}},
	{RotationSpawn, RotationLeft}:  {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: -1}, {X: 0, Y: 2}, {X: 1, Y: 2}},
}

var iKicks = kickTable{
	{RotationSpawn, RotationRight}: {{X: 0, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: 1}, {X: 1, Y: -2}},
	{RotationRight, RotationSpawn}: {{X: 0, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: -1}, {X: -1, Y: 2}},
	{RotationRight, RotationTwo}:   {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: -2}, {X: 2, Y: 1}},
	{RotationTwo, RotationRight}:   {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 2}, {X: -2, Y: -1}},
	{RotationTwo, RotationLeft}:    {{X: 0, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: -1}, {X: -1, Y: 2}},
	{RotationLeft, RotationTwo}:    {{X: 0, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: 1}, {X: 1, Y: -2}},
	{RotationLeft, RotationSpawn}:  {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 2}, {X: -2, Y: -1}},
	{RotationSpawn, RotationLeft}:  {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: -2}, {X: 2, Y: 1}},
}

// kicksFor returns the offsets for rotating k from one state to another.
// A transition outside the tables is a programming error.
func kicksFor(k Kind, from, to int) [5]core.Point {
	table := jlstzKicks
	if k == KindI {
		table = iKicks
	}
	offsets, ok := table[transition{from, to}]
	if !ok {
		panic(fmt.Sprintf("engine: no wall kicks for %v rotation %d->%d", k, from, to))
	}
	return offsets
}
