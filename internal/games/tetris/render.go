package tetris

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/results"
)

// Layout: two HUD rows, then the well flanked by a hold/stats column on
// the left and the preview column on the right. Each board cell is two
// characters wide so blocks look square.
const (
	hudHeight = 2
	cellW     = 2
	boardBoxW = engine.BoardWidth*cellW + 2
	boardBoxH = engine.BoardHeight + 2
	panelW    = 10
	panelGap  = 1

	minScreenW = boardBoxW + 2*(panelW+panelGap)
	minScreenH = hudHeight + boardBoxH
)

const (
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '·'
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	snap := g.session.Snapshot()
	g.renderHUD(dst, snap)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	boardX := (dst.Width() - boardBoxW) / 2
	boardY := hudHeight + (dst.Height()-hudHeight-boardBoxH)/2

	g.renderWell(dst, snap, boardX, boardY)
	g.renderHold(dst, snap, boardX-panelGap-panelW, boardY)
	g.renderStats(dst, snap, boardX-panelGap-panelW, boardY+5)
	g.renderPreview(dst, snap, boardX+boardBoxW+panelGap, boardY)

	switch snap.Outcome {
	case engine.OutcomeCompleted:
		g.renderOverlay(dst, fmt.Sprintf("%d Lines cleared!", snap.Goal),
			"Time "+results.FormatElapsed(snap.Elapsed)+"  R to restart")
	case engine.OutcomeToppedOut:
		if snap.Mode == engine.ModeSprint {
			g.renderOverlay(dst, "Game Over",
				fmt.Sprintf("Lines %d/%d  R to restart", snap.Lines, snap.Goal))
		} else {
			g.renderOverlay(dst, "Game Over",
				fmt.Sprintf("Score %d  R to restart", snap.Score))
		}
	case engine.OutcomeQuit:
		g.renderOverlay(dst, "Quit", "Press Q to leave")
	default:
		if g.paused {
			g.renderOverlay(dst, "Paused", "Press P to continue")
		}
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen, s engine.Snapshot) {
	var hud string
	if s.Mode == engine.ModeSprint {
		hud = fmt.Sprintf(" Tetris | Sprint  Lines: %d/%d  Time: %s",
			s.Lines, s.Goal, results.FormatElapsed(s.Elapsed))
	} else {
		hud = fmt.Sprintf(" Tetris | Classic  Score: %d  Level: %d  Lines: %d",
			s.Score, s.Level, s.Lines)
	}
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderWell draws the board frame, locked cells, ghost and active piece.
func (g *Game) renderWell(dst *core.Screen, s engine.Snapshot, x0, y0 int) {
	dst.DrawBox(core.NewRect(x0, y0, boardBoxW, boardBoxH), core.ColorGray)

	for y := range engine.BoardHeight {
		for x := range engine.BoardWidth {
			c := s.Board[y][x]
			if c.Occupied {
				drawBlock(dst, x0+1+x*cellW, y0+1+y, blockRune, c.Color)
			} else {
				dst.SetColored(x0+1+x*cellW+1, y0+1+y, emptyRune, core.ColorGray)
			}
		}
	}

	if !s.Running() {
		return
	}

	for _, p := range s.Ghost.Blocks() {
		if engine.InBounds(p.X, p.Y) {
			drawBlock(dst, x0+1+p.X*cellW, y0+1+p.Y, ghostRune, s.Ghost.Color())
		}
	}
	for _, p := range s.Active.Blocks() {
		if engine.InBounds(p.X, p.Y) {
			drawBlock(dst, x0+1+p.X*cellW, y0+1+p.Y, blockRune, s.Active.Color())
		}
	}
}

// renderHold draws the hold slot, dimmed once it has been used this turn.
func (g *Game) renderHold(dst *core.Screen, s engine.Snapshot, x0, y0 int) {
	frame := core.ColorGray
	dst.DrawBox(core.NewRect(x0, y0, panelW, 4), frame)
	dst.DrawText(x0+1, y0, "HOLD")
	if !s.HasHold {
		return
	}
	c := s.Hold.Color()
	if s.HoldUsed {
		c = core.ColorGray
	}
	drawMini(dst, s.Hold, x0+1, y0+1, c)
}

// renderStats draws the counters below the hold box.
func (g *Game) renderStats(dst *core.Screen, s engine.Snapshot, x0, y0 int) {
	lines := fmt.Sprintf("%d", s.Lines)
	if s.Goal > 0 {
		lines = fmt.Sprintf("%d/%d", s.Lines, s.Goal)
	}
	rows := []struct{ label, value string }{
		{"SCORE", fmt.Sprintf("%d", s.Score)},
		{"LEVEL", fmt.Sprintf("%d", s.Level)},
		{"LINES", lines},
		{"PIECES", fmt.Sprintf("%d", s.Pieces)},
		{"TIME", results.FormatElapsed(s.Elapsed)},
	}
	if s.Mode == engine.ModeSprint {
		rows = rows[1:]
	}
	for i, r := range rows {
		dst.DrawTextColored(x0, y0+i*2, r.label, core.ColorGray)
		dst.DrawTextColored(x0, y0+i*2+1, r.value, core.ColorBrightWhite)
	}
}

// renderPreview draws the upcoming pieces, three rows apart.
func (g *Game) renderPreview(dst *core.Screen, s engine.Snapshot, x0, y0 int) {
	if len(s.Preview) == 0 {
		return
	}
	dst.DrawBox(core.NewRect(x0, y0, panelW, 3*len(s.Preview)+1), core.ColorGray)
	dst.DrawText(x0+1, y0, "NEXT")
	for i, k := range s.Preview {
		drawMini(dst, k, x0+1, y0+1+i*3, k.Color())
	}
}

// drawMini draws a piece in spawn orientation with its top-left at (x0, y0).
func drawMini(dst *core.Screen, k engine.Kind, x0, y0 int, c core.Color) {
	for _, p := range engine.NewPiece(k).Cells {
		drawBlock(dst, x0+p.X*cellW, y0+p.Y, blockRune, c)
	}
}

func drawBlock(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := range cellW {
		dst.SetColored(x+i, y, r, c)
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2))
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			isTopOrBottom := y == boxY || y == boxY+boxH-1
			isLeftOrRight := x == boxX || x == boxX+boxW-1
			switch {
			case isTopOrBottom && isLeftOrRight:
				dst.Set(x, y, '+')
			case isTopOrBottom:
				dst.Set(x, y, '-')
			case isLeftOrRight:
				dst.Set(x, y, '|')
			default:
				dst.Set(x, y, ' ')
			}
		}
	}

	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
