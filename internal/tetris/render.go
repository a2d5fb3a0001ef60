package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	cellWidth  = 2  // Screen columns per board cell
	panelGap   = 2  // Columns between board and info panel
	panelWidth = 16 // Width reserved for the info panel
	titleRows  = 1  // Rows above the board
)

// layoutSize returns the minimum screen size needed to draw the game.
func (g *Game) layoutSize() (int, int) {
	boardW := g.cfg.Width*cellWidth + 2
	boardH := g.cfg.Height + 2
	return boardW + panelGap + panelWidth, boardH + titleRows
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	totalW, _ := g.layoutSize()
	boardX := max(0, (g.screenW-totalW)/2)
	frame := core.NewRect(boardX, titleRows, g.cfg.Width*cellWidth+2, g.cfg.Height+2)

	dst.DrawTextColored(frame.X+(frame.W-6)/2, 0, "TETRIS", core.ColorBrightWhite)
	dst.DrawBox(frame, core.ColorGray)

	well := frame.Inset(1)
	g.renderBoard(dst, well.X, well.Y)
	g.renderPanel(dst, frame.Right()+panelGap, frame.Y)
	g.renderOverlays(dst, frame)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	minW, minH := g.layoutSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH))
}

// drawBlock paints one board cell at screen position (x, y).
func drawBlock(dst *core.Screen, x, y int, c core.Color) {
	dst.SetColored(x, y, '█', c)
	dst.SetColored(x+1, y, '█', c)
}

// renderBoard draws locked cells and the falling piece.
func (g *Game) renderBoard(dst *core.Screen, originX, originY int) {
	e := g.engine
	for y, row := range e.board.grid {
		for x, cell := range row {
			sx := originX + x*cellWidth
			sy := originY + y
			if cell.Filled() {
				drawBlock(dst, sx, sy, cell.Piece().Color())
			} else {
				dst.SetColored(sx+1, sy, '.', core.ColorGray)
			}
		}
	}

	active, ok := e.Active()
	if !ok {
		return
	}
	for r, row := range active.Shape {
		for c, v := range row {
			by := active.Y + r
			if v == 0 || by < 0 {
				continue
			}
			drawBlock(dst, originX+(active.X+c)*cellWidth, originY+by, active.Color())
		}
	}
}

// panelHints mirrors the key bindings shown in the help bar.
var panelHints = []string{
	"←/→  move",
	"↑    rotate",
	"↓    drop",
	"P    pause",
	"R    restart",
	"Tab  scores",
	"Q    quit",
}

// renderPanel draws score, level, lines and the next-piece preview.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	e := g.engine
	dst.DrawText(x, y, fmt.Sprintf("Score: %d", e.Score()))
	dst.DrawText(x, y+1, fmt.Sprintf("Level: %d", e.Level()))
	dst.DrawText(x, y+2, fmt.Sprintf("Lines: %d", e.Lines()))
	dst.DrawText(x, y+3, fmt.Sprintf("Pieces: %d", e.Locks()))

	dst.DrawText(x, y+5, "Next:")
	next := e.Next()
	for r, row := range next.Shape {
		for c, v := range row {
			if v != 0 {
				drawBlock(dst, x+c*cellWidth, y+6+r, next.Color())
			}
		}
	}

	for i, h := range panelHints {
		dst.DrawTextColored(x, y+10+i, h, core.ColorGray)
	}
}

// renderOverlays draws the pause and game over boxes.
func (g *Game) renderOverlays(dst *core.Screen, frame core.Rect) {
	centerX, centerY := frame.Center()

	if g.engine.IsGameOver() {
		scoreStr := fmt.Sprintf("Final score: %d", g.engine.Score())
		drawOverlay(dst, centerX, centerY, core.ColorBrightRed, "GAME OVER", scoreStr, "Press R to restart")
		return
	}

	if g.paused {
		drawOverlay(dst, centerX, centerY, core.ColorWhite, "PAUSED", "Press P to resume")
	}
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, titleColor core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.CenteredRect(centerX, centerY, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	for i, line := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = titleColor
		}
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, c)
	}
}
