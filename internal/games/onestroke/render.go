package onestroke

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/onestroke/internal/core"
	stroke "github.com/vovakirdan/onestroke/internal/games/onestroke/core"
)

// Cell glyphs
const (
	GlyphTarget  = '░'
	GlyphStart   = '▒'
	GlyphPainted = '█'
	GlyphReject  = '╳'
	GlyphHint    = '▓'
)

// strokeColors cycle along the stroke so the paint order stays readable.
var strokeColors = []core.Color{
	core.ColorCyan,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
}

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	if g.gameOver && g.session == nil {
		msg := "No levels to play"
		if g.loadErr != nil {
			msg = g.loadErr.Error()
		}
		g.drawCenteredMessage(dst, "ONESTROKE", msg, "Q to quit")
		return
	}

	if g.tooSmall {
		size := 0
		if g.session != nil {
			size = g.session.Pattern().Size()
		}
		w, h := MinScreen(size)
		dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small", core.ColorRed)
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need %dx%d, have %dx%d", w, h, dst.Width(), dst.Height()), core.ColorGray)
		return
	}

	g.drawHUD(dst)
	g.drawBoard(dst)
	g.drawFooter(dst)

	switch {
	case g.gameOver && g.won:
		g.drawCenteredMessage(dst, "ALL LEVELS CLEARED", fmt.Sprintf("Final score: %d", g.score), "R to play again")
	case g.gameOver:
		msg := "Run over"
		if g.loadErr != nil {
			msg = g.loadErr.Error()
		}
		g.drawCenteredMessage(dst, "GAME OVER", msg, "R to restart")
	case g.levelCleared:
		secs := (g.levelClearTicks + g.tickRate() - 1) / g.tickRate()
		detail := fmt.Sprintf("%d cells, %d touches, %d hints", g.lastClear.Targets, g.lastClear.Touches, g.lastClear.Hints)
		g.drawCenteredMessage(dst, "LEVEL CLEAR!", detail, fmt.Sprintf("Next in %ds - Space to skip", secs))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "", "P to resume")
	}
}

func (g *Game) tickRate() int {
	if g.runtime.TickRate <= 0 {
		return 60
	}
	return g.runtime.TickRate
}

// drawHUD draws level and score information on the top rows.
func (g *Game) drawHUD(dst *core.Screen) {
	var title string
	if g.mode == ModeEndless {
		title = fmt.Sprintf(" %s  Level %d", g.Title(), g.levelIndex+1)
		if g.cfg.Run.Length > 0 {
			title += fmt.Sprintf("/%d", g.cfg.Run.Length)
		}
	} else {
		title = fmt.Sprintf(" %s  Level %d/%d  %s", g.Title(), g.levelIndex+1, len(g.allLevels), g.level.Name)
	}
	dst.DrawTextColored(0, 0, title, core.ColorBrightCyan)

	score := fmt.Sprintf("Score: %d ", g.score)
	dst.DrawTextColored(dst.Width()-len(score), 0, score, core.ColorBrightYellow)

	p := g.session.Pattern()
	status := fmt.Sprintf(" Painted %d/%d  Touches %d  Reverts %d  Hints %d",
		g.session.Len(), p.TargetCount(), g.touches, g.reverts, g.hints)
	dst.DrawTextColored(0, 1, status, core.ColorGray)

	if g.hintTicks > 0 && g.hintRevert {
		dst.DrawTextColored(len(status)+2, 1, "Dead end: retouch the marked cell", core.ColorOrange)
	}
}

// drawFooter draws the controls line.
func (g *Game) drawFooter(dst *core.Screen) {
	help := "arrows move  space touch  mouse drag  r reset  h hint  p pause  q quit"
	if hint := g.level.Metadata["hint"]; hint != "" && g.session.Len() == 0 {
		help = hint
	}
	dst.DrawTextCentered(dst.Height()-1, help, core.ColorDarkGray)
}

// drawBoard draws the frame and every cell.
func (g *Game) drawBoard(dst *core.Screen) {
	l := g.layout
	dst.DrawBox(l.Frame(), core.ColorGray)

	p := g.session.Pattern()
	last, hasLast := g.session.Last()
	blink := (g.tick/8)%2 == 0

	for y := 0; y < p.Size(); y++ {
		for x := 0; x < p.Size(); x++ {
			c := stroke.C(x, y)
			rect := l.CellRect(c)
			order := g.session.Order(c)

			glyph, color := rune(' '), core.ColorDefault
			switch {
			case order > 0:
				glyph, color = GlyphPainted, strokeColors[(order-1)%len(strokeColors)]
				if g.session.IsCompleted() {
					color = core.ColorBrightGreen
				} else if hasLast && c == last {
					color = core.ColorBrightYellow
				}
			case p.HasStart() && c == p.Start():
				glyph, color = GlyphStart, core.ColorYellow
			case p.IsTarget(c):
				glyph, color = GlyphTarget, core.ColorWhite
			}

			if g.hintTicks > 0 && c == g.hintCell && blink {
				glyph, color = GlyphHint, core.ColorBrightGreen
				if g.hintRevert {
					color = core.ColorOrange
				}
			}
			if g.rejectTicks > 0 && c == g.rejectCell {
				glyph, color = GlyphReject, core.ColorRed
			}

			dst.DrawRect(rect, glyph, color)

			// Paint order in wide cells
			if order > 0 && l.CellW >= 3 {
				label := strconv.Itoa(order)
				if len(label) <= l.CellW {
					dst.DrawTextColored(rect.X+(l.CellW-len(label))/2, rect.Y+l.CellH/2, label, core.ColorDefault)
				}
			} else if order == 0 && p.HasStart() && c == p.Start() {
				dst.SetColored(rect.X+l.CellW/2, rect.Y+l.CellH/2, 'S', core.ColorBrightYellow)
			}
		}
	}

	g.drawCursor(dst)
}

// drawCursor brackets the cursor cell.
func (g *Game) drawCursor(dst *core.Screen) {
	if g.levelCleared {
		return
	}
	rect := g.layout.CellRect(g.cursor)
	midY := rect.Y + rect.H/2
	if rect.W >= 2 {
		dst.SetColored(rect.X, midY, '[', core.ColorBrightCyan)
		dst.SetColored(rect.Right()-1, midY, ']', core.ColorBrightCyan)
		return
	}
	cell := dst.GetCell(rect.X, midY)
	dst.SetColored(rect.X, midY, cell.Rune, core.ColorBrightCyan)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle, footer string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle)), len([]rune(footer))) + 4
	boxH := 7
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightCyan)

	dst.DrawTextCentered(boxY+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorWhite)
	dst.DrawTextCentered(boxY+5, footer, core.ColorGray)
}
