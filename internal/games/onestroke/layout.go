package onestroke

import (
	"github.com/vovakirdan/onestroke/internal/core"
	stroke "github.com/vovakirdan/onestroke/internal/games/onestroke/core"
)

// Screen rows reserved around the board.
const (
	hudRows    = 2
	footerRows = 1
)

// BoardLayout maps grid cells to terminal positions. The board occupies
// Size*CellW columns and Size*CellH rows starting at (OriginX, OriginY),
// surrounded by a one-character frame.
type BoardLayout struct {
	OriginX int
	OriginY int
	CellW   int
	CellH   int
	Size    int
}

// Fit picks the largest cell dimensions up to maxW x maxH that let a
// size x size board and its frame fit the screen below the HUD, and centers
// the board. ok is false when even 1x1 cells do not fit.
func Fit(screenW, screenH, size, maxW, maxH int) (BoardLayout, bool) {
	if size <= 0 {
		return BoardLayout{}, false
	}
	availW := screenW - 2
	availH := screenH - hudRows - footerRows - 2

	cellW := core.Clamp(availW/size, 1, max(maxW, 1))
	cellH := core.Clamp(availH/size, 1, max(maxH, 1))
	// Terminal cells are about twice as tall as wide.
	cellW = min(cellW, cellH*2)
	cellH = min(cellH, max(cellW/2, 1))

	if size*cellW > availW || size*cellH > availH {
		return BoardLayout{Size: size, CellW: 1, CellH: 1}, false
	}

	boardW := size * cellW
	boardH := size * cellH
	return BoardLayout{
		OriginX: (screenW - boardW) / 2,
		OriginY: hudRows + 1 + (availH-boardH)/2,
		CellW:   cellW,
		CellH:   cellH,
		Size:    size,
	}, true
}

// MinScreen returns the smallest screen that fits a board of the given size.
func MinScreen(size int) (int, int) {
	return size + 2, size + hudRows + footerRows + 2
}

// CellAt maps a terminal position to a grid cell. It reports false when the
// position lies outside the board, including on the frame.
func (l BoardLayout) CellAt(x, y int) (stroke.Coord, bool) {
	if l.CellW <= 0 || l.CellH <= 0 || !l.cells().Contains(x, y) {
		return stroke.Coord{}, false
	}
	return stroke.C((x-l.OriginX)/l.CellW, (y-l.OriginY)/l.CellH), true
}

// cells returns the area covered by grid cells, without the frame.
func (l BoardLayout) cells() core.Rect {
	return core.NewRect(l.OriginX, l.OriginY, l.Size*l.CellW, l.Size*l.CellH)
}

// CellRect returns the screen area covered by a cell.
func (l BoardLayout) CellRect(c stroke.Coord) core.Rect {
	return core.NewRect(l.OriginX+c.X*l.CellW, l.OriginY+c.Y*l.CellH, l.CellW, l.CellH)
}

// Frame returns the rectangle of the board including its frame.
func (l BoardLayout) Frame() core.Rect {
	c := l.cells()
	return core.NewRect(c.X-1, c.Y-1, c.W+2, c.H+2)
}
