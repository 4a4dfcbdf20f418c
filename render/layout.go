package render

import (
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/game"
)

// Screen positions derived from the board origin
const (
	titleY      = 0
	scoreBoardY = 1

	boardInnerX = constants.BoardOriginX + 1
	boardInnerY = constants.BoardOriginY + 1
	boardWidth  = constants.BoardSize*constants.CellWidth + 2 // Including borders
	boardHeight = constants.BoardSize + 2

	panelX  = constants.BoardOriginX + boardWidth + constants.SidePanelGap
	statusY = constants.BoardOriginY + boardHeight + 1

	// MinWidth and MinHeight fit the board, side panel and status line
	MinWidth  = panelX + 34
	MinHeight = statusY + 1
)

// CellOrigin returns the terminal column and row of a board cell's first column
func CellOrigin(c game.Cell) (x, y int) {
	return boardInnerX + c.X*constants.CellWidth, boardInnerY + c.Y
}
