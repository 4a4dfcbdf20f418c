package constants

import "time"

// UI Layout Constants
const (
	// CellWidth is the number of terminal columns used per board cell
	CellWidth = 2

	// BoardOriginX/BoardOriginY is the top-left terminal cell of the board border
	BoardOriginX = 2
	BoardOriginY = 3

	// SidePanelGap separates the board from the side panel
	SidePanelGap = 3
)

// UI Timing Constants
const (
	// IdleRedrawInterval paces redraws between session frames, expiring status messages
	IdleRedrawInterval = 250 * time.Millisecond

	// StatusMessageTimeout is how long status messages are displayed
	StatusMessageTimeout = 2 * time.Second
)

// Speed Indicator Origins
const (
	// SpeedIndicatorOrigin is the reference period for the in-game speed level
	SpeedIndicatorOrigin = 200 * time.Millisecond

	// DifficultyIndicatorOrigin is the reference period for the difficulty menu label
	DifficultyIndicatorOrigin = 250 * time.Millisecond
)
