package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/game"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbBoard      = tcell.NewRGBColor(36, 40, 59)    // Slightly lifted board area
	RgbBorder     = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbText       = tcell.NewRGBColor(255, 255, 255) // White
	RgbTextDim    = tcell.NewRGBColor(140, 140, 160) // Muted labels

	RgbSnakeBody = tcell.NewRGBColor(0, 200, 0)   // Normal Green
	RgbSnakeHead = tcell.NewRGBColor(50, 255, 50) // Bright Green
	RgbSnakeDead = tcell.NewRGBColor(0, 130, 0)   // Dark Green
	RgbFood      = tcell.NewRGBColor(255, 80, 80) // Normal Red

	RgbScore     = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow
	RgbHighScore = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbSpeed     = tcell.NewRGBColor(135, 206, 250) // Light sky blue

	RgbOverlayBg = tcell.NewRGBColor(20, 20, 30)  // Dialog background
	RgbGameOver  = tcell.NewRGBColor(255, 0, 0)   // Error Red
	RgbRecord    = tcell.NewRGBColor(255, 215, 0) // Gold
	RgbStatusBg  = tcell.NewRGBColor(128, 0, 128) // Dark purple
	RgbStatusFg  = tcell.NewRGBColor(255, 255, 255)
)

// Difficulty accent colors, easy to extreme
var difficultyColors = map[game.Difficulty]tcell.Color{
	game.DifficultyEasy:    tcell.NewRGBColor(76, 175, 80),  // Green
	game.DifficultyNormal:  tcell.NewRGBColor(255, 152, 0),  // Orange
	game.DifficultyHard:    tcell.NewRGBColor(244, 67, 54),  // Red
	game.DifficultyExtreme: tcell.NewRGBColor(156, 39, 176), // Purple
}

// DifficultyColor returns the accent color of a difficulty level
func DifficultyColor(d game.Difficulty) tcell.Color {
	if c, ok := difficultyColors[d]; ok {
		return c
	}
	return RgbText
}

// Base styles
var (
	styleDefault = tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText)
	styleBoard   = tcell.StyleDefault.Background(RgbBoard).Foreground(RgbText)
	styleBorder  = tcell.StyleDefault.Background(RgbBackground).Foreground(RgbBorder)
	styleDim     = tcell.StyleDefault.Background(RgbBackground).Foreground(RgbTextDim)
	styleOverlay = tcell.StyleDefault.Background(RgbOverlayBg).Foreground(RgbText)
	styleStatus  = tcell.StyleDefault.Background(RgbStatusBg).Foreground(RgbStatusFg)
)
