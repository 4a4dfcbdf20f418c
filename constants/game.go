package constants

import "time"

// Board Geometry
const (
	// BoardSize is the width and height of the square board in cells
	BoardSize = 20

	// BoardCapacity is the number of cells on the board
	BoardCapacity = BoardSize * BoardSize
)

// Initial Layout
const (
	InitialHeadX = 10
	InitialHeadY = 10
	InitialFoodX = 15
	InitialFoodY = 15
)

// Scoring
const (
	// FoodScore is added to the score for every food eaten
	FoodScore = 10

	// SpeedUpScoreStep is the score interval at which the tick period shrinks
	SpeedUpScoreStep = 50
)

// Tick Period Adjustment
const (
	// SpeedUpStep is subtracted from the tick period at each score step
	SpeedUpStep = 10 * time.Millisecond

	// SpeedUpLimit is how far below the base period the tick period may shrink
	SpeedUpLimit = 50 * time.Millisecond
)

// Difficulty Base Periods
const (
	PeriodEasy    = 200 * time.Millisecond
	PeriodNormal  = 150 * time.Millisecond
	PeriodHard    = 100 * time.Millisecond
	PeriodExtreme = 70 * time.Millisecond
)

// Food Placement
const (
	// FoodPlacementRetries caps random draws before switching to free-list selection
	FoodPlacementRetries = 64
)
