package render

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/game"
)

// Renderer draws session frames onto a tcell screen
// Present runs on the session goroutine, Redraw on the main loop
type Renderer struct {
	screen tcell.Screen

	mu        sync.Mutex
	frame     engine.Frame
	hasFrame  bool
	status    string
	statusSeq uint64
	statusAt  time.Time
	now       func() time.Time
}

// NewRenderer creates a renderer for an initialized screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, now: time.Now}
}

// Present stores the frame and draws it
func (r *Renderer) Present(f engine.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frame = f
	r.hasFrame = true
	if f.Status != "" && (f.Status != r.status || f.StatusSeq != r.statusSeq) {
		r.statusAt = r.now()
	}
	r.status = f.Status
	r.statusSeq = f.StatusSeq
	r.draw()
}

// Redraw repaints the last frame, used on resize and to expire status messages
func (r *Renderer) Redraw() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasFrame {
		r.draw()
	}
}

func (r *Renderer) draw() {
	s := r.screen
	s.Fill(' ', styleDefault)

	w, h := s.Size()
	if w < MinWidth || h < MinHeight {
		msg := fmt.Sprintf("Terminal too small: need %dx%d", MinWidth, MinHeight)
		drawText(s, 0, 0, styleDefault, msg)
		s.Show()
		return
	}

	snap := &r.frame.Snapshot

	r.drawHeader(snap)
	r.drawBoard(snap)
	r.drawPanel(snap)

	switch {
	case r.frame.SettingsOpen:
		r.drawSettings(snap)
	case snap.Over:
		r.drawGameOver(snap)
	case !snap.Running && snap.Score == 0 && len(snap.Snake) == 1:
		r.drawMessage("Press Space or Enter to start")
	case !snap.Running:
		r.drawMessage("Paused", "Space to resume")
	}

	if r.status != "" && r.now().Sub(r.statusAt) < constants.StatusMessageTimeout {
		drawText(s, constants.BoardOriginX, statusY, styleStatus, " "+r.status+" ")
	}

	s.Show()
}

func (r *Renderer) drawHeader(snap *game.Snapshot) {
	s := r.screen
	x := constants.BoardOriginX

	drawText(s, x, titleY, styleDefault.Bold(true), "vi-snake")

	x = drawText(s, x, scoreBoardY, styleDim, "Score: ")
	x = drawText(s, x, scoreBoardY, styleDefault.Foreground(RgbScore), fmt.Sprintf("%-6d", snap.Score))
	x = drawText(s, x, scoreBoardY, styleDim, "High: ")
	x = drawText(s, x, scoreBoardY, styleDefault.Foreground(RgbHighScore), fmt.Sprintf("%-6d", snap.HighScore))
	x = drawText(s, x, scoreBoardY, styleDim, "Speed: ")
	drawText(s, x, scoreBoardY, styleDefault.Foreground(RgbSpeed), fmt.Sprintf("%d", snap.Speed))
}

func (r *Renderer) drawBoard(snap *game.Snapshot) {
	s := r.screen

	drawBox(s, constants.BoardOriginX, constants.BoardOriginY, boardWidth, boardHeight, styleBorder, styleBoard)

	food := styleBoard.Foreground(RgbFood)
	r.drawCell(snap.Food, '█', food)

	body := styleBoard.Foreground(RgbSnakeBody)
	head := styleBoard.Foreground(RgbSnakeHead)
	if snap.Over {
		body = styleBoard.Foreground(RgbSnakeDead)
		head = styleBoard.Foreground(RgbGameOver)
	}
	// Tail first so the head is drawn last
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			r.drawCell(snap.Snake[i], '█', head)
		} else {
			r.drawCell(snap.Snake[i], '▓', body)
		}
	}
}

// drawCell fills every terminal column of a board cell
func (r *Renderer) drawCell(c game.Cell, ch rune, style tcell.Style) {
	if !c.InBounds() {
		return
	}
	x, y := CellOrigin(c)
	for i := 0; i < constants.CellWidth; i++ {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Renderer) drawPanel(snap *game.Snapshot) {
	s := r.screen
	y := constants.BoardOriginY

	x := drawText(s, panelX, y, styleDim, "Difficulty: ")
	drawText(s, x, y, styleDefault.Foreground(DifficultyColor(snap.Difficulty)), snap.Difficulty.String())
	y++

	sound := "off"
	if snap.SoundEnabled {
		sound = "on"
	}
	x = drawText(s, panelX, y, styleDim, "Sound: ")
	drawText(s, x, y, styleDefault, sound)
	y += 2

	drawText(s, panelX, y, styleDefault.Bold(true), "Controls")
	y++
	for _, line := range controlLines {
		drawText(s, panelX, y, styleDim, line)
		y++
	}
	y++

	drawText(s, panelX, y, styleDefault.Bold(true), "How to play")
	y++
	for _, line := range instructionLines {
		drawText(s, panelX, y, styleDim, line)
		y++
	}
}

var controlLines = []string{
	"arrows/hjkl  steer",
	"space        pause/resume",
	"enter        start",
	"p            pause",
	"r            restart",
	"m            sound on/off",
	"s            settings",
	"1-4          difficulty",
	"q/esc        quit",
}

var instructionLines = []string{
	"Each food is worth 10 points",
	"Speed rises every 50 points",
	"Walls and your body are fatal",
	"High score is saved",
}

// drawMessage shows a centered box over the board
func (r *Renderer) drawMessage(lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	width += 4
	height := len(lines) + 2

	x := constants.BoardOriginX + (boardWidth-width)/2
	y := constants.BoardOriginY + (boardHeight-height)/2
	drawBox(r.screen, x, y, width, height, styleOverlay, styleOverlay)

	for i, l := range lines {
		drawText(r.screen, centered(x, width, l), y+1+i, styleOverlay, l)
	}
}

func (r *Renderer) drawGameOver(snap *game.Snapshot) {
	s := r.screen

	lines := []string{"GAME OVER", fmt.Sprintf("Final score: %d", snap.Score)}
	record := snap.NewRecord && snap.Score > 0
	if record {
		lines = append(lines, "New record!")
	}
	lines = append(lines, "Space or Enter to restart")
	r.drawMessage(lines...)

	// Recolor the headline and record line
	width := len("Space or Enter to restart") + 4
	x := constants.BoardOriginX + (boardWidth-width)/2
	y := constants.BoardOriginY + (boardHeight-len(lines)-2)/2
	drawText(s, centered(x, width, lines[0]), y+1, styleOverlay.Foreground(RgbGameOver).Bold(true), lines[0])
	if record {
		drawText(s, centered(x, width, lines[2]), y+3, styleOverlay.Foreground(RgbRecord), lines[2])
	}
}

func (r *Renderer) drawSettings(snap *game.Snapshot) {
	s := r.screen

	const width = 34
	levels := game.Difficulties()
	height := len(levels) + 6

	x := constants.BoardOriginX + (boardWidth-width)/2
	y := constants.BoardOriginY + (boardHeight-height)/2
	drawBox(s, x, y, width, height, styleOverlay, styleOverlay)

	drawText(s, centered(x, width, "Settings"), y+1, styleOverlay.Bold(true), "Settings")
	for i, d := range levels {
		marker := "  "
		if d == snap.Difficulty {
			marker = "> "
		}
		line := fmt.Sprintf("%s%d  %-8s speed %d", marker, i+1, d.String(), d.SpeedLabel())
		drawText(s, x+2, y+3+i, styleOverlay.Foreground(DifficultyColor(d)), line)
	}
	drawText(s, x+2, y+height-2, styleOverlay.Foreground(RgbTextDim), "enter/s/esc to close")
}
