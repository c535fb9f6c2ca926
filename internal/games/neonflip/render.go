package neonflip

import (
	"fmt"
	"math"

	"github.com/vovakirdan/neonflip/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '█'
	PlayerUpChar  = '▲'
	PlayerDnChar  = '▼'
	ObstacleChar  = '▓'
	ObstacleEdge  = '█'
	ScoreTemplate = " Score: %d  Best: %d  Gravity: %s "
)

// Render draws a snapshot onto the screen, scaling world units to cells so
// the whole world fits. Rendering reads only the snapshot.
func Render(dst *core.Screen, u GameUpdate, worldW, worldH float32) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 || worldW <= 0 || worldH <= 0 {
		return
	}

	sx := float32(dst.Width()) / worldW
	sy := float32(dst.Height()) / worldH

	for _, o := range u.Obstacles {
		r := toCells(o.Box(), sx, sy)
		dst.DrawRect(r, ObstacleChar, core.ColorMagenta)
		// Bright edge facing the gap
		if o.Y == 0 {
			dst.DrawHLine(r.X, r.Bottom()-1, r.W, ObstacleEdge, core.ColorBrightMagenta)
		} else {
			dst.DrawHLine(r.X, r.Y, r.W, ObstacleEdge, core.ColorBrightMagenta)
		}
	}

	pr := toCells(u.Player.Box(), sx, sy)
	dst.DrawRect(pr, PlayerChar, core.ColorBrightCyan)
	arrow := PlayerDnChar
	if u.Gravity == GravityUp {
		arrow = PlayerUpChar
	}
	dst.Set(pr.X+pr.W/2, pr.Y+pr.H/2, arrow, core.ColorCyan)

	dst.DrawText(1, 0, fmt.Sprintf(ScoreTemplate, u.Score, u.HighScore, u.Gravity), core.ColorBrightWhite)

	switch u.State {
	case StatePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case StateGameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", u.Score))
	case StateMenu:
		drawCenteredMessage(dst, Title, "Press Space to start")
	}
}

// toCells converts a world box to the smallest cell rectangle covering it,
// never narrower than one cell.
func toCells(b core.Box, sx, sy float32) core.Rect {
	x0 := int(math.Floor(float64(b.X * sx)))
	y0 := int(math.Floor(float64(b.Y * sy)))
	x1 := int(math.Ceil(float64(b.Right() * sx)))
	y1 := int(math.Ceil(float64(b.Bottom() * sy)))
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightCyan)

	dst.DrawTextCentered(boxY+1, title, core.ColorBrightMagenta)
	dst.DrawTextCentered(boxY+3, subtitle, core.ColorBrightWhite)
}
