package tui

import "github.com/vovakirdan/neonflip/internal/config"

// helpLines is the number of terminal rows reserved below the playfield.
const helpLines = 1

// PlayfieldSize returns the cell area available to the game for a terminal
// of the given size.
func PlayfieldSize(cols, rows int) (w, h int) {
	return max(cols, 1), max(rows-helpLines, 1)
}

// WorldSize converts a playfield in cells to world units. The height is
// raised to the smallest world that still fits an obstacle pair, so a short
// terminal shows a compressed world instead of refusing to play.
func WorldSize(cfg config.NeonFlipConfig, cols, rows int) (w, h float32) {
	w = float32(max(cols, 1)) * cfg.Render.CellWidth
	h = float32(max(rows, 1)) * cfg.Render.CellHeight
	return w, max(h, cfg.MinWorldHeight())
}
