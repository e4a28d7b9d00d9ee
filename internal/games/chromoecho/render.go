package chromoecho

import (
	"fmt"
	"math"

	"github.com/vovakirdan/chromoecho/internal/core"
	"github.com/vovakirdan/chromoecho/internal/games/chromoecho/timeline"
)

const hudHeight = 4

// Map glyphs.
const (
	glyphWall     = '#'
	glyphFloor    = '.'
	glyphPlate    = 'o'
	glyphPlateOn  = 'O'
	glyphExit     = 'X'
	glyphTerminal = 'T'
	glyphPlayer   = '@'
	glyphTrail    = ':'
	glyphGuard    = 'G'
	glyphCone     = '\''
)

// layout maps level tiles to screen cells.
type layout struct {
	cellW, cellH int
	offX, offY   int
}

// computeLayout uses 4x2 cells per tile when the level fits the area below
// the HUD, else 2x1.
func computeLayout(l timeline.Level, screenW, screenH int) (layout, bool) {
	availH := screenH - hudHeight - 1
	lay := layout{cellW: 4, cellH: 2}
	if l.Width*lay.cellW > screenW || l.Height*lay.cellH > availH {
		lay = layout{cellW: 2, cellH: 1}
	}
	w, h := l.Width*lay.cellW, l.Height*lay.cellH
	if w > screenW || h > availH {
		return lay, false
	}
	lay.offX = (screenW - w) / 2
	lay.offY = hudHeight + (availH-h)/2
	return lay, true
}

// cellOf returns the screen cell containing a world position.
func (lay layout) cellOf(p core.Vec) (int, int) {
	return lay.offX + int(math.Floor(p.X*float64(lay.cellW))),
		lay.offY + int(math.Floor(p.Y*float64(lay.cellH)))
}

// center returns the world position at the middle of a screen cell.
func (lay layout) center(x, y int) core.Vec {
	return core.V(
		(float64(x-lay.offX)+0.5)/float64(lay.cellW),
		(float64(y-lay.offY)+0.5)/float64(lay.cellH),
	)
}

func (lay layout) fillTile(dst *core.Screen, t core.Tile, r rune, c core.Color) {
	dst.FillRect(core.NewRect(lay.offX+t.X*lay.cellW, lay.offY+t.Y*lay.cellH, lay.cellW, lay.cellH), r, c)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		g.renderOverlay(dst, "No levels found", errText(g.loadErr))
		return
	}

	snap := g.session.Snapshot()
	g.renderHUD(dst, snap)

	lay, ok := computeLayout(g.level.Level, dst.Width(), dst.Height())
	if !ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderMap(dst, lay, snap)
	renderObjects(dst, lay, snap)
	renderSelves(dst, lay, snap)

	switch snap.State {
	case timeline.SessionComplete:
		line2 := "Press R to replay"
		if g.HasNextLevel() {
			line2 = "Enter: next level | R: replay"
		}
		g.renderOverlay(dst, fmt.Sprintf("Heist complete! Score %d", g.score), line2)
	case timeline.SessionParadox:
		g.renderOverlay(dst, "PARADOX! You met your echo", "Press R to restart")
	case timeline.SessionDetected:
		g.renderOverlay(dst, "Detected by a guard", "Press R to restart")
	case timeline.SessionFailed:
		g.renderOverlay(dst, "Out of loops", "Press R to restart")
	case timeline.SessionPaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen, snap timeline.Snapshot) {
	hud := fmt.Sprintf(" ChromoEcho | %s | Loop %d/%d | %4.1fs | Echoes: %d",
		g.level.Name, snap.Loop, snap.MaxLoops, snap.Remaining.Seconds(), len(snap.Ghosts))
	dst.DrawTextColor(0, 0, hud, core.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetCell(x, 1, '─', core.ColorGray)
		dst.SetCell(x, 3, '─', core.ColorGray)
	}

	if hint := g.hint(snap); hint != "" {
		dst.DrawTextColor(0, 2, " "+hint, core.ColorYellow)
	} else {
		dst.DrawTextColor(0, 2, " WASD/←↑→↓: Move | Space: Hack | R: End loop | P: Pause", core.ColorGray)
	}
}

// hint picks the tutorial text for the current loop.
func (g *Game) hint(snap timeline.Snapshot) string {
	t := g.level.Tutorial
	switch {
	case snap.Loop == 1 && t.Start != "":
		return t.Start
	case snap.Loop == 2 && t.Loop2 != "":
		return t.Loop2
	default:
		return t.Hint
	}
}

func (g *Game) renderMap(dst *core.Screen, lay layout, snap timeline.Snapshot) {
	l := g.level.Level
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			t := core.T(x, y)
			if l.IsWall(t) {
				lay.fillTile(dst, t, glyphWall, core.ColorGray)
			} else {
				lay.fillTile(dst, t, glyphFloor, core.ColorDarkGray)
			}
		}
	}

	if len(snap.Guards) == 0 {
		return
	}
	for y := lay.offY; y < lay.offY+l.Height*lay.cellH; y++ {
		for x := lay.offX; x < lay.offX+l.Width*lay.cellW; x++ {
			p := lay.center(x, y)
			if l.IsWall(core.TileAt(p)) {
				continue
			}
			if c, ok := coneColor(snap.Guards, p); ok {
				dst.SetCell(x, y, glyphCone, c)
			}
		}
	}
}

// coneColor reports whether p lies in any guard's cone and how to shade it.
// An alerted guard's cone wins over a calm one.
func coneColor(guards []timeline.GuardView, p core.Vec) (core.Color, bool) {
	covered := false
	for _, gv := range guards {
		if !gv.Covers(p) {
			continue
		}
		if gv.Alert {
			return core.ColorConeAlert, true
		}
		covered = true
	}
	return core.ColorCone, covered
}

func renderObjects(dst *core.Screen, lay layout, snap timeline.Snapshot) {
	for _, p := range snap.Plates {
		if p.Active {
			lay.fillTile(dst, p.Tile, glyphPlateOn, core.ColorBrightGreen)
		} else {
			lay.fillTile(dst, p.Tile, glyphPlate, core.ColorGreen)
		}
	}
	for _, d := range snap.Doors {
		switch {
		case !d.Blocking:
			lay.fillTile(dst, d.Tile, ' ', core.ColorDefault)
		case d.Orientation == timeline.Horizontal:
			lay.fillTile(dst, d.Tile, '-', core.ColorYellow)
		default:
			lay.fillTile(dst, d.Tile, '|', core.ColorYellow)
		}
	}
	for _, t := range snap.Terminals {
		c := core.ColorCyan
		switch {
		case t.Hacked:
			c = core.ColorBrightGreen
		case t.Progress > 0:
			c = core.ColorYellow
		}
		lay.fillTile(dst, t.Tile, glyphTerminal, c)
	}
	for _, e := range snap.Exits {
		c := core.ColorBrightMagenta
		if math.Sin(e.Phase*math.Pi) < 0 {
			c = core.ColorMagenta
		}
		lay.fillTile(dst, e.Tile, glyphExit, c)
	}
}

func renderSelves(dst *core.Screen, lay layout, snap timeline.Snapshot) {
	for _, gh := range snap.Ghosts {
		for _, tp := range gh.Trail {
			x, y := lay.cellOf(tp.Pos)
			dst.SetCell(x, y, glyphTrail, core.ColorEcho)
		}
	}
	for _, tp := range snap.Player.Trail {
		x, y := lay.cellOf(tp.Pos)
		dst.SetCell(x, y, glyphTrail, core.ColorWhite)
	}

	for _, gh := range snap.Ghosts {
		x, y := lay.cellOf(gh.Pos)
		c := core.ColorEcho
		if gh.Alpha >= 0.5 {
			c = core.ColorBrightCyan
		}
		dst.SetCell(x, y, ghostGlyph(gh.LoopIndex), c)
	}

	for _, gv := range snap.Guards {
		x, y := lay.cellOf(gv.Pos)
		c := core.ColorRed
		if gv.Alert {
			c = core.ColorBrightRed
		}
		dst.SetCell(x, y, glyphGuard, c)
	}

	x, y := lay.cellOf(snap.Player.Pos)
	c := core.ColorBrightWhite
	if snap.Player.Interacting {
		c = core.ColorBrightYellow
	}
	dst.SetCell(x, y, glyphPlayer, c)
}

// ghostGlyph labels a ghost with the loop it was recorded in.
func ghostGlyph(loopIndex int) rune {
	if loopIndex >= 0 && loopIndex < 9 {
		return rune('1' + loopIndex)
	}
	return '*'
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH && y < h; y++ {
		for x := boxX; x < boxX+boxW && x < w; x++ {
			if x < 0 || y < 0 {
				continue
			}
			isTopOrBottom := y == boxY || y == boxY+boxH-1
			isLeftOrRight := x == boxX || x == boxX+boxW-1
			switch {
			case isTopOrBottom && isLeftOrRight:
				dst.SetCell(x, y, '+', core.ColorWhite)
			case isTopOrBottom:
				dst.SetCell(x, y, '-', core.ColorWhite)
			case isLeftOrRight:
				dst.SetCell(x, y, '|', core.ColorWhite)
			default:
				dst.SetCell(x, y, ' ', core.ColorDefault)
			}
		}
	}

	dst.DrawTextCentered(boxY+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(boxY+3, line2, core.ColorGray)
}

func errText(err error) string {
	if err == nil {
		return "Check the levels directory"
	}
	return err.Error()
}
