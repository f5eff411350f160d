package escape

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/punch-escape/internal/core"
)

// Visual characters for rendering
const (
	bodyChar   = '█'
	slideChar  = '▄'
	groundChar = '▀'
	dirtChar   = '░'
	vineChar   = '│'
	leafChar   = '❦'
	rockChar   = '▓'
	arrowUp    = '▲'
	arrowDown  = '▼'
)

var villainColors = map[string]core.Color{
	"slider":   core.ColorBrightRed,
	"jumper":   core.ColorOrange,
	"rock":     core.ColorGray,
	"peel":     core.ColorBrightYellow,
	"bigbobo":  core.ColorOrange,
	"twintrap": core.ColorPink,
	"boulder":  core.ColorGray,
	"spike":    core.ColorRed,
	"vine":     core.ColorGreen,
	"swinger":  core.ColorMagenta,
}

var gemColors = map[string]core.Color{
	"coin":    core.ColorYellow,
	"banana":  core.ColorBrightYellow,
	"ruby":    core.ColorBrightRed,
	"heart":   core.ColorRed,
	"star":    core.ColorYellow,
	"magnet":  core.ColorPink,
	"orb":     core.ColorBrightMagenta,
	"diamond": core.ColorBrightCyan,
}

// themes give each level's ground its own colour and skyline glyph.
var themes = map[string]struct {
	ground core.Color
	deco   rune
}{
	"zoo":      {core.ColorBrown, '♣'},
	"bamboo":   {core.ColorGreen, '┃'},
	"river":    {core.ColorBlue, '≈'},
	"ruins":    {core.ColorBrown, '▟'},
	"mushroom": {core.ColorMagenta, '♠'},
	"cave":     {core.ColorBlue, '◢'},
	"volcano":  {core.ColorRed, '▲'},
	"moon":     {core.ColorGray, '☾'},
	"storm":    {core.ColorCyan, 'ϟ'},
	"final":    {core.ColorYellow, '★'},
}

// Render draws the current frame into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.phase == PhaseIdle {
		g.drawTitle(dst)
		return
	}

	g.drawBackdrop(dst)
	for _, o := range g.session.Obstacles {
		g.drawObstacle(dst, o)
	}
	for _, c := range g.session.Gems {
		g.drawGem(dst, c)
	}
	g.drawPlayer(dst)
	g.drawArrows(dst)
	for _, p := range g.ui.pops {
		dst.DrawTextColored(cell(p.x), cell(p.y), p.text, core.ColorBrightYellow)
	}
	g.drawHUD(dst)
	g.drawOverlays(dst)
}

func cell(v float64) int { return int(math.Floor(v)) }

func (g *Game) drawBackdrop(dst *core.Screen) {
	lc := g.cfg.Level(g.session.Level)
	th, ok := themes[lc.Theme]
	if !ok {
		th = themes["zoo"]
	}
	gy := cell(g.canvas.Ground(g.cfg.Player))
	dst.DrawHLine(0, gy, dst.Width(), groundChar, th.ground)
	for y := gy + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), dirtChar, th.ground)
	}
	// skyline scrolls at half the track speed
	const spacing = 11
	off := int(g.scroll*0.5) % spacing
	for x := spacing - off; x < dst.Width(); x += spacing {
		dst.SetColored(x, gy-1, th.deco, core.ColorGray)
	}
}

func (g *Game) drawPlayer(dst *core.Screen) {
	t := g.session.Timers
	if t.HitCooldown > 0 && int(t.HitCooldown*10)%2 == 0 {
		return
	}
	color := core.ColorBrown
	switch {
	case t.Invincibility > 0:
		color = core.ColorBrightMagenta
	case t.Grace > 0 && g.phase == PhasePlaying:
		color = core.ColorBrightCyan
	}

	b := g.player.Body(g.canvas, g.cfg.Player)
	x0, y0 := cell(b.X), cell(b.Y)
	x1, y1 := cell(b.Right()), cell(b.Bottom())
	if y1 <= y0 {
		y1 = y0 + 1
	}
	ch := bodyChar
	if g.player.Sliding {
		ch = slideChar
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetColored(x, y, ch, color)
		}
	}
	if !g.player.Sliding && x1-x0 >= 3 {
		dst.SetColored(x0+1, y0, 'o', core.ColorBrightWhite)
		dst.SetColored(x1-1, y0, 'o', core.ColorBrightWhite)
	}
	if g.player.OnGround() && !g.player.Sliding {
		legs := []string{"╱╲", "││", "╲╱", "││"}[g.player.LegFrame]
		dst.DrawTextColored(x0+(x1-x0-2)/2, y1-1, legs, color)
	}
}

func (g *Game) drawObstacle(dst *core.Screen, o *Obstacle) {
	color, ok := villainColors[o.Villain.ID]
	if !ok {
		color = core.ColorWhite
	}
	x0, x1 := cell(o.X), cell(o.X+o.W)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if o.Villain.Duck {
		tip := cell(o.BaseY)
		band := cell(o.BaseY - o.H*g.cfg.Collision.DuckBand)
		mid := (x0 + x1) / 2
		for y := 1; y < tip; y++ {
			r := vineChar
			if y >= band {
				r = leafChar
			}
			dst.SetColored(mid, y, r, color)
		}
		return
	}
	base := o.DrawY()
	top := cell(base - o.H)
	bottom := cell(base)
	for y := top; y < bottom; y++ {
		for x := x0; x < x1; x++ {
			dst.SetColored(x, y, rockChar, color)
		}
	}
	dst.DrawTextColored(x0, top, strings.Repeat("▄", x1-x0), color)
}

func (g *Game) drawGem(dst *core.Screen, c *Collectible) {
	color, ok := gemColors[c.Gem.ID]
	if !ok {
		color = core.ColorYellow
	}
	bob := math.Sin(c.Age*4) * c.R * 0.4
	r, _ := utf8.DecodeRuneInString(c.Gem.Glyph)
	dst.SetColored(cell(c.X), cell(c.Y+bob), r, color)
}

// drawArrows points at the lesson obstacles the player has not passed yet.
func (g *Game) drawArrows(dst *core.Screen) {
	if !g.tutorial.Active {
		return
	}
	for _, o := range g.session.Obstacles {
		if !o.Tutorial || o.Passed {
			continue
		}
		x := cell(o.X + o.W/2)
		if o.Villain.Duck {
			dst.SetColored(x+1, cell(o.BaseY), arrowDown, core.ColorBrightYellow)
			continue
		}
		dst.SetColored(x, cell(o.BaseY-o.H)-1, arrowUp, core.ColorBrightYellow)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.session
	lc := g.cfg.Level(s.Level)
	hearts := strings.Repeat("♥", max(s.Lives, 0))
	dst.DrawTextColored(1, 0, hearts, core.ColorBrightRed)

	bar := progressBar(s.Beaten, s.Needed, 10)
	left := fmt.Sprintf(" LVL %d %s %s %d/%d", s.Level, lc.Name, bar, s.Beaten, s.Needed)
	dst.DrawText(1+utf8.RuneCountInString(hearts), 0, left)

	right := fmt.Sprintf("◆ %d  %s ", s.GemsCollected, thousands(s.Score))
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(right), 0, right, core.ColorBrightYellow)

	var badges []string
	if s.Timers.Invincibility > 0 {
		badges = append(badges, fmt.Sprintf("IMMUNE %.0f", math.Ceil(s.Timers.Invincibility)))
	}
	if s.Timers.Magnet > 0 {
		badges = append(badges, fmt.Sprintf("MAGNET %.0f", math.Ceil(s.Timers.Magnet)))
	}
	if s.Timers.Grace > 0 && g.phase == PhasePlaying {
		badges = append(badges, fmt.Sprintf("SAFE %.0f", math.Ceil(s.Timers.Grace)))
	}
	if s.Timers.Boost > 0 {
		badges = append(badges, "BOOST")
	}
	if s.Dev {
		badges = append(badges, "DEV")
	}
	if g.audio.Muted() {
		badges = append(badges, "♪ off")
	}
	if len(badges) > 0 {
		text := strings.Join(badges, " · ")
		dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(text)-1, 1, text, core.ColorCyan)
	}
}

func progressBar(done, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	n := core.Clamp(done*width/total, 0, width)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func (g *Game) drawOverlays(dst *core.Screen) {
	h := dst.Height()
	if l := g.ui.lesson; l != nil {
		dst.DrawTextCentered(3, l.Icon+"  "+l.Text, core.ColorBrightWhite)
		if l.Hint != "" {
			dst.DrawTextCentered(4, "[ "+l.Hint+" ]", core.ColorYellow)
		}
	}
	if b := g.ui.banner; b != nil {
		dst.DrawTextCentered(5, b.Text, core.ColorBrightMagenta)
	}
	if t := g.ui.toast; t != nil {
		lines := []string{t.Title, t.Text}
		if t.Detail != "" {
			lines = append(lines, t.Detail)
		}
		if t.Hint != "" {
			lines = append(lines, t.Hint)
		}
		drawCenteredMessage(dst, core.ColorBrightYellow, lines...)
	}
	if g.ui.countdown != "" {
		dst.DrawTextCentered(h/2-2, g.ui.countdown, core.ColorBrightYellow)
	}
	if g.phase == PhasePaused && !g.resuming {
		drawCenteredMessage(dst, core.ColorBrightWhite,
			"PAUSED", "P resume  ·  R restart  ·  B give up")
	}
	if f := g.ui.final; f != nil {
		keys := "ENTER new run  ·  Q quit"
		if g.phase == PhaseOver && g.session.Lives > 0 {
			keys = "ENTER continue  ·  R restart  ·  Q quit"
		}
		best := fmt.Sprintf("Score %s  ·  Best %s  ·  Best level %d",
			thousands(g.session.Score), thousands(g.best.Score), g.best.Level)
		drawCenteredMessage(dst, core.ColorBrightRed, f.Title, f.Text, best, f.Detail, keys)
	}
}

func (g *Game) drawTitle(dst *core.Screen) {
	drawCenteredMessage(dst, core.ColorBrightYellow,
		"PUNCH'S GREAT ESCAPE",
		"Run, jump and slide through 10 levels to the plushie!",
		fmt.Sprintf("Best %s  ·  Level %d  ·  Plays %d", thousands(g.best.Score), g.best.Level, g.best.Plays),
		"ENTER start  ·  M music  ·  Q quit")
}

// drawCenteredMessage draws a framed box of lines in the middle of the screen.
func drawCenteredMessage(dst *core.Screen, c core.Color, lines ...string) {
	w, h := dst.Width(), dst.Height()
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, utf8.RuneCountInString(l))
	}
	boxW = min(boxW+4, w)
	boxH := len(lines) + 2
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	r := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, c)
	for i, l := range lines {
		x := boxX + (boxW-utf8.RuneCountInString(l))/2
		color := core.ColorWhite
		if i == 0 {
			color = c
		}
		dst.DrawTextColored(x, boxY+1+i, l, color)
	}
}
