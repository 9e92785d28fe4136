// Package game shows a combat in an ebiten window. The solver is stepped
// once per animation window; the arena applies each batch and the playback
// events drive the feed, screen shake and unit flashes.
package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"tactics/internal/character"
	"tactics/internal/combat"
	"tactics/internal/components"
	"tactics/internal/config"
	"tactics/internal/items"
	"tactics/internal/playback"
	"tactics/internal/solver"
)

var (
	ColorBackground = color.RGBA{20, 20, 30, 255}
	ColorPanel      = color.RGBA{40, 40, 60, 255}
	ColorText       = color.RGBA{230, 230, 230, 255}
	ColorDim        = color.RGBA{140, 140, 150, 255}
	ColorHP         = color.RGBA{80, 200, 90, 255}
	ColorHPLow      = color.RGBA{220, 70, 60, 255}
	ColorGauge      = color.RGBA{90, 150, 255, 255}
	ColorBarBack    = color.RGBA{15, 15, 20, 255}
)

const (
	tintFrames  = 12
	shakeFrames = 4 // per point of intensity
	panelWidth  = 400
	panelHeight = 150
	barWidth    = 300
	lineHeight  = 16
)

type tint struct {
	color  color.RGBA
	frames int
}

type Game struct {
	cfg   *config.Config
	arena *Arena
	feed  *Feed

	frames int
	paused bool
	shake  int
	tints  map[string]tint
	sound  string
	err    error
}

func NewGame(cfg *config.Config, arena *Arena) *Game {
	return &Game{
		cfg:   cfg,
		arena: arena,
		feed:  NewFeed(cfg.Arena.FeedLines),
		tints: make(map[string]tint),
	}
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.advance()
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		g.rewind()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.restart()
	}

	if !g.paused && !g.arena.Done() {
		g.frames++
		if g.frames >= g.cfg.GetStepFrames() {
			g.advance()
		}
	}
	g.tick()
	return g.err
}

func (g *Game) advance() {
	g.frames = 0
	b, ok := g.arena.Step()
	if !ok {
		return
	}
	g.feed.Add(b)
	g.play(b)
}

// play starts the effects a batch asks for.
func (g *Game) play(b solver.Batch) {
	for _, e := range b.Playback {
		switch ev := e.(type) {
		case playback.HitSound:
			g.sound = ev.Sound
		case playback.ScreenShake:
			g.shake = ev.Intensity * shakeFrames
		case playback.UnitTint:
			if c, ok := parseHex(ev.Color); ok {
				g.tints[ev.Unit] = tint{color: c, frames: tintFrames}
			}
		}
	}
}

func (g *Game) rewind() {
	if err := g.arena.Rewind(); err != nil {
		g.err = err
		return
	}
	g.paused = true
	g.resetEffects()
}

func (g *Game) restart() {
	if err := g.arena.Restart(); err != nil {
		g.err = err
		return
	}
	g.resetEffects()
}

func (g *Game) resetEffects() {
	g.frames = 0
	g.shake = 0
	g.sound = ""
	g.tints = make(map[string]tint)
	g.feed.Rebuild(g.arena.Batches())
}

func (g *Game) tick() {
	if g.shake > 0 {
		g.shake--
	}
	for id, t := range g.tints {
		t.frames--
		if t.frames <= 0 {
			delete(g.tints, id)
			continue
		}
		g.tints[id] = t
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)

	dx := 0
	if g.shake > 0 {
		dx = (g.shake%2)*6 - 3
	}

	g.drawTitle(screen)

	enc := g.arena.Encounter()
	w := g.cfg.GetScreenWidth()
	g.drawUnit(screen, enc.Attacker, enc.Item, enc.Defender, g.arena.DefenderItem(), 40+dx, 50)
	if enc.Defender != nil {
		g.drawUnit(screen, enc.Defender, g.arena.DefenderItem(), enc.Attacker, enc.Item, w-40-panelWidth+dx, 50)
	}

	g.drawFeed(screen, 40, 50+panelHeight+30)
	g.drawStatus(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.GetScreenWidth(), g.cfg.GetScreenHeight()
}

func (g *Game) drawTitle(screen *ebiten.Image) {
	title := g.cfg.Display.WindowTitle
	face := basicfont.Face7x13
	x := (g.cfg.GetScreenWidth() - font.MeasureString(face, title).Round()) / 2
	drawText(screen, title, x, 16, ColorText)
}

// drawUnit draws a unit panel with its forecast against the opponent.
func (g *Game) drawUnit(screen *ebiten.Image, u *character.Unit, it *items.Item, foe *character.Unit, foeItem *items.Item, x, y int) {
	bg := color.Color(ColorPanel)
	if t, ok := g.tints[u.ID]; ok {
		bg = t.color
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), panelWidth, panelHeight, bg, false)

	nameColor := color.Color(ColorText)
	if !u.Alive() {
		nameColor = ColorDim
	}
	drawText(screen, u.String(), x+12, y+10, nameColor)
	drawText(screen, it.String(), x+12, y+10+lineHeight, ColorDim)

	drawBar(screen, x+12, y+48, u.HP, u.MaxHP(), hpColor(u))
	drawText(screen, fmt.Sprintf("HP %d/%d", u.HP, u.MaxHP()), x+barWidth+20, y+44, ColorText)

	if u.Paired() {
		full := g.arena.Context().Constants.GuardGaugeMax
		drawBar(screen, x+12, y+66, u.Gauge, full, ColorGauge)
		drawText(screen, fmt.Sprintf("Guard %d/%d", u.Gauge, full), x+barWidth+20, y+62, ColorText)
		p := u.StrikePartner
		drawText(screen, fmt.Sprintf("Partner: %s  HP %d/%d", p, p.HP, p.MaxHP()), x+12, y+84, ColorDim)
	}

	drawText(screen, g.forecast(u, it, foe, foeItem), x+12, y+panelHeight-24, ColorText)
}

// forecast is the usual HIT/DMG/CRIT preview, with x2 for doubling.
func (g *Game) forecast(u *character.Unit, it *items.Item, foe *character.Unit, foeItem *items.Item) string {
	if it == nil {
		return "--"
	}
	mode := components.ModeAttack
	if u != g.arena.Encounter().Attacker {
		mode = components.ModeDefense
	}
	q := components.Query{Ctx: g.arena.Context(), Unit: u, Item: it, Target: foe, TargetItem: foeItem, Mode: mode}

	hit := "--"
	if h, ok := combat.ComputeHit(q); ok && h != combat.AlwaysHit {
		hit = fmt.Sprint(h)
	}
	dmg := "--"
	if d, ok := combat.ComputeDamage(q, components.OutcomeHit); ok {
		dmg = fmt.Sprint(d)
	}
	crit := "--"
	if c, ok := combat.ComputeCrit(q); ok {
		crit = fmt.Sprint(c)
	}
	s := fmt.Sprintf("HIT %s  DMG %s  CRIT %s", hit, dmg, crit)
	if combat.Outspeed(q) == 2 {
		s += "  x2"
	}
	return s
}

func (g *Game) drawFeed(screen *ebiten.Image, x, y int) {
	for i := 0; i < g.feed.Len(); i++ {
		drawText(screen, g.feed.lines[i].text, x, y+i*lineHeight, g.feed.lines[i].color)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	h := g.cfg.GetScreenHeight()
	state := "running"
	switch {
	case g.arena.Done():
		state = "finished"
	case g.paused:
		state = "paused"
	}
	status := fmt.Sprintf("%s  batch %d  [Space] step  [Backspace] rewind  [P] pause  [R] restart  [Esc] quit",
		state, len(g.arena.Batches()))
	drawText(screen, status, 40, h-24, ColorDim)
	if g.sound != "" {
		drawText(screen, "sound: "+g.sound, g.cfg.GetScreenWidth()-240, h-24, ColorDim)
	}
}

func hpColor(u *character.Unit) color.Color {
	if u.HP*4 <= u.MaxHP() {
		return ColorHPLow
	}
	return ColorHP
}

func drawBar(screen *ebiten.Image, x, y, value, full int, fill color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), barWidth, 10, ColorBarBack, false)
	if full <= 0 || value <= 0 {
		return
	}
	w := float32(barWidth) * float32(value) / float32(full)
	vector.DrawFilledRect(screen, float32(x), float32(y), w, 10, fill, false)
}

func drawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	face := basicfont.Face7x13
	ebitext.Draw(screen, s, face, x, y+face.Ascent, clr)
}

// parseHex reads "#rrggbb".
func parseHex(s string) (color.RGBA, bool) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, false
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{r, g, b, 255}, true
}
