package game

import (
	"image/color"

	"tactics/internal/playback"
	"tactics/internal/solver"
)

// Feed colors, by event kind.
var (
	FeedColorPhase  = color.RGBA{160, 160, 200, 255}
	FeedColorHit    = color.RGBA{255, 255, 255, 255}
	FeedColorCrit   = color.RGBA{255, 200, 0, 255}
	FeedColorMiss   = color.RGBA{130, 130, 130, 255}
	FeedColorGuard  = color.RGBA{100, 180, 255, 255}
	FeedColorDamage = color.RGBA{255, 90, 90, 255}
	FeedColorHeal   = color.RGBA{90, 220, 120, 255}
	FeedColorStatus = color.RGBA{200, 120, 255, 255}
	FeedColorEnd    = color.RGBA{255, 255, 160, 255}
)

type feedLine struct {
	text  string
	color color.Color
}

// Feed is the scrolling list of combat messages shown under the arena.
// Sounds, shakes and tints are effects, not messages, and are left out.
type Feed struct {
	lines []feedLine
	max   int
}

func NewFeed(lines int) *Feed {
	if lines <= 0 {
		lines = 1
	}
	return &Feed{max: lines}
}

// Add appends the visible events of a batch.
func (f *Feed) Add(b solver.Batch) {
	for _, e := range b.Playback {
		c, ok := feedColor(e.Kind())
		if !ok {
			continue
		}
		f.lines = append(f.lines, feedLine{text: e.String(), color: c})
	}
	if over := len(f.lines) - f.max; over > 0 {
		f.lines = f.lines[over:]
	}
}

// Rebuild replaces the feed with the messages of batches.
func (f *Feed) Rebuild(batches []solver.Batch) {
	f.lines = f.lines[:0]
	for _, b := range batches {
		f.Add(b)
	}
}

func (f *Feed) Len() int { return len(f.lines) }

// Text returns the message on line i, oldest first.
func (f *Feed) Text(i int) string { return f.lines[i].text }

func feedColor(k playback.Kind) (color.Color, bool) {
	switch k {
	case playback.KindPhaseBegan:
		return FeedColorPhase, true
	case playback.KindMarkHit:
		return FeedColorHit, true
	case playback.KindMarkCrit:
		return FeedColorCrit, true
	case playback.KindMarkMiss:
		return FeedColorMiss, true
	case playback.KindMarkGuard:
		return FeedColorGuard, true
	case playback.KindDamageHit, playback.KindDamageCrit:
		return FeedColorDamage, true
	case playback.KindHealHit:
		return FeedColorHeal, true
	case playback.KindStatusApplied, playback.KindItemBroke:
		return FeedColorStatus, true
	case playback.KindCombatEnded:
		return FeedColorEnd, true
	}
	return nil, false
}
