package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Eva-Sense/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	logPanelWidth = 360
	logMaxEntries = 60
	logLineHeight = 15
)

// logFace is the bitmap face used for every panel in the viewer.
var logFace = text.NewGoXFace(basicfont.Face7x13)

// ThoughtEntry is a single line in the thought log.
type ThoughtEntry struct {
	Tick     int
	Label    string // kerbal label
	Category string // sim log category: mode, fsm, lifecycle
	Message  string
}

// ThoughtLog is a ring buffer of governor events rendered on-screen.
type ThoughtLog struct {
	entries []ThoughtEntry
	head    int
	count   int
}

// NewThoughtLog creates a thought log with a fixed capacity.
func NewThoughtLog() *ThoughtLog {
	return &ThoughtLog{
		entries: make([]ThoughtEntry, logMaxEntries),
	}
}

// Add appends an entry to the log.
func (tl *ThoughtLog) Add(tick int, label, category, msg string) {
	tl.entries[tl.head] = ThoughtEntry{
		Tick:     tick,
		Label:    label,
		Category: category,
		Message:  msg,
	}
	tl.head = (tl.head + 1) % logMaxEntries
	if tl.count < logMaxEntries {
		tl.count++
	}
}

// Ingest copies the interesting sim log entries into the thought log.
func (tl *ThoughtLog) Ingest(entries []sim.SimLogEntry) {
	for _, e := range entries {
		switch e.Category {
		case "mode", "lifecycle":
			tl.Add(e.Tick, e.Actor, e.Category, e.Value)
		case "fsm":
			msg := e.Value
			if e.Key == "recover" {
				msg = "getting up"
			}
			tl.Add(e.Tick, e.Actor, e.Category, msg)
		}
	}
}

// Recent returns entries in chronological order (oldest first).
func (tl *ThoughtLog) Recent() []ThoughtEntry {
	result := make([]ThoughtEntry, tl.count)
	for i := 0; i < tl.count; i++ {
		idx := (tl.head - tl.count + i + logMaxEntries) % logMaxEntries
		result[i] = tl.entries[idx]
	}
	return result
}

func categoryColor(cat string) color.RGBA {
	switch cat {
	case "mode":
		return color.RGBA{R: 90, G: 170, B: 240, A: 255}
	case "fsm":
		return color.RGBA{R: 230, G: 120, B: 60, A: 255}
	default:
		return color.RGBA{R: 150, G: 150, B: 150, A: 255}
	}
}

func drawText(dst *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, logFace, op)
}

// Draw renders the thought log panel on the right side of the screen.
func (tl *ThoughtLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 8, G: 10, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 18, color.RGBA{R: 18, G: 24, B: 36, A: 255}, false)
	drawText(screen, "GOVERNOR LOG", panelX+8, 3, color.White)
	vector.StrokeLine(screen, float32(panelX), 18, float32(panelX+logPanelWidth), 18, 1.0, color.RGBA{R: 50, G: 70, B: 100, A: 200}, false)

	entries := tl.Recent()

	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}

	visible := entries[startIdx:]
	recent := 3

	y := 22
	for i, e := range visible {
		isRecent := i >= len(visible)-recent
		if isRecent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 26, G: 32, B: 48, A: 160}, false)
		}

		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, categoryColor(e.Category), false)

		textCol := color.RGBA{R: 170, G: 170, B: 170, A: 255}
		if isRecent {
			textCol = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		line := fmt.Sprintf("%5d %-6s %s", e.Tick, e.Label, e.Message)
		drawText(screen, line, panelX+12, y, textCol)
		y += logLineHeight
	}
}
