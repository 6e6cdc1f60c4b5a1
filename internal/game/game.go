package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Garsondee/Eva-Sense/internal/config"
	"github.com/Garsondee/Eva-Sense/internal/locomotion"
	"github.com/Garsondee/Eva-Sense/internal/nav"
	"github.com/Garsondee/Eva-Sense/internal/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
)

const (
	// borderWidth is the pixel gap between the window edge and the playfield.
	borderWidth = 16
	playW       = 1240
	playH       = 868

	kerbalRadius = 0.6 // metres, for drawing and click picking
)

// Game is the ebiten front end over a headless sim.
type Game struct {
	width      int
	height     int
	gameWidth  int
	gameHeight int
	offX       int
	offY       int

	sim        *sim.Sim
	cfg        config.Config
	log        zerolog.Logger
	thoughtLog *ThoughtLog
	logCursor  int
	cam        camera
	keys       *edgeKeys
	input      keyboardInput

	showHUD      bool
	showOverlays bool

	inspector      Inspector
	prevMouseLeft  bool
	prevMouseRight bool

	simSpeed  float64 // 0=paused, 0.5, 1, 2, 4
	tickAccum float64
}

// New builds a viewer with a small demo crew on the configured body.
func New(cfg config.Config, log zerolog.Logger, opts ...sim.Option) (*Game, error) {
	g := &Game{
		width:        borderWidth + playW + borderWidth + logPanelWidth,
		height:       borderWidth + playH + borderWidth,
		gameWidth:    playW,
		gameHeight:   playH,
		offX:         borderWidth,
		offY:         borderWidth,
		cfg:          cfg,
		log:          log,
		thoughtLog:   NewThoughtLog(),
		keys:         newEdgeKeys(ebiten.IsKeyPressed),
		input:        newKeyboardInput(),
		showHUD:      true,
		showOverlays: true,
		simSpeed:     1,
	}
	g.cam = camera{zoom: 14, viewW: playW, viewH: playH}

	g.sim = sim.New(cfg, append([]sim.Option{sim.WithLogger(log)}, opts...)...)
	g.sim.World.SetInput(g.input)
	if err := g.initCrew(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) initCrew() error {
	crew := []struct {
		label string
		pos   mgl64.Vec3
	}{
		{"Jeb", mgl64.Vec3{0, 0, 0}},
		{"Bill", mgl64.Vec3{-3, 0, -3}},
		{"Bob", mgl64.Vec3{3, 0, -3}},
		{"Val", mgl64.Vec3{12, 0, 6}},
	}
	for _, c := range crew {
		if _, err := g.sim.Spawn(c.label, c.pos); err != nil {
			return err
		}
	}
	jeb, _ := g.sim.Find("Jeb")
	for i, label := range []string{"Bill", "Bob"} {
		a, _ := g.sim.Find(label)
		g.sim.Follow(a, jeb, nav.FormationWedge, i+1)
	}
	g.sim.World.SetActiveActor(jeb.Kerbal.ID())
	g.inspector.selected = jeb
	return nil
}

// AddPatrol starts label patrolling route.
func (g *Game) AddPatrol(label string, route nav.Route) error {
	a, ok := g.sim.Find(label)
	if !ok {
		return fmt.Errorf("no kerbal labelled %q", label)
	}
	g.sim.StartPatrol(a, route)
	return nil
}

// Sim exposes the underlying simulation.
func (g *Game) Sim() *sim.Sim { return g.sim }

func (g *Game) Update() error {
	g.handleInput()

	if g.simSpeed <= 0 {
		return nil
	}
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.simTick()
	}
	return nil
}

// simTick runs one simulation tick and feeds new log entries to the panel.
func (g *Game) simTick() {
	g.steerActive()
	g.sim.Step()

	entries := g.sim.SimLog.Entries()
	g.thoughtLog.Ingest(entries[g.logCursor:])
	g.logCursor = len(entries)
}

// steerActive walks the player's kerbal directly while it has no mode of its
// own. Keys held while it is ordered break it free instead.
func (g *Game) steerActive() {
	a := g.activeActor()
	if a == nil || !a.Container.Loaded() || a.Container.Mode() != locomotion.ModeNone {
		return
	}
	var dir mgl64.Vec3
	if g.input.KeyPressed(locomotion.KeyForward) {
		dir = dir.Add(mgl64.Vec3{0, 0, 1})
	}
	if g.input.KeyPressed(locomotion.KeyBack) {
		dir = dir.Add(mgl64.Vec3{0, 0, -1})
	}
	if g.input.KeyPressed(locomotion.KeyLeft) {
		dir = dir.Add(mgl64.Vec3{-1, 0, 0})
	}
	if g.input.KeyPressed(locomotion.KeyRight) {
		dir = dir.Add(mgl64.Vec3{1, 0, 0})
	}
	if dir.LenSqr() == 0 {
		return
	}
	step := dir.Normalize().Mul(g.cfg.Actor.WalkSpeed * g.sim.World.DeltaTime())
	k := a.Kerbal
	k.SetRotation(locomotion.LookRotation(dir, k.Up()))
	k.MovePosition(k.WorldPosition().Add(step))
}

func (g *Game) activeActor() *sim.Actor {
	id, ok := g.sim.World.ActiveActor()
	if !ok {
		return nil
	}
	for _, a := range g.sim.Actors {
		if a.Kerbal.ID() == id {
			return a
		}
	}
	return nil
}

func (g *Game) selectedActors() []*sim.Actor {
	var out []*sim.Actor
	for _, a := range g.sim.Actors {
		if a.Container.Selected() {
			out = append(out, a)
		}
	}
	return out
}

// handleInput processes camera, command and toggle keys (edge-triggered).
func (g *Game) handleInput() {
	k := g.keys
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	if k.justPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if k.justPressed(ebiten.KeyO) {
		g.showOverlays = !g.showOverlays
	}

	// Camera pan: arrow keys (WASD belongs to the active kerbal).
	pan := 12.0 / g.cam.zoom
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.cam.z += pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.cam.z -= pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.cam.x -= pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.cam.x += pan
	}

	_, wy := ebiten.Wheel()
	if wy != 0 {
		g.cam.setZoom(g.cam.zoom * math.Pow(1.12, wy))
	}
	if k.justPressed(ebiten.KeyEqual) {
		g.cam.setZoom(g.cam.zoom * 1.25)
	}
	if k.justPressed(ebiten.KeyMinus) {
		g.cam.setZoom(g.cam.zoom / 1.25)
	}

	// Sim speed: P=pause/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if k.justPressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if k.justPressed(ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if k.justPressed(ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s <= g.simSpeed && i < len(speeds)-1 && speeds[i+1] > g.simSpeed {
				g.simSpeed = speeds[i+1]
				break
			}
		}
	}

	// Tab: hand control to the next loaded kerbal.
	if k.justPressed(ebiten.KeyTab) {
		g.cycleActive()
	}

	// Commands on the selection.
	if k.justPressed(ebiten.KeyF) {
		g.followActive()
	}
	if k.justPressed(ebiten.KeyX) {
		for _, a := range g.selectedActors() {
			a.Container.SetMode(locomotion.ModeNone)
		}
	}
	if k.justPressed(ebiten.KeyK) {
		for _, a := range g.selectedActors() {
			a.Kerbal.Knockout()
		}
	}
	if k.justPressed(ebiten.KeyU) {
		for _, a := range g.selectedActors() {
			if a.Container.Loaded() {
				g.sim.Unload(a)
			} else {
				g.sim.Load(a)
			}
		}
	}
	if k.justPressed(ebiten.KeyC) {
		g.copyDebugReport()
	}
	if k.justPressed(ebiten.KeyI) {
		g.inspector.rawView = !g.inspector.rawView
	}
	k.endFrame()

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !g.prevMouseLeft {
		mx, my := ebiten.CursorPosition()
		g.handleSelectClick(mx, my, shift)
	}
	g.prevMouseLeft = left

	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if right && !g.prevMouseRight {
		mx, my := ebiten.CursorPosition()
		dest := g.cam.screenToWorld(float64(mx-g.offX), float64(my-g.offY))
		if n := g.sim.OrderSelected(dest, shift); n > 0 {
			g.log.Debug().Int("kerbals", n).Float64("x", dest.X()).Float64("z", dest.Z()).Msg("group order")
		}
	}
	g.prevMouseRight = right
}

func (g *Game) cycleActive() {
	actors := g.sim.Actors
	if len(actors) == 0 {
		return
	}
	start := 0
	if cur := g.activeActor(); cur != nil {
		for i, a := range actors {
			if a == cur {
				start = i + 1
			}
		}
	}
	for i := 0; i < len(actors); i++ {
		a := actors[(start+i)%len(actors)]
		if a.Container.Loaded() {
			g.sim.World.SetActiveActor(a.Kerbal.ID())
			return
		}
	}
	g.sim.World.ClearActiveActor()
}

// followActive puts every selected kerbal in wedge behind the active one.
func (g *Game) followActive() {
	leader := g.activeActor()
	if leader == nil {
		return
	}
	slot := 1
	for _, a := range g.selectedActors() {
		if a == leader {
			continue
		}
		g.sim.Follow(a, leader, nav.FormationWedge, slot)
		slot++
	}
}

// handleSelectClick selects the kerbal under the cursor. Shift adds to the
// selection; clicking empty ground without shift clears it.
func (g *Game) handleSelectClick(mx, my int, add bool) bool {
	sx, sy := float64(mx-g.offX), float64(my-g.offY)
	if sx < 0 || sy < 0 || sx > float64(g.gameWidth) || sy > float64(g.gameHeight) {
		return false
	}
	hit := g.pick(g.cam.screenToWorld(sx, sy))
	if !add {
		for _, a := range g.sim.Actors {
			a.Container.SetSelected(false)
		}
	}
	if hit == nil {
		return false
	}
	hit.Container.SetSelected(!add || !hit.Container.Selected())
	g.inspector.selected = hit
	return true
}

// pick returns the nearest kerbal within a few pixels of p.
func (g *Game) pick(p mgl64.Vec3) *sim.Actor {
	r := math.Max(kerbalRadius*1.5, 10/g.cam.zoom)
	best := r * r
	var hit *sim.Actor
	for _, a := range g.sim.Actors {
		q := a.Kerbal.WorldPosition()
		d := mgl64.Vec3{q.X() - p.X(), 0, q.Z() - p.Z()}.LenSqr()
		if d < best {
			best = d
			hit = a
		}
	}
	return hit
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 6, G: 7, B: 10, A: 255})

	play := screen.SubImage(imageRect(g.offX, g.offY, g.gameWidth, g.gameHeight)).(*ebiten.Image)
	play.Fill(color.RGBA{R: 34, G: 38, B: 32, A: 255})
	g.drawGrid(play)
	if g.showOverlays {
		g.drawOverlays(play)
	}
	g.drawActors(play)

	ox := float32(g.offX)
	oy := float32(g.offY)
	vector.StrokeRect(screen, ox-1, oy-1, float32(g.gameWidth)+2, float32(g.gameHeight)+2, 2.0, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)

	logX := g.offX + g.gameWidth + g.offX
	g.thoughtLog.Draw(screen, logX, g.height)

	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawInspector(screen)
}

// drawGrid draws a 10 m grid aligned to world coordinates.
func (g *Game) drawGrid(dst *ebiten.Image) {
	const spacing = 10.0
	c := color.RGBA{R: 50, G: 56, B: 48, A: 255}
	tl := g.cam.screenToWorld(0, 0)
	br := g.cam.screenToWorld(float64(g.gameWidth), float64(g.gameHeight))
	ox, oy := float32(dst.Bounds().Min.X), float32(dst.Bounds().Min.Y)
	for x := math.Floor(tl.X()/spacing) * spacing; x <= br.X(); x += spacing {
		sx, _ := g.cam.worldToScreen(mgl64.Vec3{x, 0, 0})
		vector.StrokeLine(dst, ox+float32(sx), oy, ox+float32(sx), oy+float32(g.gameHeight), 1, c, false)
	}
	for z := math.Floor(br.Z()/spacing) * spacing; z <= tl.Z(); z += spacing {
		_, sy := g.cam.worldToScreen(mgl64.Vec3{0, 0, z})
		vector.StrokeLine(dst, ox, oy+float32(sy), ox+float32(g.gameWidth), oy+float32(sy), 1, c, false)
	}
}

func modeColor(m locomotion.Mode) color.RGBA {
	switch m {
	case locomotion.ModeFollow:
		return color.RGBA{R: 90, G: 200, B: 120, A: 255}
	case locomotion.ModePatrol:
		return color.RGBA{R: 200, G: 170, B: 70, A: 255}
	case locomotion.ModeOrder:
		return color.RGBA{R: 90, G: 150, B: 240, A: 255}
	default:
		return color.RGBA{R: 210, G: 210, B: 210, A: 255}
	}
}

func (g *Game) drawActors(dst *ebiten.Image) {
	ox, oy := float32(dst.Bounds().Min.X), float32(dst.Bounds().Min.Y)
	active := g.activeActor()
	for _, a := range g.sim.Actors {
		k := a.Kerbal
		sx, sy := g.cam.worldToScreen(k.WorldPosition())
		x, y := ox+float32(sx), oy+float32(sy)
		r := float32(kerbalRadius * g.cam.zoom)
		if r < 4 {
			r = 4
		}

		if !a.Container.Loaded() {
			vector.StrokeCircle(dst, x, y, r, 1, color.RGBA{R: 90, G: 90, B: 90, A: 200}, true)
			drawText(dst, a.Label+" (unloaded)", int(x+r+3), int(y-6), color.RGBA{R: 110, G: 110, B: 110, A: 255})
			continue
		}

		body := modeColor(a.Container.Mode())
		if k.Ragdoll() {
			body = color.RGBA{R: 240, G: 110, B: 50, A: 255}
		}
		vector.FillCircle(dst, x, y, r, body, true)

		fwd := k.Rotation().Rotate(mgl64.Vec3{0, 0, 1})
		hx := x + float32(fwd.X())*r*1.8
		hy := y - float32(fwd.Z())*r*1.8
		vector.StrokeLine(dst, x, y, hx, hy, 2, color.White, true)

		if a.Container.Selected() {
			vector.StrokeCircle(dst, x, y, r+3, 1.5, color.RGBA{R: 120, G: 255, B: 140, A: 255}, true)
		}
		if a == active {
			vector.StrokeCircle(dst, x, y, r+6, 1.5, color.RGBA{R: 255, G: 220, B: 60, A: 255}, true)
		}
		drawText(dst, fmt.Sprintf("%s %s", a.Label, a.Container.Animation()), int(x+r+4), int(y-6), color.RGBA{R: 220, G: 220, B: 220, A: 255})
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	speedStr := "1x"
	switch {
	case g.simSpeed == 0:
		speedStr = "PAUSED"
	case g.simSpeed != 1:
		speedStr = fmt.Sprintf("%.1fx", g.simSpeed)
	}
	activeLabel := "none"
	if a := g.activeActor(); a != nil {
		activeLabel = a.Label
	}

	lines := []string{
		fmt.Sprintf("SIM: %s  T=%d  body=%s  g=%.2f", speedStr, g.sim.Tick(), g.sim.World.ReferenceBody(), g.sim.GeeForce),
		fmt.Sprintf("active: %s  Tab=next  WASDQE=move/break free", activeLabel),
		g.lastTransition(),
		"click=select  shift+click=add  RMB=order (shift=run)",
		"F=follow active  X=stop  K=knock out  U=unload/load",
		"C=copy report  I=raw view  O=overlays  H=HUD",
		"P=pause  ,/.=speed  arrows=pan  scroll=zoom",
	}

	const padX, padY = 6, 4
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*7 + padX*2)
	boxH := float32(len(lines)*logLineHeight + padY*2)
	bx := float32(g.offX + 6)
	by := float32(g.offY+g.gameHeight) - boxH - 6

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 8, B: 14, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 80, B: 120, A: 180}, false)
	for i, line := range lines {
		drawText(screen, line, int(bx)+padX, int(by)+padY+i*logLineHeight, color.White)
	}
}

// lastTransition describes the most recent mode change of any kerbal.
func (g *Game) lastTransition() string {
	e, ok := g.sim.SimLog.LastOf("mode", "change")
	if !ok {
		return "last: -"
	}
	return fmt.Sprintf("last: T=%d %s %s", e.Tick, e.Actor, e.Value)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize is the size the viewer wants its window to be.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}
