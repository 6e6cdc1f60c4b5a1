package game

import (
	"github.com/Garsondee/Eva-Sense/internal/locomotion"
	"github.com/hajimehoshi/ebiten/v2"
)

// movementBindings maps each break-free key to the keyboard key that holds it.
var movementBindings = map[locomotion.Key]ebiten.Key{
	locomotion.KeyForward:   ebiten.KeyW,
	locomotion.KeyBack:      ebiten.KeyS,
	locomotion.KeyLeft:      ebiten.KeyA,
	locomotion.KeyRight:     ebiten.KeyD,
	locomotion.KeyRollLeft:  ebiten.KeyQ,
	locomotion.KeyRollRight: ebiten.KeyE,
}

// keyboardInput feeds the live keyboard into the sim world.
type keyboardInput struct {
	pressed func(ebiten.Key) bool
}

func newKeyboardInput() keyboardInput {
	return keyboardInput{pressed: ebiten.IsKeyPressed}
}

func (in keyboardInput) KeyPressed(k locomotion.Key) bool {
	ek, ok := movementBindings[k]
	if !ok {
		return false
	}
	return in.pressed(ek)
}

// edgeKeys tracks key state across frames so toggles fire once per press.
type edgeKeys struct {
	pressed func(ebiten.Key) bool
	prev    map[ebiten.Key]bool
	cur     map[ebiten.Key]bool
}

func newEdgeKeys(pressed func(ebiten.Key) bool) *edgeKeys {
	return &edgeKeys{pressed: pressed, prev: map[ebiten.Key]bool{}, cur: map[ebiten.Key]bool{}}
}

// justPressed reports whether k went down this frame.
func (e *edgeKeys) justPressed(k ebiten.Key) bool {
	down := e.pressed(k)
	e.cur[k] = down
	return down && !e.prev[k]
}

// endFrame rolls the current frame's state into the previous one.
func (e *edgeKeys) endFrame() {
	e.prev, e.cur = e.cur, map[ebiten.Key]bool{}
}
