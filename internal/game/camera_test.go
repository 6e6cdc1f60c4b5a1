package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestCamera_RoundTrip(t *testing.T) {
	c := camera{x: 5, z: -3, zoom: 10, viewW: 800, viewH: 600}
	p := mgl64.Vec3{12.5, 0, 7.25}

	sx, sy := c.worldToScreen(p)
	back := c.screenToWorld(sx, sy)
	assert.InDelta(t, p.X(), back.X(), 1e-9)
	assert.InDelta(t, p.Z(), back.Z(), 1e-9)
}

func TestCamera_NorthIsUp(t *testing.T) {
	c := camera{zoom: 10, viewW: 800, viewH: 600}

	cx, cy := c.worldToScreen(mgl64.Vec3{})
	assert.Equal(t, 400.0, cx)
	assert.Equal(t, 300.0, cy)

	_, ny := c.worldToScreen(mgl64.Vec3{0, 0, 1})
	assert.Less(t, ny, cy, "positive Z draws higher on screen")
	ex, _ := c.worldToScreen(mgl64.Vec3{1, 0, 0})
	assert.Greater(t, ex, cx)
}

func TestCamera_ZoomClamped(t *testing.T) {
	c := camera{zoom: 10}
	c.setZoom(1000)
	assert.Equal(t, zoomMax, c.zoom)
	c.setZoom(0)
	assert.Equal(t, zoomMin, c.zoom)
}
