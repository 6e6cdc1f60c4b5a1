package game

import "github.com/go-gl/mathgl/mgl64"

// camera maps the sim's horizontal X/Z plane onto the screen. Screen Y grows
// downward while world Z grows "north", so Z is flipped.
type camera struct {
	x, z  float64 // world point at the viewport centre
	zoom  float64 // pixels per metre
	viewW float64
	viewH float64
}

const (
	zoomMin = 2.0
	zoomMax = 60.0
)

func (c camera) worldToScreen(p mgl64.Vec3) (float64, float64) {
	sx := (p.X()-c.x)*c.zoom + c.viewW/2
	sy := -(p.Z()-c.z)*c.zoom + c.viewH/2
	return sx, sy
}

func (c camera) screenToWorld(sx, sy float64) mgl64.Vec3 {
	x := (sx-c.viewW/2)/c.zoom + c.x
	z := -(sy-c.viewH/2)/c.zoom + c.z
	return mgl64.Vec3{x, 0, z}
}

func (c *camera) setZoom(z float64) {
	if z < zoomMin {
		z = zoomMin
	}
	if z > zoomMax {
		z = zoomMax
	}
	c.zoom = z
}
