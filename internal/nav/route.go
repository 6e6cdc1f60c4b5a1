package nav

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var ErrEmptyRoute = errors.New("nav: route has no waypoints")

// Waypoint is one route point in world coordinates.
type Waypoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Route is a named patrol route as stored on disk.
type Route struct {
	Name          string     `yaml:"name"`
	ReferenceBody string     `yaml:"reference_body"`
	AllowRunning  bool       `yaml:"allow_running"`
	Waypoints     []Waypoint `yaml:"waypoints"`
}

// Points returns the waypoints as vectors.
func (r Route) Points() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(r.Waypoints))
	for i, w := range r.Waypoints {
		out[i] = mgl64.Vec3{w.X, w.Y, w.Z}
	}
	return out
}

// ParseRoute decodes a route from YAML.
func ParseRoute(data []byte) (Route, error) {
	var r Route
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Route{}, fmt.Errorf("parsing route: %w", err)
	}
	if len(r.Waypoints) == 0 {
		return Route{}, ErrEmptyRoute
	}
	if r.ReferenceBody == "" {
		return Route{}, fmt.Errorf("route %q: reference_body is required", r.Name)
	}
	return r, nil
}

// LoadRoute reads a route file.
func LoadRoute(path string) (Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Route{}, fmt.Errorf("reading route %s: %w", path, err)
	}
	r, err := ParseRoute(data)
	if err != nil {
		return Route{}, fmt.Errorf("loading route %s: %w", path, err)
	}
	return r, nil
}

// MarshalRoute encodes a route as YAML.
func MarshalRoute(r Route) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding route %q: %w", r.Name, err)
	}
	return data, nil
}
