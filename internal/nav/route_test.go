package nav

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ridgeRoute = `
name: ridge
reference_body: Kerbin
allow_running: true
waypoints:
  - {x: 0, y: 0, z: 0}
  - {x: 20, y: 0, z: 0}
  - {x: 20, y: 0, z: 20}
`

func TestLoadRoute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(ridgeRoute), 0o644))

	r, err := LoadRoute(path)
	require.NoError(t, err)

	assert.Equal(t, "ridge", r.Name)
	assert.Equal(t, "Kerbin", r.ReferenceBody)
	assert.True(t, r.AllowRunning)
	require.Len(t, r.Points(), 3)
	assert.Equal(t, 20.0, r.Points()[2].Z())
}

func TestLoadRoute_Errors(t *testing.T) {
	_, err := LoadRoute(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading route")

	_, err = ParseRoute([]byte("name: empty\nreference_body: Kerbin\n"))
	require.ErrorIs(t, err, ErrEmptyRoute)

	_, err = ParseRoute([]byte("name: nowhere\nwaypoints:\n  - {x: 1}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference_body")

	_, err = ParseRoute([]byte("waypoints: [:"))
	require.Error(t, err)
}

func TestMarshalRoute_RoundTrip(t *testing.T) {
	r, err := ParseRoute([]byte(ridgeRoute))
	require.NoError(t, err)

	data, err := MarshalRoute(r)
	require.NoError(t, err)

	back, err := ParseRoute(data)
	require.NoError(t, err)
	assert.Equal(t, r, back)
}
