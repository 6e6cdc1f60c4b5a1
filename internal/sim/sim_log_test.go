package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLog() *SimLog {
	sl := NewSimLog(false)
	sl.Add(1, "Jeb", "mode", "change", "none → order (player order)", 0)
	sl.Add(2, "Bill", "mode", "change", "none → follow (leader assigned)", 0)
	sl.Add(3, "Jeb", "anim", "change", "idle → walk", 0)
	sl.Add(5, "Jeb", "mode", "change", "order → none (order complete)", 0)
	sl.Add(6, "--", "lifecycle", "scenario", "escort", 0)
	sl.AddVerbose(6, "Jeb", "move", "position", "(0,0,4)", 0)
	return sl
}

func TestSimLog_FilterActor(t *testing.T) {
	sl := sampleLog()

	jeb := sl.FilterActor("Jeb")
	require.Len(t, jeb, 3)
	for _, e := range jeb {
		assert.Equal(t, "Jeb", e.Actor)
	}
	assert.Empty(t, sl.FilterActor("Val"))
}

func TestSimLog_LastOf(t *testing.T) {
	sl := sampleLog()

	e, ok := sl.LastOf("mode", "change")
	require.True(t, ok)
	assert.Equal(t, 5, e.Tick)
	assert.Contains(t, e.Value, "order complete")

	_, ok = sl.LastOf("fsm", "recover")
	assert.False(t, ok)
}

func TestSimLog_FormatRange(t *testing.T) {
	sl := sampleLog()

	out := sl.FormatRange(2, 5)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "[T=002] Bill"))
	assert.True(t, strings.HasPrefix(lines[2], "[T=005] Jeb"))
	assert.NotContains(t, out, "escort")
	assert.Empty(t, sl.FormatRange(50, 60))
}

func TestSimLog_VerboseOnly(t *testing.T) {
	assert.Empty(t, sampleLog().Filter("move", ""))

	sl := NewSimLog(true)
	sl.AddVerbose(1, "Jeb", "move", "position", "(0,0,0)", 0)
	assert.Equal(t, 1, sl.CountCategory("move", "position"))
}
