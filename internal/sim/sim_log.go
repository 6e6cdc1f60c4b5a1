package sim

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a simulation.
type SimLogEntry struct {
	Tick     int
	Actor    string  // kerbal label, or "--" for global events
	Category string  // mode, anim, fsm, move, lifecycle
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] Bill     mode      change           order → none
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-8s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a simulation. It is unbounded and
// machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position entries
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for a specific kerbal label.
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of every actor's state.
func (sl *SimLog) Summary(tick int, actors []*Actor) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)

	modes := map[string]int{}
	for _, a := range actors {
		if !a.Container.Loaded() {
			modes["unloaded"]++
			continue
		}
		modes[a.Container.Mode().String()]++
	}
	sb.WriteString("Modes: ")
	for _, m := range []string{"none", "follow", "patrol", "order", "unloaded"} {
		if n := modes[m]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", m, n)
		}
	}
	sb.WriteByte('\n')

	for _, a := range actors {
		p := a.Kerbal.WorldPosition()
		fmt.Fprintf(&sb, "%-8s mode=%-6s anim=%-5s clip=%-16s pos=(%.1f,%.1f,%.1f)\n",
			a.Label, a.Container.Mode(), a.Container.Animation(), a.Kerbal.Playing(), p.X(), p.Y(), p.Z())
	}
	return sb.String()
}
