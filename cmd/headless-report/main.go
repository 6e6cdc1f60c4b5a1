package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/Garsondee/Eva-Sense/internal/config"
	"github.com/Garsondee/Eva-Sense/internal/logging"
	"github.com/Garsondee/Eva-Sense/internal/metrics"
	"github.com/Garsondee/Eva-Sense/internal/sim"
	"golang.org/x/sync/errgroup"
)

type runStats struct {
	runIndex int
	sim.RunStats

	firstRecoverTick   int
	firstBreakFreeTick int
	firstLeaderLost    int
	stranded           map[string]struct{}
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var configPath string
	var tail int

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", sim.ScenarioEscort, "scenario name")
	flag.StringVar(&configPath, "config", "", "optional YAML config file")
	flag.IntVar(&tail, "tail", 0, "print the last N ticks of each run's sim log")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if scenario != sim.ScenarioEscort {
		fmt.Printf("error: unsupported scenario %q (supported: %s)\n", scenario, sim.ScenarioEscort)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	logger := logging.Console(cfg.LogLevel)

	recorder, err := metrics.New()
	if err != nil {
		logger.Warn().Err(err).Msg("metrics disabled")
	}
	opts := []sim.Option{sim.WithLogger(logger)}
	if recorder != nil {
		opts = append(opts, sim.WithTelemetry(recorder))
	}

	fmt.Printf("=== Headless EVA Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d body=%s gee=%.2f\n\n",
		scenario, runs, ticks, seedBase, seedStep, cfg.World.ReferenceBody, cfg.World.GeeForce)

	all, err := runAll(scenario, cfg, runs, ticks, seedBase, seedStep, opts)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	for _, rs := range all {
		printRun(rs)
		if tail > 0 {
			fmt.Print(logTail(rs, tail))
			fmt.Println()
		}
	}

	printAggregate(all)
}

// runAll plays every seed in parallel. Results come back in run order.
func runAll(scenario string, cfg config.Config, runs, ticks int, seedBase, seedStep int64, opts []sim.Option) ([]runStats, error) {
	all := make([]runStats, runs)
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		g.Go(func() error {
			rs, err := sim.RunScenario(scenario, cfg, seed, ticks, opts...)
			if err != nil {
				return fmt.Errorf("run %d (seed=%d): %w", i+1, seed, err)
			}
			all[i] = collect(i+1, rs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

func collect(runIndex int, rs sim.RunStats) runStats {
	entries := rs.Log.Entries()
	stranded := map[string]struct{}{}
	for _, e := range entries {
		if e.Category == "mode" && e.Key == "change" && strings.HasSuffix(e.Value, "(leader lost)") {
			stranded[e.Actor] = struct{}{}
		}
	}
	return runStats{
		runIndex:           runIndex,
		RunStats:           rs,
		firstRecoverTick:   firstTick(entries, "fsm", "recover", ""),
		firstBreakFreeTick: firstTick(entries, "mode", "change", "(break free)"),
		firstLeaderLost:    firstTick(entries, "mode", "change", "(leader lost)"),
		stranded:           stranded,
	}
}

// logTail formats the sim log entries from the last n ticks of a run.
func logTail(rs runStats, n int) string {
	from := rs.Ticks - n + 1
	if from < 0 {
		from = 0
	}
	return rs.Log.FormatRange(from, rs.Ticks)
}

func firstTick(entries []sim.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.Seed)
	fmt.Printf("phase_markers: first_order_done=%d first_recover=%d first_break_free=%d first_leader_lost=%d\n",
		rs.FirstOrderDoneTick, rs.firstRecoverTick, rs.firstBreakFreeTick, rs.firstLeaderLost)
	fmt.Printf("event_totals: mode_change=%d anim_change=%d order_complete=%d leader_lost=%d break_free=%d recover=%d\n",
		rs.ModeChanges, rs.AnimChanges, rs.OrdersCompleted, rs.LeadersLost, rs.BreakFrees, rs.Recoveries)
	fmt.Printf("stranded_labels: %s\n", joinSet(rs.stranded))
	fmt.Printf("final_modes: %s\n", formatModes(rs.FinalModes))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalModes := 0
	totalAnims := 0
	totalOrders := 0
	totalLost := 0
	totalBreak := 0
	totalRecover := 0

	orderTicks := make([]int, 0, len(all))
	recoverTicks := make([]int, 0, len(all))
	strandedGlobal := map[string]struct{}{}
	finalModes := map[string]map[string]int{}

	for _, rs := range all {
		totalModes += rs.ModeChanges
		totalAnims += rs.AnimChanges
		totalOrders += rs.OrdersCompleted
		totalLost += rs.LeadersLost
		totalBreak += rs.BreakFrees
		totalRecover += rs.Recoveries
		if rs.FirstOrderDoneTick >= 0 {
			orderTicks = append(orderTicks, rs.FirstOrderDoneTick)
		}
		if rs.firstRecoverTick >= 0 {
			recoverTicks = append(recoverTicks, rs.firstRecoverTick)
		}
		for label := range rs.stranded {
			strandedGlobal[label] = struct{}{}
		}
		for label, mode := range rs.FinalModes {
			if finalModes[label] == nil {
				finalModes[label] = map[string]int{}
			}
			finalModes[label][mode]++
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_events_per_run: mode_change=%.1f anim_change=%.1f order_complete=%.1f leader_lost=%.1f break_free=%.1f recover=%.1f\n",
		avg(totalModes, len(all)), avg(totalAnims, len(all)), avg(totalOrders, len(all)),
		avg(totalLost, len(all)), avg(totalBreak, len(all)), avg(totalRecover, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_order_done=%s first_recover=%s\n",
		avgTickString(orderTicks), avgTickString(recoverTicks))
	fmt.Printf("unique_stranded_labels=%d [%s]\n", len(strandedGlobal), joinSet(strandedGlobal))

	fmt.Println("\n--- Final Modes (across all runs) ---")
	labels := make([]string, 0, len(finalModes))
	for label := range finalModes {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Printf("  %-6s %s\n", label, topMode(finalModes[label]))
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// topMode returns the most common mode, ties broken alphabetically.
func topMode(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	best := ""
	bestN := 0
	for k, v := range counts {
		if v > bestN || (v == bestN && k < best) {
			best = k
			bestN = v
		}
	}
	return fmt.Sprintf("%s(%d)", best, bestN)
}

func formatModes(m map[string]string) string {
	if len(m) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(m))
	for k := range m {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = l + "=" + m[l]
	}
	return strings.Join(parts, " ")
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
