package main

import (
	"flag"
	"log"

	"github.com/Garsondee/Eva-Sense/internal/config"
	"github.com/Garsondee/Eva-Sense/internal/game"
	"github.com/Garsondee/Eva-Sense/internal/logging"
	"github.com/Garsondee/Eva-Sense/internal/metrics"
	"github.com/Garsondee/Eva-Sense/internal/nav"
	"github.com/Garsondee/Eva-Sense/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var configPath string
	var routePath string
	var patroller string
	flag.StringVar(&configPath, "config", "", "optional YAML config file")
	flag.StringVar(&routePath, "route", "", "optional YAML patrol route")
	flag.StringVar(&patroller, "patroller", "Val", "kerbal that walks -route")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.Console(cfg.LogLevel)

	var opts []sim.Option
	recorder, err := metrics.New()
	if err != nil {
		logger.Warn().Err(err).Msg("metrics disabled")
	} else {
		opts = append(opts, sim.WithTelemetry(recorder))
	}

	g, err := game.New(cfg, logger, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("building viewer")
	}
	if routePath != "" {
		route, err := nav.LoadRoute(routePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("loading route")
		}
		if err := g.AddPatrol(patroller, route); err != nil {
			logger.Fatal().Err(err).Msg("starting patrol")
		}
		logger.Info().Str("route", route.Name).Str("kerbal", patroller).Int("waypoints", len(route.Waypoints)).Msg("patrol loaded")
	}

	ebiten.SetWindowTitle("EVA Sense")
	ebiten.SetWindowSize(g.WindowSize())
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("viewer exited")
	}
}
