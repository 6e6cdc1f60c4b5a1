package config

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Eva-Sense/internal/locomotion"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	LogLevel string      `mapstructure:"logLevel"`
	World    WorldConfig `mapstructure:"world"`
	Actor    ActorConfig `mapstructure:"actor"`
	Nav      NavConfig   `mapstructure:"nav"`
}

// WorldConfig holds the simulated environment settings.
type WorldConfig struct {
	ReferenceBody string  `mapstructure:"referenceBody"`
	DeltaTime     float64 `mapstructure:"deltaTime"`
	GeeForce      float64 `mapstructure:"geeForce"`
	BlendTicks    int     `mapstructure:"blendTicks"` // ticks before a cross-faded clip reports enabled
}

// ActorConfig holds the locomotion constants every simulated actor is spawned with.
type ActorConfig struct {
	TurnRate      float64 `mapstructure:"turnRate"`
	WalkSpeed     float64 `mapstructure:"walkSpeed"`
	RunSpeed      float64 `mapstructure:"runSpeed"`
	SwimSpeed     float64 `mapstructure:"swimSpeed"`
	BoundSpeed    float64 `mapstructure:"boundSpeed"`
	MinRunningGee float64 `mapstructure:"minRunningGee"`
	MinWalkingGee float64 `mapstructure:"minWalkingGee"`
}

// Stats converts the actor settings to governor stats.
func (a ActorConfig) Stats() locomotion.Stats {
	return locomotion.Stats{
		TurnRate:      a.TurnRate,
		WalkSpeed:     a.WalkSpeed,
		RunSpeed:      a.RunSpeed,
		SwimSpeed:     a.SwimSpeed,
		BoundSpeed:    a.BoundSpeed,
		MinRunningGee: a.MinRunningGee,
		MinWalkingGee: a.MinWalkingGee,
	}
}

// NavConfig holds strategy stop distances (squared metres) and formation spacing.
type NavConfig struct {
	FormationStop float64 `mapstructure:"formationStop"`
	PatrolStop    float64 `mapstructure:"patrolStop"`
	OrderStop     float64 `mapstructure:"orderStop"`
	SlotSpacing   float64 `mapstructure:"slotSpacing"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("world.referenceBody", "Kerbin")
	v.SetDefault("world.deltaTime", 0.02)
	v.SetDefault("world.geeForce", 1.0)
	v.SetDefault("world.blendTicks", 2)

	v.SetDefault("actor.turnRate", 6.0)
	v.SetDefault("actor.walkSpeed", 0.8)
	v.SetDefault("actor.runSpeed", 2.2)
	v.SetDefault("actor.swimSpeed", 0.8)
	v.SetDefault("actor.boundSpeed", 0.65)
	v.SetDefault("actor.minRunningGee", 0.6)
	v.SetDefault("actor.minWalkingGee", 0.25)

	v.SetDefault("nav.formationStop", 3.0)
	v.SetDefault("nav.patrolStop", 0.3)
	v.SetDefault("nav.orderStop", 0.8)
	v.SetDefault("nav.slotSpacing", 2.0)
}

// Load reads configuration from a YAML file and EVA_* environment variables
// over the defaults. An empty path loads defaults and environment only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("EVA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Default returns the built-in configuration. It panics if the built-in
// defaults fail to decode.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		panic(err)
	}
	return cfg
}
