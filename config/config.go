// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed schema.json
var schemaJSON string

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	Ground       GroundConfig       `yaml:"ground"`
	Terrain      TerrainConfig      `yaml:"terrain"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Agent        AgentConfig        `yaml:"agent"`
	Steering     SteeringConfig     `yaml:"steering"`
	Population   PopulationConfig   `yaml:"population"`
	Presentation PresentationConfig `yaml:"presentation"`
	Clock        ClockConfig        `yaml:"clock"`
	Weather      WeatherConfig      `yaml:"weather"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GroundConfig describes the square ground centered on the origin.
type GroundConfig struct {
	Size        float64 `yaml:"size"`         // Edge length; half of it is the ground half-extent
	SpawnMargin float64 `yaml:"spawn_margin"` // Spawn samples stay this far inside the edge
}

// TerrainConfig holds lake and tree generation parameters.
type TerrainConfig struct {
	Seed            int64   `yaml:"seed"` // 0 = derive from the simulation seed
	NumLakes        int     `yaml:"num_lakes"`
	LakeMinRadius   float64 `yaml:"lake_min_radius"`
	LakeMaxRadius   float64 `yaml:"lake_max_radius"`
	LakeSpacing     float64 `yaml:"lake_spacing"` // Minimum gap between lake rims
	NumTrees        int     `yaml:"num_trees"`
	TreeMinRadius   float64 `yaml:"tree_min_radius"`
	TreeMaxRadius   float64 `yaml:"tree_max_radius"`
	MinTreeDistance float64 `yaml:"min_tree_distance"`
	LakeClearance   float64 `yaml:"lake_clearance"` // Trees keep this distance from lake rims
	NoiseScale      float64 `yaml:"noise_scale"`
	LakeThreshold   float64 `yaml:"lake_threshold"` // Lakes only where noise is below this
	TreeThreshold   float64 `yaml:"tree_threshold"` // Trees only where noise is above this
	MaxAttempts     int     `yaml:"max_attempts"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT            float64 `yaml:"dt"`             // Seconds of simulated time per controller step
	AgingInterval float64 `yaml:"aging_interval"` // Real seconds between vital ticks
}

// AgentConfig holds vital capacities and need thresholds.
type AgentConfig struct {
	MaxLife         float64 `yaml:"max_life"`
	MaxHunger       float64 `yaml:"max_hunger"`
	MaxThirst       float64 `yaml:"max_thirst"`
	MaxReproduction float64 `yaml:"max_reproduction"`
	GrowTimer       int     `yaml:"grow_timer"` // Vital ticks until a juvenile becomes adult
	Radius          float64 `yaml:"radius"`     // Footprint registered in the spatial index
	WaterThreshold  float64 `yaml:"water_threshold"`
	FoodThreshold   float64 `yaml:"food_threshold"`
	MateFullness    float64 `yaml:"mate_fullness"`
}

// SteeringConfig holds movement, capture and mate-search parameters.
type SteeringConfig struct {
	Speed               float64 `yaml:"speed"`
	DrinkRate           float64 `yaml:"drink_rate"`
	EatRate             float64 `yaml:"eat_rate"`
	DrinkBand           float64 `yaml:"drink_band"`
	EatReach            float64 `yaml:"eat_reach"`
	RimClearance        float64 `yaml:"rim_clearance"`
	RetargetDistance    float64 `yaml:"retarget_distance"`
	WanderRadius        float64 `yaml:"wander_radius"`
	WanderAttempts      int     `yaml:"wander_attempts"`
	WanderArrival       float64 `yaml:"wander_arrival"`
	IdleMin             float64 `yaml:"idle_min"`
	IdleMax             float64 `yaml:"idle_max"`
	MateRadius          float64 `yaml:"mate_radius"`
	MateFullness        float64 `yaml:"mate_fullness"`
	MateDistance        float64 `yaml:"mate_distance"`
	QueryMargin         float64 `yaml:"query_margin"`
	ObstacleQuery       float64 `yaml:"obstacle_query"`
	AvoidRange          float64 `yaml:"avoid_range"`
	WaterStrength       float64 `yaml:"water_strength"`
	FoodStrength        float64 `yaml:"food_strength"`
	FoodStrengthThirsty float64 `yaml:"food_strength_thirsty"`
	SeparationRadius    float64 `yaml:"separation_radius"`
	CollisionMargin     float64 `yaml:"collision_margin"`
	OverlapDistance     float64 `yaml:"overlap_distance"`
	LakeApproachMin     float64 `yaml:"lake_approach_min"`
	TreeApproachMin     float64 `yaml:"tree_approach_min"`
	ApproachSpread      float64 `yaml:"approach_spread"`
	WaterMargin         float64 `yaml:"water_margin"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial       int `yaml:"initial"`
	SpawnAttempts int `yaml:"spawn_attempts"`
}

// PresentationConfig holds parameters for the presentation collaborator.
type PresentationConfig struct {
	DeathDuration float64 `yaml:"death_duration"` // Seconds the die animation plays before removal
	AdultScale    float64 `yaml:"adult_scale"`
	JuvenileScale float64 `yaml:"juvenile_scale"`
}

// ClockConfig holds day/night cycle parameters.
type ClockConfig struct {
	DayLength  float64 `yaml:"day_length"`  // Seconds per full day
	StartPhase float64 `yaml:"start_phase"` // 0 = sunrise, 0.25 = noon, 0.5 = sunset
}

// WeatherConfig holds the initial rain state.
type WeatherConfig struct {
	Rain          bool    `yaml:"rain"`
	RainIntensity float64 `yaml:"rain_intensity"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Simulated seconds per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	HalfExtent      float64 // Ground.Size / 2
	SpawnExtent     float64 // HalfExtent - Ground.SpawnMargin
	StepsPerWindow  int     // Controller steps per telemetry window
	AgingIntervalNs int64   // Physics.AgingInterval in nanoseconds
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Validate(data); err != nil {
			return nil, fmt.Errorf("validating config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks a YAML document against the embedded config schema.
// An empty document is valid.
func Validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	if doc == nil {
		return nil
	}

	// The validator expects the shapes encoding/json produces.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalizing yaml: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("normalizing yaml: %w", err)
	}

	schema, err := jsonschema.CompileString("config.schema.json", schemaJSON)
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}
	return schema.Validate(normalized)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.HalfExtent = c.Ground.Size / 2
	c.Derived.SpawnExtent = c.Derived.HalfExtent - c.Ground.SpawnMargin
	if c.Derived.SpawnExtent < 0 {
		c.Derived.SpawnExtent = 0
	}

	steps := 1
	if c.Physics.DT > 0 {
		steps = int(c.Telemetry.StatsWindow/c.Physics.DT + 0.5)
	}
	if steps < 1 {
		steps = 1
	}
	c.Derived.StepsPerWindow = steps
	c.Derived.AgingIntervalNs = int64(c.Physics.AgingInterval * 1e9)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() {
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
