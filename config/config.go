// Package config provides configuration loading for the simulation.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation parameters. It is read once when a simulation
// starts and never mutated afterwards.
type Config struct {
	// Brain
	BrainNeurons int `yaml:"brain_neurons"` // Hidden layer size

	// Eye
	EyeFOVRange float32 `yaml:"eye_fov_range"` // Vision distance in world units
	EyeFOVAngle float32 `yaml:"eye_fov_angle"` // Field of view in radians
	EyeCells    int     `yaml:"eye_cells"`     // Angular buckets, also the brain's input count

	// Food
	FoodSize float32 `yaml:"food_size"` // Consumption radius

	// Genetic algorithm
	GAReverse   bool    `yaml:"ga_reverse"`    // Reward animals that ate the least
	GAMutChance float32 `yaml:"ga_mut_chance"` // Per-gene mutation probability
	GAMutCoeff  float32 `yaml:"ga_mut_coeff"`  // Maximum per-gene perturbation

	// Simulation
	SimSpeedMin         float32 `yaml:"sim_speed_min"`
	SimSpeedMax         float32 `yaml:"sim_speed_max"`
	SimSpeedAccel       float32 `yaml:"sim_speed_accel"`    // Max speed change per tick
	SimRotationAccel    float32 `yaml:"sim_rotation_accel"` // Max rotation change per tick
	SimGenerationLength int     `yaml:"sim_generation_length"`

	// World
	WorldAnimals int `yaml:"world_animals"`
	WorldFoods   int `yaml:"world_foods"`
}

// fieldNames lists every yaml key of Config; all of them are required.
var fieldNames = func() []string {
	t := reflect.TypeOf(Config{})
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		names = append(names, name)
	}
	return names
}()

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load reads a configuration file. If path is empty the embedded defaults
// are returned. The file must define every field and nothing else.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML or JSON document into a validated Config.
// Unknown keys and missing keys are both errors.
func Parse(data []byte) (*Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := checkRequired(&root); err != nil {
		return nil, err
	}

	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkRequired verifies the document is a mapping that names every field.
func checkRequired(root *yaml.Node) error {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("config is empty")
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return fmt.Errorf("config must be a mapping, got %s", kindName(mapping.Kind))
	}

	present := make(map[string]bool, len(mapping.Content)/2)
	var empty []string
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]
		present[key.Value] = true
		// A bare "key:" parses as null, just like an explicit null or ~.
		if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null" {
			empty = append(empty, key.Value)
		}
	}

	var missing []string
	for _, name := range fieldNames {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing config fields: %s", strings.Join(missing, ", "))
	}
	if len(empty) > 0 {
		return fmt.Errorf("config fields without a value: %s", strings.Join(empty, ", "))
	}
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// Validate checks the invariants the simulation relies on.
func (c *Config) Validate() error {
	switch {
	case c.BrainNeurons <= 0:
		return fmt.Errorf("brain_neurons must be positive, got %d", c.BrainNeurons)
	case c.EyeCells <= 0:
		return fmt.Errorf("eye_cells must be positive, got %d", c.EyeCells)
	case c.EyeFOVRange <= 0:
		return fmt.Errorf("eye_fov_range must be positive, got %v", c.EyeFOVRange)
	case c.EyeFOVAngle <= 0:
		return fmt.Errorf("eye_fov_angle must be positive, got %v", c.EyeFOVAngle)
	case c.FoodSize < 0:
		return fmt.Errorf("food_size must not be negative, got %v", c.FoodSize)
	case c.GAMutChance < 0 || c.GAMutChance > 1:
		return fmt.Errorf("ga_mut_chance must be within [0, 1], got %v", c.GAMutChance)
	case c.SimSpeedMin > c.SimSpeedMax:
		return fmt.Errorf("sim_speed_min (%v) exceeds sim_speed_max (%v)", c.SimSpeedMin, c.SimSpeedMax)
	case c.SimSpeedAccel < 0:
		return fmt.Errorf("sim_speed_accel must not be negative, got %v", c.SimSpeedAccel)
	case c.SimRotationAccel < 0:
		return fmt.Errorf("sim_rotation_accel must not be negative, got %v", c.SimRotationAccel)
	case c.SimGenerationLength < 1:
		return fmt.Errorf("sim_generation_length must be at least 1, got %d", c.SimGenerationLength)
	case c.WorldAnimals < 1:
		return fmt.Errorf("world_animals must be at least 1, got %d", c.WorldAnimals)
	case c.WorldFoods < 0:
		return fmt.Errorf("world_foods must not be negative, got %d", c.WorldFoods)
	}
	return nil
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
