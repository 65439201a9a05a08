package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/limaJavier/fixture/pkg/evo"
)

// EnvPrefix marks environment overrides; nested keys are separated by a double underscore,
// e.g. FIXTURE_ALGORITHM__POPULATION_SIZE
const EnvPrefix = "FIXTURE_"

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	// Input is the JSON model input.
	Input string `json:"input"`
	// Seed is an optional CSV or XLSX fixture injected as the first individual.
	Seed string `json:"seed"`
	// Output receives the fixture of the best solution.
	Output string `json:"output"`
	// Front receives the final nondominated set.
	Front     string          `json:"front"`
	Algorithm AlgorithmConfig `json:"algorithm"`
}

type AlgorithmConfig struct {
	PopulationSize       int     `json:"population_size" validate:"gte=2"`
	Generations          int     `json:"generations" validate:"gte=1"`
	CrossoverProbability float64 `json:"crossover_probability" validate:"gte=0,lte=1"`
	MutationProbability  float64 `json:"mutation_probability" validate:"gte=0,lte=1"`
	RandomSeed           int64   `json:"random_seed"`
	// Workers evaluating a generation concurrently; 0 or 1 evaluates sequentially.
	Workers int `json:"workers" validate:"gte=0"`
}

// Default returns the configuration used for every key absent from the file and the environment.
func Default() Config {
	return Config{
		Output: "fixture.csv",
		Front:  "front.csv",
		Algorithm: AlgorithmConfig{
			PopulationSize:       100,
			Generations:          50,
			CrossoverProbability: 0.9,
			MutationProbability:  0.01,
			RandomSeed:           1,
		},
	}
}

// SetDefaults fills the fields whose zero value is never meaningful.
// Probabilities and the random seed accept 0, so their defaults only come from Default.
func (c *Config) SetDefaults() {
	defaults := Default()
	if c.Output == "" {
		c.Output = defaults.Output
	}
	if c.Front == "" {
		c.Front = defaults.Front
	}
	if c.Algorithm.PopulationSize == 0 {
		c.Algorithm.PopulationSize = defaults.Algorithm.PopulationSize
	}
	if c.Algorithm.Generations == 0 {
		c.Algorithm.Generations = defaults.Algorithm.Generations
	}
}

// Validate checks the algorithm parameters and the mandatory input path.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if err := validate.Struct(c.Algorithm); err != nil {
		return fmt.Errorf("invalid algorithm configuration: %w", err)
	}
	return nil
}

// Settings returns the run settings; the evaluation budget is population size times generations.
func (c AlgorithmConfig) Settings() evo.Settings {
	return evo.Settings{
		PopulationSize:       c.PopulationSize,
		Generations:          c.Generations,
		CrossoverProbability: c.CrossoverProbability,
		MutationProbability:  c.MutationProbability,
		RandomSeed:           c.RandomSeed,
		Workers:              c.Workers,
	}
}

// Load starts from Default, then reads a YAML or JSON file and applies FIXTURE_ environment overrides.
// An empty path loads the environment only. The result is not validated so that callers may override it first.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	// Keys absent from the sources keep their default, explicit zeros survive
	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return &cfg, nil
}
