// Package config loads the player's YAML profile
package config

import (
	"bytes"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/showdown-player/internal/clients/showdown"
	"github.com/KirkDiggler/showdown-player/internal/errors"
)

// Policy modes
const (
	ModeAutonomous  = "autonomous"
	ModeInteractive = "interactive"
)

// PasswordEnv overrides showdown.password when set
const PasswordEnv = "SHOWDOWN_PASSWORD"

// Config is the process configuration
type Config struct {
	Policy     PolicyConfig   `yaml:"policy"`
	Showdown   ShowdownConfig `yaml:"showdown"`
	Redis      RedisConfig    `yaml:"redis"`
	SessionTTL time.Duration  `yaml:"session_ttl"`
	GRPCPort   int            `yaml:"grpc_port"`
}

// PolicyConfig selects and tunes the choice policy
type PolicyConfig struct {
	Mode string `yaml:"mode"`
	// Probability of moving when both a move and a switch are legal
	MoveBias float64 `yaml:"move_bias"`
	// Probability of trying dynamax, mega evolution or ultra burst
	TransformProbability float64 `yaml:"transform_probability"`
	// Zero derives a seed from the battle id
	Seed uint64 `yaml:"seed"`
}

// ShowdownConfig is the server and account used for live play
type ShowdownConfig struct {
	URL      string `yaml:"url"`
	LoginURL string `yaml:"login_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Format   string `yaml:"format"`
}

// RedisConfig points at the session store; an empty endpoint keeps sessions in memory
type RedisConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Policy: PolicyConfig{
			Mode:     ModeAutonomous,
			MoveBias: 1.0,
		},
		Showdown: ShowdownConfig{
			URL:      showdown.DefaultServerURL,
			LoginURL: showdown.DefaultLoginURL,
			Format:   "gen9randombattle",
		},
		SessionTTL: 30 * time.Minute,
		GRPCPort:   50051,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.InvalidArgumentf("failed to read config %s: %v", path, err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}

	if password := os.Getenv(PasswordEnv); password != "" {
		cfg.Showdown.Password = password
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return errors.InvalidArgument(err.Error())
	}
	return nil
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("policy.mode", c.Policy.Mode, []string{ModeAutonomous, ModeInteractive}, vb)
	errors.ValidateProbability("policy.move_bias", c.Policy.MoveBias, vb)
	errors.ValidateProbability("policy.transform_probability", c.Policy.TransformProbability, vb)

	if c.SessionTTL <= 0 {
		vb.InvalidField("session_ttl", "must be positive")
	}
	errors.ValidateRange("grpc_port", c.GRPCPort, 1, 65535, vb)

	return vb.Build()
}

// Interactive reports whether a human chooses the actions
func (c *Config) Interactive() bool {
	return c.Policy.Mode == ModeInteractive
}
