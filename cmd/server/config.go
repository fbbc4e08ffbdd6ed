package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/showdown-player/internal/config"
)

var (
	configPath      string
	seedFlag        uint64
	moveBiasFlag    float64
	transformFlag   float64
	interactiveFlag bool
)

// loadConfig reads the profile and applies any flags set on the command line
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Policy.Seed = seedFlag
	}
	if flags.Changed("move-bias") {
		cfg.Policy.MoveBias = moveBiasFlag
	}
	if flags.Changed("transform-probability") {
		cfg.Policy.TransformProbability = transformFlag
	}
	if flags.Changed("interactive") {
		cfg.Policy.Mode = config.ModeAutonomous
		if interactiveFlag {
			cfg.Policy.Mode = config.ModeInteractive
		}
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.GRPCPort = grpcPort
	}
	if flags.Lookup("redis") != nil && flags.Changed("redis") {
		cfg.Redis.Endpoint = redisEndpoint
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
