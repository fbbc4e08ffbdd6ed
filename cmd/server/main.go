// Package main is the entry point for the showdown player
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/showdown-player/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "showdown-player",
	Short: "Pokémon Showdown decision engine",
	Long: `showdown-player turns Pokémon Showdown requests into legal choices.
It can serve decisions over gRPC or play battles directly on a Showdown server.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML profile to load")
	flags.Uint64Var(&seedFlag, "seed", 0, "seed for every side's random source (0 derives one per battle)")
	flags.Float64Var(&moveBiasFlag, "move-bias", 1.0, "probability of moving when a switch is also legal")
	flags.Float64Var(&transformFlag, "transform-probability", 0, "probability of dynamax, mega evolution or ultra burst")
	flags.BoolVar(&interactiveFlag, "interactive", false, "ask on the terminal instead of choosing at random")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
