package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/showdown-player/internal/clients/showdown"
	"github.com/KirkDiggler/showdown-player/internal/pkg/clock"
	"github.com/KirkDiggler/showdown-player/internal/player"
	battlesession "github.com/KirkDiggler/showdown-player/internal/repositories/battle_session"
)

var (
	usernameFlag  string
	formatFlag    string
	challengeUser string
	battleRoom    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one battle on a Showdown server",
	Long: `Log in to a Showdown server and play a single battle. Examples:

  play --username mybot --challenge someone --format gen9randombattle
  play --username mybot --format gen9randombattle          (ladder search)
  play --username mybot --room battle-gen9randombattle-123 --interactive`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&usernameFlag, "username", "", "account to log in as")
	playCmd.Flags().StringVar(&formatFlag, "format", "", "battle format for a challenge or ladder search")
	playCmd.Flags().StringVar(&challengeUser, "challenge", "", "user to challenge instead of searching the ladder")
	playCmd.Flags().StringVar(&battleRoom, "room", "", "join an existing battle room instead of starting one")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if usernameFlag != "" {
		cfg.Showdown.Username = usernameFlag
	}
	if formatFlag != "" {
		cfg.Showdown.Format = formatFlag
	}
	if cfg.Showdown.Username == "" {
		return fmt.Errorf("a username is required to play")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory, err := policyFactory(cfg)
	if err != nil {
		return err
	}

	decisions, err := newDecisionService(cfg, battlesession.NewInMemory(clock.New()), factory)
	if err != nil {
		return fmt.Errorf("failed to create decision service: %w", err)
	}

	client, err := showdown.Dial(ctx, &showdown.Config{
		URL:              cfg.Showdown.URL,
		HandshakeTimeout: 15 * time.Second,
		WriteTimeout:     10 * time.Second,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	err = player.Login(ctx, client, &showdown.LoginConfig{
		URL:      cfg.Showdown.LoginURL,
		Username: cfg.Showdown.Username,
		Password: cfg.Showdown.Password,
	})
	if err != nil {
		return err
	}

	switch {
	case battleRoom != "":
		err = showdown.JoinRoom(client, battleRoom)
	case challengeUser != "":
		log.Printf("Challenging %s to %s", challengeUser, cfg.Showdown.Format)
		err = showdown.Challenge(client, challengeUser, cfg.Showdown.Format)
	default:
		log.Printf("Searching for a %s battle", cfg.Showdown.Format)
		err = showdown.Search(client, cfg.Showdown.Format)
	}
	if err != nil {
		return err
	}

	p, err := player.New(&player.Config{
		Client:    client,
		Decisions: decisions,
		Username:  cfg.Showdown.Username,
		Room:      battleRoom,
	})
	if err != nil {
		return err
	}

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	switch {
	case result.Tie:
		log.Printf("%s ended in a tie after %d decisions", result.Room, result.Decisions)
	case result.Won:
		log.Printf("Won %s after %d decisions", result.Room, result.Decisions)
	default:
		log.Printf("Lost %s to %s after %d decisions", result.Room, result.Winner, result.Decisions)
	}
	return nil
}
