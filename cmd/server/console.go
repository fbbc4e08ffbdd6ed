package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/KirkDiggler/showdown-player/internal/config"
	"github.com/KirkDiggler/showdown-player/internal/engine"
	"github.com/KirkDiggler/showdown-player/internal/engine/policy"
	"github.com/KirkDiggler/showdown-player/internal/orchestrators/decision"
	"github.com/KirkDiggler/showdown-player/internal/pkg/prng"
)

// policyFactory returns nil for autonomous play, which leaves the
// orchestrator on its default policy.
func policyFactory(cfg *config.Config) (decision.PolicyFactory, error) {
	if !cfg.Interactive() {
		return nil, nil
	}

	interactive, err := policy.NewInteractive(&policy.InteractiveConfig{
		Input:    policy.NewLineInput(os.Stdin),
		Prompter: &consolePrompter{out: os.Stdout},
	})
	if err != nil {
		return nil, err
	}

	return func(prng.Source) (engine.Policy, error) {
		return interactive, nil
	}, nil
}

// consolePrompter renders prompts as plain text
type consolePrompter struct {
	mu  sync.Mutex
	out io.Writer
}

func (c *consolePrompter) Prompt(_ context.Context, prompt *policy.Prompt) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	switch prompt.Kind {
	case policy.PromptTeam:
		fmt.Fprintf(&b, "\nTeam preview: pick up to %d, e.g. \"team 123\" or \"default\"\n", prompt.MaxTeamSize)
		writeCandidates(&b, prompt.Team)
	case policy.PromptSwitch:
		fmt.Fprintf(&b, "\nSlot %d: %s must be replaced. Enter a roster slot.\n", prompt.Slot.Index+1, prompt.Slot.Pokemon)
		writeCandidates(&b, prompt.Switches)
	default:
		fmt.Fprintf(&b, "\nSlot %d: %s", prompt.Slot.Index+1, prompt.Slot.Pokemon)
		if prompt.Slot.Trapped {
			b.WriteString(" (trapped)")
		}
		b.WriteString("\n")
		writeMoves(&b, prompt.Slot)
		if len(prompt.Switches) > 0 {
			b.WriteString("  switch <n>:\n")
			writeCandidates(&b, prompt.Switches)
		}
	}
	b.WriteString("> ")

	_, err := io.WriteString(c.out, b.String())
	return err
}

func (c *consolePrompter) Reject(_ context.Context, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.out, "! %s\n> ", reason)
	return err
}

func writeMoves(b *strings.Builder, slot *engine.SlotSummary) {
	for _, m := range slot.Moves {
		fmt.Fprintf(b, "  %d. %s", m.Index, m.DisplayName)
		if m.MaxPP > 0 {
			fmt.Fprintf(b, " [%d/%d]", m.PP, m.MaxPP)
		}
		if m.Disabled {
			b.WriteString(" (disabled)")
		}
		b.WriteString("\n")
	}
	for _, z := range slot.ZMoves {
		fmt.Fprintf(b, "  %d zmove. %s\n", z.Index, z.DisplayName)
	}
	if len(slot.MaxMoves) > 0 {
		names := make([]string, 0, len(slot.MaxMoves))
		for _, m := range slot.MaxMoves {
			names = append(names, m.DisplayName)
		}
		fmt.Fprintf(b, "  max moves: %s\n", strings.Join(names, ", "))
	}
}

func writeCandidates(b *strings.Builder, candidates []engine.SwitchCandidate) {
	for _, c := range candidates {
		fmt.Fprintf(b, "    %d. %s %s\n", c.Slot, c.Name, c.Condition)
	}
}
