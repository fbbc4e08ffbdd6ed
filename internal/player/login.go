package player

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/showdown-player/internal/clients/showdown"
	"github.com/KirkDiggler/showdown-player/internal/errors"
)

// Login waits for the server's challstr, renames to cfg.Username and returns
// once the server confirms the name.
func Login(ctx context.Context, client showdown.Client, cfg *showdown.LoginConfig) error {
	if client == nil {
		return errors.InvalidArgument("client is required")
	}
	if cfg == nil {
		return errors.InvalidArgument("login config is required")
	}

	renamed := false
	for {
		if err := ctx.Err(); err != nil {
			return errors.FromContext(err, "login abandoned")
		}

		frame, err := client.Receive()
		if err != nil {
			return errors.Wrap(err, "connection lost during login")
		}

		for _, line := range frame.Lines {
			switch line.Type {
			case showdown.MessageChallstr:
				assertion, err := showdown.GetAssertion(ctx, cfg, line.Arg(0))
				if err != nil {
					return err
				}
				if err := showdown.Rename(client, cfg.Username, assertion); err != nil {
					return errors.Wrap(err, "failed to send login")
				}
				renamed = true

			case showdown.MessageUpdateUser:
				if line.Arg(1) == "1" && showdown.ToID(line.Arg(0)) == showdown.ToID(cfg.Username) {
					slog.Info("Logged in", "username", cfg.Username)
					return nil
				}

			case showdown.MessagePopup:
				if renamed {
					return errors.FailedPreconditionf("login failed: %s", line.Arg(0)).
						WithMeta("username", cfg.Username)
				}
			}
		}
	}
}
