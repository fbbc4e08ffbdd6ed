package client

import (
	"context"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/showdown-player/internal/handlers/api/v1alpha1"
)

var endBattleCmd = &cobra.Command{
	Use:   "end-battle [battle-id] [side]",
	Short: "Drop the session for a finished battle",
	Args:  cobra.ExactArgs(2),
	RunE:  endBattle,
}

func endBattle(_ *cobra.Command, args []string) error {
	return call(battleKey(args[0], args[1]), func(c v1alpha1.DecisionServiceClient, req *structpb.Struct) (*structpb.Struct, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return c.EndBattle(ctx, req)
	})
}
