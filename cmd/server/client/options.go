package client

import (
	"context"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/showdown-player/internal/handlers/api/v1alpha1"
)

var optionsCmd = &cobra.Command{
	Use:   "options [battle-id] [side]",
	Short: "Show the legal options for the latest request",
	Args:  cobra.ExactArgs(2),
	RunE:  getOptions,
}

func getOptions(_ *cobra.Command, args []string) error {
	return call(battleKey(args[0], args[1]), func(c v1alpha1.DecisionServiceClient, req *structpb.Struct) (*structpb.Struct, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return c.GetOptions(ctx, req)
	})
}
