package client

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/showdown-player/internal/handlers/api/v1alpha1"
)

var decideCmd = &cobra.Command{
	Use:   "decide [battle-id] [side] [request-file]",
	Short: "Resolve a Showdown request into a choice",
	Long: `Send the JSON payload of a |request| line and print the choice. Examples:

  decide battle-gen9randombattle-1 p1 request.json
  cat request.json | decide battle-gen9randombattle-1 p1 -`,
	Args: cobra.ExactArgs(3),
	RunE: decide,
}

func decide(_ *cobra.Command, args []string) error {
	request, err := readRequest(args[2])
	if err != nil {
		return err
	}

	fields := battleKey(args[0], args[1])
	fields[v1alpha1.FieldRequest] = request

	return call(fields, func(c v1alpha1.DecisionServiceClient, req *structpb.Struct) (*structpb.Struct, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return c.Decide(ctx, req, grpc.WaitForReady(true))
	})
}

func readRequest(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read request: %w", err)
	}
	return string(data), nil
}
