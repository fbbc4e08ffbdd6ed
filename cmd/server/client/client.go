// Package client provides commands that call a running decision server
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/showdown-player/internal/errors"
	"github.com/KirkDiggler/showdown-player/internal/handlers/api/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running decision server",
	Long:  `Client commands send real gRPC requests to the decision server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(decideCmd)
	ClientCmd.AddCommand(reportErrorCmd)
	ClientCmd.AddCommand(optionsCmd)
	ClientCmd.AddCommand(endBattleCmd)
}

// createDecisionClient creates a decision service client
func createDecisionClient() (v1alpha1.DecisionServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewDecisionServiceClient(conn), cleanup, nil
}

func battleKey(battleID, side string) map[string]any {
	return map[string]any{
		v1alpha1.FieldBattleID: battleID,
		v1alpha1.FieldSide:     side,
	}
}

// call builds the request struct, invokes rpc and prints the response
func call(
	fields map[string]any,
	rpc func(v1alpha1.DecisionServiceClient, *structpb.Struct) (*structpb.Struct, error),
) error {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	client, cleanup, err := createDecisionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := rpc(client, req)
	if err != nil {
		err = errors.FromGRPCError(err)
		if errors.IsRetryable(err) {
			fmt.Println("retryable: send the latest request again")
		}
		if meta := errors.GetMeta(err); len(meta) > 0 {
			return fmt.Errorf("%w %v", err, meta)
		}
		return err
	}

	out, err := protojson.MarshalOptions{Multiline: true}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to render response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
