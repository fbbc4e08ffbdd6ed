package client

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/showdown-player/internal/handlers/api/v1alpha1"
)

var reportErrorCmd = &cobra.Command{
	Use:   "report-error [battle-id] [side] [message...]",
	Short: "Report a server |error| line and get a replacement choice",
	Long: `Pass the text after |error|. Unavailable choices are resolved again from
the latest request. Example:

  report-error battle-gen9randombattle-1 p1 "[Unavailable choice] Can't move: Pikachu is trapped"`,
	Args: cobra.MinimumNArgs(3),
	RunE: reportError,
}

func reportError(_ *cobra.Command, args []string) error {
	fields := battleKey(args[0], args[1])
	fields[v1alpha1.FieldMessage] = strings.Join(args[2:], " ")

	return call(fields, func(c v1alpha1.DecisionServiceClient, req *structpb.Struct) (*structpb.Struct, error) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return c.ReportError(ctx, req)
	})
}
