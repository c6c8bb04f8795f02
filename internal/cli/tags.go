package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"factory-checker/internal/app"
)

func newTagsCommand(root *RootConfig) *cobra.Command {
	var requestID string
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Check issue references of one queued request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTags(cmd.Context(), cmd, root, requestID)
		},
	}
	cmd.Flags().StringVar(&requestID, "request", "", "Request id")
	return cmd
}

func runTags(ctx context.Context, cmd *cobra.Command, root *RootConfig, requestID string) error {
	service := newAppService()
	result, err := service.Tags(ctx, app.TagsRequest{
		CheckerOptions: checkerOptions(cmd, root),
		RequestID:      requestID,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s %s: %s\n", result.Outcome.Action, result.Outcome.RequestID, result.Outcome.Message)
	return nil
}
