package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"factory-checker/internal/app"
)

func newCandidatesCommand(root *RootConfig) *cobra.Command {
	var pkg string
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "Show the upstream projects a package is checked against",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCandidates(cmd.Context(), cmd, root, pkg)
		},
	}
	cmd.Flags().StringVar(&pkg, "package", "", "Package name")
	return cmd
}

func runCandidates(ctx context.Context, cmd *cobra.Command, root *RootConfig, pkg string) error {
	service := newAppService()
	result, err := service.Candidates(ctx, app.CandidatesRequest{
		CheckerOptions: checkerOptions(cmd, root),
		Package:        pkg,
	})
	if err != nil {
		return err
	}
	for _, route := range result.Routes {
		fmt.Printf("%s%s %s (%s#)\n", route.ProjectPrefix, route.Project, route.Endpoint, route.RequestPrefix)
	}
	return nil
}
