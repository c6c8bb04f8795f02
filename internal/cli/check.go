package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"factory-checker/internal/app"
	"factory-checker/internal/types"
)

type checkOptions struct {
	SourceProject string
	SourcePackage string
	Revision      string
	TargetProject string
	TargetPackage string
}

func newCheckCommand(root *RootConfig) *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether one submission is already upstream",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.SourceProject, "source-project", "", "Source project")
	cmd.Flags().StringVar(&opts.SourcePackage, "source-package", "", "Source package")
	cmd.Flags().StringVar(&opts.Revision, "rev", "", "Source revision (latest when empty)")
	cmd.Flags().StringVar(&opts.TargetProject, "target-project", "", "Target project")
	cmd.Flags().StringVar(&opts.TargetPackage, "target-package", "", "Target package (defaults to the source package)")
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, root *RootConfig, opts checkOptions) error {
	service := newAppService()
	result, err := service.Check(ctx, app.CheckRequest{
		CheckerOptions: checkerOptions(cmd, root),
		Source: types.SourceCoordinate{
			Project:  opts.SourceProject,
			Package:  opts.SourcePackage,
			Revision: opts.Revision,
		},
		Target: types.SourceCoordinate{
			Project: opts.TargetProject,
			Package: opts.TargetPackage,
		},
	})
	if err != nil {
		return err
	}
	printDecision(result.Decision)
	return nil
}

func printDecision(decision types.Decision) {
	fmt.Printf("%s: %s\n", decision.Verdict, decision.Reason)
	for _, blocker := range decision.Blockers {
		if blocker.Anomaly {
			fmt.Printf("  blocked in %s (anomaly): %s\n", blocker.Project, blocker.Reason)
			continue
		}
		fmt.Printf("  blocked in %s: %s\n", blocker.Project, blocker.Reason)
	}
}
