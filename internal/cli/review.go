package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"factory-checker/internal/app"
	"factory-checker/internal/types"
)

type reviewOptions struct {
	Mode   string
	DryRun bool
	Report string
}

func newReviewCommand(root *RootConfig) *cobra.Command {
	opts := reviewOptions{}
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review every queued request once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReview(cmd.Context(), cmd, root, opts)
		},
	}
	bindReviewFlags(cmd, &opts.Mode, &opts.DryRun, &opts.Report)
	return cmd
}

func runReview(ctx context.Context, cmd *cobra.Command, root *RootConfig, opts reviewOptions) error {
	service := newAppService()
	result, err := service.Review(ctx, reviewRequest(cmd, root, opts))
	if err != nil {
		return err
	}
	for _, outcome := range result.Outcomes {
		fmt.Printf("%s %s: %s\n", outcome.Action, outcome.RequestID, outcome.Message)
	}
	fmt.Printf("accepted=%d declined=%d skipped=%d\n", result.Accepted, result.Declined, result.Skipped)
	return nil
}

func reviewRequest(cmd *cobra.Command, root *RootConfig, opts reviewOptions) app.ReviewRequest {
	return app.ReviewRequest{
		CheckerOptions: checkerOptions(cmd, root),
		Mode:           types.CheckerMode(resolveString(cmd, opts.Mode, "mode", "mode")),
		DryRun:         resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
		ReportPath:     resolveString(cmd, opts.Report, "report", "report"),
	}
}

func bindReviewFlags(cmd *cobra.Command, mode *string, dryRun *bool, report *string) {
	cmd.Flags().StringVar(mode, "mode", string(types.CheckerModeSource), "Checker mode (source or tags)")
	cmd.Flags().BoolVar(dryRun, "dry-run", false, "Log outcomes without writing a report")
	cmd.Flags().StringVar(report, "report", "", "Review report output file")
	_ = viper.BindPFlag("mode", cmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
}
