package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"factory-checker/internal/adapters"
	"factory-checker/internal/app"
)

type watchOptions struct {
	reviewOptions
	Paths    []string
	Debounce time.Duration
}

func newWatchCommand(root *RootConfig) *cobra.Command {
	opts := watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Review the queue again whenever the inputs change",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), cmd, root, opts)
		},
	}
	bindReviewFlags(cmd, &opts.Mode, &opts.DryRun, &opts.Report)
	cmd.Flags().StringSliceVar(&opts.Paths, "watch", nil, "Additional files to watch")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 500*time.Millisecond, "Quiet period before a rerun")
	_ = viper.BindPFlag("watch", cmd.Flags().Lookup("watch"))
	_ = viper.BindPFlag("debounce", cmd.Flags().Lookup("debounce"))
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, root *RootConfig, opts watchOptions) error {
	service := newAppService()
	debounce := opts.Debounce
	if !flagChanged(cmd, "debounce") {
		debounce = viper.GetDuration("debounce")
	}
	service.Watcher = adapters.NewFileWatchAdapter(debounce)
	return service.Watch(ctx, app.WatchRequest{
		ReviewRequest: reviewRequest(cmd, root, opts.reviewOptions),
		ExtraPaths:    resolveStrings(cmd, opts.Paths, "watch", "watch"),
	})
}
