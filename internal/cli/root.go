package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"factory-checker/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "FACTORY_CHECKER"

type RootConfig struct {
	ConfigFile       string
	LogLevel         string
	CheckerConfig    string
	Snapshot         string
	APIURL           string
	UpstreamProjects []string
	HistoryLimit     int
}

func Execute() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Msg(errorMessage(err))
		stop()
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := &RootConfig{}
	cmd := &cobra.Command{
		Use:           "factory-checker",
		Short:         "Review bot checking that submissions are already upstream",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(log.Logger.WithContext(ctx))
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.StringVar(&cfg.CheckerConfig, "checker-config", "", "Checker config file (upstream projects, overrides, namespace map)")
	flags.StringVar(&cfg.Snapshot, "snapshot", "", "Build service snapshot file")
	flags.StringVar(&cfg.APIURL, "api-url", "", "Primary build service endpoint")
	flags.StringSliceVar(&cfg.UpstreamProjects, "upstream", nil, "Upstream projects to check, in order")
	flags.IntVar(&cfg.HistoryLimit, "history-limit", 0, "Number of upstream revisions to compare against")
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("checker_config", flags.Lookup("checker-config"))
	_ = viper.BindPFlag("snapshot", flags.Lookup("snapshot"))
	_ = viper.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = viper.BindPFlag("upstream_projects", flags.Lookup("upstream"))
	_ = viper.BindPFlag("history_limit", flags.Lookup("history-limit"))

	cmd.AddCommand(newCheckCommand(cfg))
	cmd.AddCommand(newTagsCommand(cfg))
	cmd.AddCommand(newReviewCommand(cfg))
	cmd.AddCommand(newWatchCommand(cfg))
	cmd.AddCommand(newCandidatesCommand(cfg))
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("factory-checker")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/factory-checker")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func newAppService() app.Service {
	return app.NewService()
}

// checkerOptions merges the shared flags with config file and environment
// values.
func checkerOptions(cmd *cobra.Command, cfg *RootConfig) app.CheckerOptions {
	return app.CheckerOptions{
		ConfigPath:       resolveString(cmd, cfg.CheckerConfig, "checker_config", "checker-config"),
		SnapshotPath:     resolveString(cmd, cfg.Snapshot, "snapshot", "snapshot"),
		APIURL:           resolveString(cmd, cfg.APIURL, "api_url", "api-url"),
		UpstreamProjects: resolveStrings(cmd, cfg.UpstreamProjects, "upstream_projects", "upstream"),
		HistoryLimit:     resolveInt(cmd, cfg.HistoryLimit, "history_limit", "history-limit"),
	}
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	switch code {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
