package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/exascience/paraccum/internal/config"
	"github.com/exascience/paraccum/internal/log"
	"github.com/exascience/paraccum/parallel"
)

// Errors returned by the commands before any work starts.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrLogHandlerFailed = errors.New("log handler failed")
)

type rootArgs struct {
	configFile string
	workers    int
	threshold  int
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

// NewRootCmd returns the paraccum root command with all subcommands.
func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := &rootArgs{}

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&args.configFile, "config", "", "Read settings from this YAML file")
	pf.IntVar(&args.workers, "workers", 0, "Number of workers, including the calling goroutine (default GOMAXPROCS)")
	pf.IntVar(&args.threshold, "threshold", parallel.DefaultThreshold, "Minimum number of elements per worker")
	pf.StringVar(&args.logLevel, "log_level", "warn", "Set the log level (debug, info, warn, error)")
	pf.StringVar(&args.logFormat, "log_format", "text", "Set the log format (text, logfmt, json)")

	err := cmd.MarkPersistentFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(err)
	}

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		return args.resolve(cc)
	}

	cmd.AddCommand(newSumCmd(args))
	cmd.AddCommand(newRandomCmd(args))
	cmd.AddCommand(newQueueCmd(args))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// resolve merges defaults, the config file and explicitly set flags, in
// that order, and installs the logger.
func (a *rootArgs) resolve(cc *cobra.Command) error {
	cfg, err := config.LoadFile(a.configFile)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	flags := cc.Flags()

	var merr error

	if flags.Changed("workers") {
		if a.workers < 1 {
			merr = multierror.Append(merr, fmt.Errorf("--workers must be at least 1, got %d", a.workers))
		}

		cfg.Workers = a.workers
	}

	if flags.Changed("threshold") {
		if a.threshold < 1 {
			merr = multierror.Append(merr, fmt.Errorf("--threshold must be at least 1, got %d", a.threshold))
		}

		cfg.Threshold = a.threshold
	}

	if flags.Changed("log_level") || cfg.LogLevel == "" {
		cfg.LogLevel = a.logLevel
	}

	if flags.Changed("log_format") || cfg.LogFormat == "" {
		cfg.LogFormat = a.logFormat
	}

	if merr != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
	}

	h, err := log.CreateHandler(cc.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
	}

	a.cfg = cfg
	a.logger = slog.New(h)
	slog.SetDefault(a.logger)

	a.logger.Debug("ready to go", "workers", cfg.Workers, "threshold", cfg.Threshold)

	return nil
}
