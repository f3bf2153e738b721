package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/snadboy/notiongen/internal/notion"
	"github.com/snadboy/notiongen/internal/sbnotion"
	"github.com/snadboy/notiongen/internal/sbnotion/config"
)

type rootOptions struct {
	logLevel string
	logFile  string
}

var rootOpts = &rootOptions{}

var rootCmd = &cobra.Command{
	Use:   "notiongen",
	Short: "Typed Go bindings for Notion databases",
	Long: `notiongen inspects the Notion databases visible to an API token and
generates Go record types for them, regenerating whenever a database
schema drifts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootOpts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootOpts.logFile, "log-file", "", "Log file path (default: stderr)")
}

// newLogger builds the logging sink shared by all commands. It is
// constructed once per invocation and passed down explicitly.
func newLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(rootOpts.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", rootOpts.logLevel, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	if rootOpts.logFile != "" {
		cfg.OutputPaths = []string{rootOpts.logFile}
	}
	return cfg.Build()
}

// newService loads config, validates the credential and wires up the
// service. outputDir, when non-empty, overrides the configured one.
func newService(outputDir string, opts ...sbnotion.ServiceOption) (*sbnotion.Service, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}

	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	client := notion.NewClient(cfg.Token)
	return sbnotion.New(client, outputDir, logger, opts...), logger, nil
}
