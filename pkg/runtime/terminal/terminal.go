package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/irevolution/pkg/config"
	"github.com/de-tools/irevolution/pkg/dataset"
	"github.com/de-tools/irevolution/pkg/runtime/terminal/commands"
	"github.com/de-tools/irevolution/pkg/runtime/terminal/export"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	logOut  io.Writer
	rootCmd *cobra.Command

	configPath string
	verbose    bool
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Logs defaults to stderr
	Logs io.Writer
	// Source overrides the API client, mostly for tests
	Source   commands.SourceFactory
	Fetchers dataset.Registry
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}

	cli := &CLI{
		env: &commands.Env{
			Reporter: export.NewReporter(opts.Output),
			Source:   opts.Source,
			Fetchers: opts.Fetchers,
		},
		logOut: opts.Logs,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args[1:]
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "irevolution",
		Short:             "Apple products dashboard",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(commands.NewFetchCmd(cli.env))
	cmd.AddCommand(commands.NewKPIsCmd(cli.env))
	cmd.AddCommand(commands.NewProductsCmd(cli.env))
	cmd.AddCommand(commands.NewDashboardCmd(cli.env))

	return cmd
}

// setup loads .env and the configuration and puts a logger in the context.
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cli.env.Config = cfg

	level := zerolog.InfoLevel
	if cli.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.logOut}).
		Level(level).
		With().Timestamp().Logger()

	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}
