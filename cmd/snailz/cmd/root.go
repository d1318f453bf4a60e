package cmd

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/agenthands/snailz/pkg/config"
	"github.com/agenthands/snailz/pkg/logging"
	"github.com/agenthands/snailz/pkg/session"
)

var (
	cfgFile  string
	logLevel string
	sortName string
	seed     uint64

	appConfig *config.Config
	logger    *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "snailz",
	Short: "Snailz interpreter",
	Long: `snailz runs programs written in the Snailz language, one statement
per line.

Without a subcommand it starts the interactive REPL.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runREPL,
}

// Execute runs the root command. Errors are returned, not printed; the caller
// reports them once.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $SNAILZ_CONFIG, ./snailz.toml, ./snailz.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&sortName, "sort", "", "sort strategy (shuffle, deterministic)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "seed for the shuffle sort (0 = random)")
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		appConfig.Log.Level = logLevel
	}
	if flags.Changed("sort") {
		appConfig.Eval.Sort = sortName
	}
	if flags.Changed("seed") {
		appConfig.Eval.Seed = seed
	}
	if err := appConfig.Validate(); err != nil {
		return err
	}

	logger, err = logging.New(appConfig.LoggerConfig("snailz"))
	return err
}

// newSession builds a session from the loaded configuration.
func newSession(out io.Writer) (*session.Session, error) {
	sorter, err := appConfig.Sorter()
	if err != nil {
		return nil, err
	}
	return session.New(
		session.WithOutput(out),
		session.WithSorter(sorter),
		session.WithLogger(logger),
	), nil
}
