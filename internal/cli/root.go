// Package cli wires the patientor commands: the API server and the
// terminal front end that talks to it.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"patientor/internal/client"
	"patientor/internal/config"
)

// app is the state shared by every command once the root has loaded the
// configuration.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
}

func (a *app) client() *client.Client {
	return client.New(a.cfg.Client.BaseURL,
		client.WithToken(a.cfg.Client.Token),
		client.WithTimeout(a.cfg.Client.Timeout),
		client.WithLogger(a.logger),
	)
}

// NewRootCommand builds the patientor command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "patientor",
		Short:         "Patient records server and terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel, _ = flags.GetString("log-level")
			}
			if flags.Changed("api") {
				base, _ := flags.GetString("api")
				cfg.Client.BaseURL = strings.TrimRight(base, "/")
			}
			if flags.Changed("token") {
				cfg.Client.Token, _ = flags.GetString("token")
			}

			logger, err := newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("api", "", "API base URL, overrides API_BASE_URL")
	rootCmd.PersistentFlags().String("token", "", "Bearer token, overrides API_TOKEN")

	rootCmd.AddCommand(serveCmd(a))
	rootCmd.AddCommand(tokenCmd(a))
	rootCmd.AddCommand(pingCmd(a))
	rootCmd.AddCommand(patientsCmd(a))
	rootCmd.AddCommand(entriesCmd(a))
	rootCmd.AddCommand(diagnosesCmd(a))

	return rootCmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

func newLogger(w io.Writer, cfg *config.Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(w).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	}
	return logger.Level(level), nil
}
