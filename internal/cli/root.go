// Package cli implements the fightpicks command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/fightpicks/internal/adapters/http/client"
	"github.com/okian/fightpicks/internal/config"
	"github.com/okian/fightpicks/pkg/logger"
)

// Version is set at build time via ldflags.
var Version = "dev"

func newRootCmd() *cobra.Command {
	var serverURL string
	cfg := config.New()

	root := &cobra.Command{
		Use:   "fightpicks",
		Short: "Pick fight winners and keep them in sync with the picks server",
		Long: `fightpicks keeps a local draft of your picks for a fight card,
merges in what the picks server has, and saves your edits back.

Configuration comes from defaults, an optional YAML file named by
FIGHTPICKS_CONFIG, and FIGHTPICKS_* environment variables.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if serverURL != "" {
				loaded.ServerURL = serverURL
				if err := loaded.Validate(); err != nil {
					return err
				}
			}
			if err := logger.Init(logger.WithFormat(loaded.LogFormat), logger.WithOutput(cmd.ErrOrStderr())); err != nil {
				return err
			}
			if err := logger.SetLevelString(loaded.LogLevel); err != nil {
				logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
					logger.String("log_level", loaded.LogLevel), logger.Error(err))
				_ = logger.SetLevelString("info")
			}
			*cfg = *loaded
			return nil
		},
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "", "picks server base URL, overrides server_url")

	root.AddCommand(newServeCmd(cfg))
	root.AddCommand(newShowCmd(cfg))
	root.AddCommand(newPickCmd(cfg))
	return root
}

// Execute runs the root command, exiting non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient(cfg *config.Config) (*client.Client, error) {
	return client.New(cfg.ServerURL,
		client.WithTimeout(cfg.RequestTimeout()),
		client.WithSessionCookie(cfg.SessionCookieName, cfg.SessionToken),
	)
}

func eventArg(cfg *config.Config, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return cfg.DefaultEvent
}
