// Package commands provides CLI commands for uplyft.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/diogo/uplyft/internal/config"
	"github.com/diogo/uplyft/internal/logging"
	"github.com/diogo/uplyft/internal/session"
	"github.com/diogo/uplyft/internal/transcript"
	"github.com/diogo/uplyft/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd creates the uplyft command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	var (
		endpointFlag string
		versionFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "uplyft",
		Short: "Terminal client for the Uplyft AI Support Assistant",
		Long: `uplyft is a terminal chat client for the Uplyft AI Support Assistant.
It signs you in with a simulated login form and relays each message to the
assistant backend, one exchange at a time.

Examples:
  uplyft                                Start the interactive app
  uplyft ask "What can you do?"         Send a single message
  cat question.md | uplyft ask          Read the message from stdin
  uplyft login --email jane@example.com Sign in without the TUI
  uplyft dev-backend                    Run a local echo backend`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				return nil
			}
			return deps.setup(endpointFlag)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Flush()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				fmt.Fprintf(cmd.OutOrStdout(), "uplyft %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runApp(deps, false)
		},
	}

	cmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "",
		fmt.Sprintf("Backend chat URL (overrides config and %s)", config.EnvEndpoint))
	cmd.Flags().BoolVar(&versionFlag, "version", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewAskCmd(deps))
	cmd.AddCommand(NewLoginCmd(deps))
	cmd.AddCommand(NewLogoutCmd(deps))
	cmd.AddCommand(NewWhoamiCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))
	cmd.AddCommand(NewDevBackendCmd(deps))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Flush()
		stop()
		os.Exit(1)
	}
}

// runApp starts the TUI. Ephemeral sessions live in memory only.
func runApp(deps *Dependencies, ephemeral bool) error {
	var store session.Store = session.NewMemoryStore()
	if !ephemeral {
		var err error
		if store, err = deps.sessionStore(); err != nil {
			return fmt.Errorf("failed to open session: %w", err)
		}
	}

	client, release, err := deps.chatClient()
	if err != nil {
		return err
	}
	defer release()

	exportDir, err := config.GetExportDir(deps.cfg)
	if err != nil {
		return err
	}
	exportFormat, err := transcript.ParseFormat(deps.cfg.ExportFormat)
	if err != nil {
		return fmt.Errorf("invalid export_format: %w", err)
	}

	return deps.TUI.RunApp(tui.Options{
		Store:        store,
		Client:       client,
		Render:       deps.cfg.RenderOptions(),
		ExportDir:    exportDir,
		ExportFormat: exportFormat,
		Clipboard:    deps.clipboardFunc(),
	})
}
