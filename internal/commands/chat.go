package commands

import (
	"github.com/spf13/cobra"
)

// NewChatCmd creates the chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	var ephemeral bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive chat app",
		Long: `Start the interactive app. It opens on the chat view when a session
exists, otherwise on the sign-in view.

With --ephemeral the session lives in memory and is forgotten on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(deps, ephemeral)
		},
	}

	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "Keep the session in memory only")
	return cmd
}
