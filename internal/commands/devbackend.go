package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/uplyft/internal/devserver"
)

// NewDevBackendCmd creates the dev-backend command
func NewDevBackendCmd(deps *Dependencies) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "dev-backend",
		Short: "Run a local echo backend for testing",
		Long: `Serve POST /chat on --addr, answering every message with
"You said: <message>". Point the client at it with
--endpoint http://localhost:5000/chat. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Stub backend listening on %s (POST /chat)\n", addr)
			return devserver.Run(ctx, addr, devserver.Echo)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":5000", "Listen address")
	return cmd
}
