package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/uplyft/internal/auth"
	"github.com/diogo/uplyft/internal/models"
	"github.com/diogo/uplyft/internal/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd(deps *Dependencies) *cobra.Command {
	var (
		email  string
		name   string
		signup bool
		google bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in without opening the app",
		Long: `Write the display identity to the session file.

Nothing is verified: the name defaults to the part of the email before '@'
unless --name is given. --signup requires --name. --google signs in with the
placeholder Google identity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := loginIdentity(email, name, signup, google)
			if err != nil {
				return err
			}

			store, err := deps.sessionStore()
			if err != nil {
				return fmt.Errorf("failed to open session: %w", err)
			}
			if err := session.SignIn(store, id); err != nil {
				return fmt.Errorf("failed to sign in: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Signed in as %s", formatIdentity(id)),
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().BoolVar(&signup, "signup", false, "Create an account instead of signing in")
	cmd.Flags().BoolVar(&google, "google", false, "Continue with Google (placeholder identity)")
	cmd.MarkFlagsMutuallyExclusive("google", "email")
	cmd.MarkFlagsMutuallyExclusive("google", "signup")

	return cmd
}

// loginIdentity derives the identity the login flags describe
func loginIdentity(email, name string, signup, google bool) (models.Identity, error) {
	if google {
		return auth.Federated(), nil
	}

	mode := auth.ModeLogin
	if signup {
		mode = auth.ModeSignup
	}

	form := auth.Form{Mode: mode, Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	switch {
	case form.Email == "":
		return models.Identity{}, fmt.Errorf("--email is required")
	case mode == auth.ModeSignup && form.Name == "":
		return models.Identity{}, fmt.Errorf("--name is required with --signup")
	}
	return form.Identity(), nil
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := deps.sessionStore()
			if err != nil {
				return fmt.Errorf("failed to open session: %w", err)
			}
			if err := session.SignOut(store); err != nil {
				return fmt.Errorf("failed to sign out: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := deps.sessionStore()
			if err != nil {
				return fmt.Errorf("failed to open session: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatIdentity(session.LoadIdentity(store)))
			if !session.SignedIn(store) {
				fmt.Fprintln(out, lipgloss.NewStyle().Foreground(colorTextDim).Render("(not signed in)"))
			}
			return nil
		},
	}
}

// formatIdentity renders "Name <email>"
func formatIdentity(id models.Identity) string {
	return fmt.Sprintf("%s <%s>", id.Name, id.Email)
}
