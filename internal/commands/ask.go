package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/diogo/uplyft/internal/exchange"
	"github.com/diogo/uplyft/internal/render"
	"github.com/diogo/uplyft/internal/tui"
)

// errEmptyMessage is returned when no message text was given
var errEmptyMessage = errors.New("message cannot be empty")

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginBottom(1)
)

// NewAskCmd creates the one-shot ask command
func NewAskCmd(deps *Dependencies) *cobra.Command {
	var fileFlag, outputFlag string

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Send a single message and print the reply",
		Long: `Send one message to the assistant and print its reply.

The message comes from the argument, from --file, or from stdin.
When stdout is not a terminal only the raw reply text is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := readMessage(cmd, args, fileFlag)
			if err != nil {
				return err
			}
			return runAsk(cmd.Context(), deps, cmd.OutOrStdout(), cmd.ErrOrStderr(), message, outputFlag)
		},
	}

	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the message from file")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save the reply to file")
	return cmd
}

// readMessage picks the message from the argument, the file flag, or piped stdin
func readMessage(cmd *cobra.Command, args []string, file string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", errEmptyMessage
		}
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// runAsk performs one exchange and prints the reply.
// Decorated output goes to stdout with progress on stderr; raw output is the reply alone.
func runAsk(ctx context.Context, deps *Dependencies, stdout, stderr io.Writer, message, output string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	conv := exchange.New(nil)
	ticket, _, ok := conv.Submit(message)
	if !ok {
		return errEmptyMessage
	}

	client, release, err := deps.chatClient()
	if err != nil {
		return err
	}
	defer release()

	decorated := deps.stdoutIsTerminal()

	var spin *spinner
	if decorated {
		spin = newSpinner(stderr, "Uplyft AI is typing")
		spin.start()
	}

	result := exchange.Exchange(ctx, client, ticket)
	conv.Resolve(ticket, result)

	failure, failed := result.(exchange.Failure)
	if failed {
		if decorated {
			spin.stopWithError()
			fmt.Fprintln(stderr, tui.FormatError(failure.Err))
		}
		return fmt.Errorf("ask failed: %w", failure.Err)
	}
	if decorated {
		spin.stopWithSuccess("Done")
	}

	reply := result.(exchange.Success).Reply

	// Raw output mode: output only the raw text
	if !decorated {
		if output != "" {
			return writeOutput(output, reply)
		}
		fmt.Fprint(stdout, reply)
		return nil
	}

	if deps.cfg.CopyToClipboard {
		if err := deps.clipboardFunc()(reply); err != nil {
			glog.Warningf("commands: clipboard write failed: %v", err)
			fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorWarning).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			))
		} else {
			fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if output != "" {
		if err := writeOutput(output, reply); err != nil {
			return err
		}
		fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Reply saved to %s", output),
		))
		return nil
	}

	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	rendered := render.Reply(reply, deps.cfg.RenderOptions().WithWidth(bubbleWidth-4))
	fmt.Fprintln(stdout, assistantLabelStyle.Render("✦ Uplyft AI"))
	fmt.Fprintln(stdout, assistantBubbleStyle.Width(bubbleWidth).Render(strings.TrimRight(rendered, "\n")))
	return nil
}

// writeOutput saves the reply text to path
func writeOutput(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
