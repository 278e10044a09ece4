// Package tui provides the terminal user interface for uplyft.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/uplyft/internal/errors"
	"github.com/diogo/uplyft/internal/render"
)

// Color variables (updated from theme)
var (
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	// Chat header
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	onlineStyle   lipgloss.Style
	hintStyle     lipgloss.Style

	// Messages
	messagesAreaStyle    lipgloss.Style
	userBubbleStyle      lipgloss.Style
	userLabelStyle       lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	assistantLabelStyle  lipgloss.Style
	timestampStyle       lipgloss.Style

	// Input
	inputPanelStyle    lipgloss.Style
	inputLabelStyle    lipgloss.Style
	inputDisabledStyle lipgloss.Style
	loadingStyle       lipgloss.Style

	// Sidebar
	sidebarStyle      lipgloss.Style
	sidebarTitleStyle lipgloss.Style
	avatarStyle       lipgloss.Style
	welcomeCardStyle  lipgloss.Style
	quickActionStyle  lipgloss.Style

	// Landing
	landingCardStyle  lipgloss.Style
	brandStyle        lipgloss.Style
	taglineStyle      lipgloss.Style
	featureChipStyle  lipgloss.Style
	tabActiveStyle    lipgloss.Style
	tabInactiveStyle  lipgloss.Style
	fieldStyle        lipgloss.Style
	fieldFocusedStyle lipgloss.Style
	buttonStyle       lipgloss.Style
	federatedStyle    lipgloss.Style

	// Status bar
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	noticeStyle     lipgloss.Style

	errorStyle lipgloss.Style
)

// Gradient colors for the typing animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#7C3AED"), // Purple
	lipgloss.Color("#8B5CF6"),
	lipgloss.Color("#A78BFA"),
	lipgloss.Color("#C084FC"),
	lipgloss.Color("#E879F9"),
	lipgloss.Color("#F472B6"), // Pink
	lipgloss.Color("#E879F9"),
	lipgloss.Color("#A78BFA"),
}

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	onlineStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	// User bubbles sit on the right with the brand gradient start colour
	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Foreground(colorText).
		Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1)

	assistantLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	timestampStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginRight(1)

	inputDisabledStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	sidebarStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 1)

	sidebarTitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true).
		MarginTop(1)

	avatarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary).
		Bold(true).
		Padding(0, 1)

	welcomeCardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1).
		MarginTop(1)

	quickActionStyle = lipgloss.NewStyle().
		Foreground(colorText).
		PaddingLeft(1)

	landingCardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 3)

	brandStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	taglineStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	featureChipStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Background(colorSurface).
		Padding(0, 1).
		MarginRight(1)

	tabActiveStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary).
		Bold(true).
		Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Padding(0, 2)

	fieldStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	fieldFocusedStyle = fieldStyle.
		BorderForeground(colorAccent)

	buttonStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary).
		Bold(true).
		Padding(0, 3).
		MarginTop(1)

	federatedStyle = lipgloss.NewStyle().
		Foreground(colorText).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorTextMute).
		Padding(0, 2)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)
}

// shortcut is one entry of a key hint bar
type shortcut struct {
	key  string
	desc string
}

// renderShortcuts renders key hints centered in width
func renderShortcuts(width int, shortcuts []shortcut) string {
	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// FormatError returns a styled error message with details from the typed
// errors when available. Used by the one-shot commands; the chat view only
// ever shows the fixed error reply.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if body := errors.GetResponseBody(err); body != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n\n  %s", strings.ReplaceAll(body, "\n", "\n  "))))
		return sb.String()
	}

	switch {
	case errors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Is the backend running? Try 'uplyft dev-backend' for a local stub"))
	case errors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Request timed out. Raise timeout_seconds or try again"))
	case errors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The backend must answer with a JSON object holding a \"reply\" string"))
	}

	return sb.String()
}
