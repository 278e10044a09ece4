package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/uplyft/internal/exchange"
	"github.com/diogo/uplyft/internal/models"
	"github.com/diogo/uplyft/internal/render"
	"github.com/diogo/uplyft/internal/transcript"
)

// Layout constants
const (
	sidebarWidth    = 32
	minSidebarTotal = 90 // below this width the sidebar is hidden
	timeFormat      = "15:04"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the chat view
type (
	// replyMsg carries the result of one exchange back to the update loop
	replyMsg struct {
		ticket exchange.Ticket
		result exchange.Result
	}
	// signOutMsg asks the app to clear the session and show the landing view
	signOutMsg struct{}
	// exportedMsg reports a finished transcript export
	exportedMsg struct {
		path string
		err  error
	}
)

// ChatModel is the chat view
type ChatModel struct {
	client    exchange.Sender
	conv      *exchange.Conversation
	identity  models.Identity
	renderOpt render.Options
	exportDir string
	exportFmt transcript.Format
	copy      func(string) error

	// ctx scopes in-flight requests; cancelled on sign-out
	ctx    context.Context
	cancel context.CancelFunc

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	ready          bool
	showSidebar    bool
	notice         string
	animationFrame int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates the chat view around conv
func NewChatModel(opts Options, conv *exchange.Conversation, identity models.Identity) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	ctx, cancel := context.WithCancel(context.Background())

	return ChatModel{
		client:      opts.Client,
		conv:        conv,
		identity:    identity,
		renderOpt:   opts.Render,
		exportDir:   opts.ExportDir,
		exportFmt:   opts.ExportFormat,
		copy:        opts.Clipboard,
		ctx:         ctx,
		cancel:      cancel,
		textarea:    ta,
		spinner:     s,
		showSidebar: true,
	}
}

// Init initializes the model
func (m ChatModel) Init() tea.Cmd {
	return textarea.Blink
}

// Identity returns the signed-in identity shown in the sidebar
func (m ChatModel) Identity() models.Identity {
	return m.identity
}

// WithIdentity returns the model with a new identity and a focused input
func (m ChatModel) WithIdentity(id models.Identity) ChatModel {
	m.identity = id
	m.notice = ""
	m.textarea.Focus()
	m.refresh()
	return m
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// send runs the exchange for t off the update loop
func (m ChatModel) send(t exchange.Ticket) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		return replyMsg{ticket: t, result: exchange.Exchange(ctx, client, t)}
	}
}

// export writes the current conversation as a transcript in the configured format
func (m ChatModel) export() tea.Cmd {
	dir, format := m.exportDir, m.exportFmt
	if format == "" {
		format = transcript.FormatMarkdown
	}
	tr := transcript.New(m.identity, m.conv.Messages())
	return func() tea.Msg {
		path, err := transcript.Write(dir, tr, format)
		return exportedMsg{path: path, err: err}
	}
}

// signOut cancels the in-flight request and restores the greeting-only conversation
func (m ChatModel) signOut() (ChatModel, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.conv.Reset()
	m.notice = ""
	m.textarea.Reset()
	m.textarea.Focus()
	m.refresh()
	return m, func() tea.Msg { return signOutMsg{} }
}

// copyLastReply puts the newest bot message on the clipboard
func (m ChatModel) copyLastReply() ChatModel {
	last, ok := m.conv.LastReply()
	if !ok || m.copy == nil {
		m.notice = "Nothing to copy"
		return m
	}
	if err := m.copy(last.Content); err != nil {
		m.notice = fmt.Sprintf("Copy failed: %v", err)
		return m
	}
	m.notice = "Copied last reply to clipboard"
	return m
}

// layout sizes the viewport and textarea for the current window and sidebar state
func (m *ChatModel) layout() {
	headerHeight := 3
	inputHeight := 5
	statusHeight := 1

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - 2
	if vpHeight < 5 {
		vpHeight = 5
	}

	contentWidth := m.mainWidth() - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.viewport.KeyMap = scrollKeys()
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 2)
}

// scrollKeys limits viewport scrolling to keys the textarea does not type
func scrollKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("ctrl+up")),
		Down:     key.NewBinding(key.WithKeys("ctrl+down")),
	}
}

// sidebarVisible reports whether the sidebar fits and is enabled
func (m ChatModel) sidebarVisible() bool {
	return m.showSidebar && m.width >= minSidebarTotal
}

// mainWidth returns the width available to the chat column
func (m ChatModel) mainWidth() int {
	if m.sidebarVisible() {
		return m.width - sidebarWidth
	}
	return m.width
}

// Update handles messages and updates the model
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+o":
			return m.signOut()

		case "ctrl+b":
			m.showSidebar = !m.showSidebar
			if m.width > 0 {
				m.layout()
				m.refresh()
			}
			return m, nil

		case "ctrl+y":
			return m.copyLastReply(), nil

		case "ctrl+e":
			m.notice = "Exporting transcript..."
			return m, m.export()

		case "enter":
			ticket, _, ok := m.conv.Submit(m.textarea.Value())
			if !ok {
				return m, nil
			}
			m.textarea.Reset()
			m.textarea.Blur()
			m.notice = ""
			m.animationFrame = 0
			m.refresh()
			m.viewport.GotoBottom()

			return m, tea.Batch(
				m.send(ticket),
				m.spinner.Tick,
				animationTick(),
			)
		}

	case replyMsg:
		if _, ok := m.conv.Resolve(msg.ticket, msg.result); ok {
			m.textarea.Focus()
			m.refresh()
			m.viewport.GotoBottom()
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.notice = "Transcript saved to " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if m.conv.Awaiting() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.conv.Awaiting() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to textarea to prevent escape sequence leaks; input is disabled while awaiting
	if !m.conv.Awaiting() {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the chat view
func (m ChatModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.mainWidth() - 2

	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ "+models.ChatTitle),
		hintStyle.Render("  •  "),
		onlineStyle.Render("● Online"),
	)
	header := headerStyle.Width(contentWidth).Render(headerContent)

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View())

	var inputContent string
	if m.conv.Awaiting() {
		inputContent = lipgloss.JoinVertical(lipgloss.Left,
			inputDisabledStyle.Render("Waiting for reply…"),
			m.renderLoadingAnimation(),
		)
	} else {
		inputContent = lipgloss.JoinVertical(lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	inputPanel := inputPanelStyle.Width(contentWidth).Render(inputContent)

	sections := []string{header, messagesPanel, inputPanel}
	if m.notice != "" {
		sections = append(sections, noticeStyle.Render(" "+m.notice))
	}
	sections = append(sections, m.renderStatusBar(contentWidth))

	main := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if !m.sidebarVisible() {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(lipgloss.Height(main)), main)
}

// renderSidebar renders identity, welcome card and quick actions
func (m ChatModel) renderSidebar(height int) string {
	inner := sidebarWidth - 4

	initial := "U"
	if name := strings.TrimSpace(m.identity.Name); name != "" {
		initial = strings.ToUpper(string([]rune(name)[0]))
	}

	lines := []string{
		avatarStyle.Render(initial) + " " + titleStyle.Render(truncate(m.identity.Name, inner-4)),
		subtitleStyle.Render(truncate(m.identity.Email, inner)),
		welcomeCardStyle.Width(inner).Render(
			brandStyle.Render("Welcome!") + "\n" +
				subtitleStyle.Render("I'm here to help with questions, tasks and product discovery."),
		),
		sidebarTitleStyle.Render("Quick actions"),
	}
	for _, action := range models.QuickActions {
		lines = append(lines, quickActionStyle.Render("› "+truncate(action, inner-2)))
	}
	lines = append(lines, "", hintStyle.Render("Ctrl+O to sign out"))

	style := sidebarStyle.Width(sidebarWidth - 2)
	if height > 2 {
		style = style.Height(height - 2)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderLoadingAnimation renders the typing indicator
func (m ChatModel) renderLoadingAnimation() string {
	frame := m.animationFrame

	var dots strings.Builder
	numDots := (frame/3)%3 + 1
	for i := 0; i < 3; i++ {
		if i < numDots {
			dots.WriteString(lipgloss.NewStyle().Foreground(gradientColors[(frame+i)%len(gradientColors)]).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Uplyft AI is typing ")
	return fmt.Sprintf("%s%s%s", m.spinner.View(), text, dots.String())
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m ChatModel) renderStatusBar(width int) string {
	return renderShortcuts(width, []shortcut{
		{"Enter", "Send"},
		{"Ctrl+B", "Sidebar"},
		{"Ctrl+Y", "Copy"},
		{"Ctrl+E", "Export"},
		{"Ctrl+O", "Sign out"},
		{"Esc", "Quit"},
	})
}

// refresh rebuilds the viewport content from the conversation
func (m *ChatModel) refresh() {
	if !m.ready {
		return
	}

	var content strings.Builder
	width := m.viewport.Width
	bubbleWidth := width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = width
	}

	for i, msg := range m.conv.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderMessage(msg, width, bubbleWidth))
		content.WriteString("\n")
	}

	if m.conv.Awaiting() {
		content.WriteString("\n")
		content.WriteString(assistantLabelStyle.Render("✦ Uplyft AI"))
		content.WriteString(" ")
		content.WriteString(hintStyle.Render("is typing…"))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// renderMessage renders one bubble; user messages align right, bot replies go through glamour
func (m ChatModel) renderMessage(msg models.Message, width, bubbleWidth int) string {
	stamp := timestampStyle.Render(msg.Timestamp.Format(timeFormat))

	if msg.IsUser() {
		label := userLabelStyle.Render("You") + " " + stamp
		bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}

	label := assistantLabelStyle.Render("✦ Uplyft AI") + " " + stamp
	rendered := render.Reply(msg.Content, m.renderOpt.WithWidth(bubbleWidth-4))
	bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
