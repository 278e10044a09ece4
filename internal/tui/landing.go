package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/uplyft/internal/auth"
	"github.com/diogo/uplyft/internal/models"
)

var allFields = []auth.Field{auth.FieldName, auth.FieldEmail, auth.FieldPassword}

// signInMsg asks the app to store id and open the chat view
type signInMsg struct {
	identity models.Identity
}

// LandingModel is the sign-in view: branding plus the login/signup form
type LandingModel struct {
	mode   auth.Mode
	inputs [4]textinput.Model // indexed by auth.Field
	focus  int                // index into mode.Fields()
	notice string

	width  int
	height int
}

// NewLandingModel creates the landing view in login mode with the email field focused
func NewLandingModel() LandingModel {
	m := LandingModel{mode: auth.ModeLogin}

	for _, field := range allFields {
		ti := textinput.New()
		ti.Placeholder = field.String()
		ti.CharLimit = 256
		ti.Width = 36
		ti.Prompt = ""
		ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
		ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextMute)
		if field == auth.FieldPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs[field] = ti
	}

	m.focusField(0)
	return m
}

// Init starts the cursor blink
func (m LandingModel) Init() tea.Cmd {
	return textinput.Blink
}

// Form returns the typed values for the current mode
func (m LandingModel) Form() auth.Form {
	return auth.Form{
		Mode:     m.mode,
		Name:     m.inputs[auth.FieldName].Value(),
		Email:    m.inputs[auth.FieldEmail].Value(),
		Password: m.inputs[auth.FieldPassword].Value(),
	}
}

// Mode returns the current form mode
func (m LandingModel) Mode() auth.Mode {
	return m.mode
}

// Focused returns the field that receives typing
func (m LandingModel) Focused() auth.Field {
	fields := m.mode.Fields()
	if m.focus < 0 || m.focus >= len(fields) {
		return auth.FieldNone
	}
	return fields[m.focus]
}

// focusField focuses the i-th visible field and blurs the others
func (m *LandingModel) focusField(i int) tea.Cmd {
	fields := m.mode.Fields()
	if len(fields) == 0 {
		return nil
	}
	m.focus = (i%len(fields) + len(fields)) % len(fields)

	var cmd tea.Cmd
	for _, field := range allFields {
		if field == fields[m.focus] {
			cmd = m.inputs[field].Focus()
		} else {
			m.inputs[field].Blur()
		}
	}
	return cmd
}

// indexOf returns the position of field in the current mode, or -1
func (m LandingModel) indexOf(field auth.Field) int {
	for i, f := range m.mode.Fields() {
		if f == field {
			return i
		}
	}
	return -1
}

// Update handles messages and updates the model
func (m LandingModel) Update(msg tea.Msg) (LandingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "ctrl+t":
			current := m.Focused()
			m.mode = m.mode.Toggle()
			m.notice = ""
			idx := m.indexOf(current)
			if idx < 0 {
				idx = 0
			}
			return m, m.focusField(idx)

		case "tab", "down":
			return m, m.focusField(m.focus + 1)

		case "shift+tab", "up":
			return m, m.focusField(m.focus - 1)

		case "ctrl+g":
			id := auth.Federated()
			return m, func() tea.Msg { return signInMsg{identity: id} }

		case "enter":
			form := m.Form()
			if missing := form.Missing(); missing != auth.FieldNone {
				m.notice = "Please fill in " + missing.String()
				return m, m.focusField(m.indexOf(missing))
			}
			m.notice = ""
			id := form.Identity()
			return m, func() tea.Msg { return signInMsg{identity: id} }
		}
	}

	field := m.Focused()
	if field == auth.FieldNone {
		return m, nil
	}
	ti, cmd := m.inputs[field].Update(msg)
	m.inputs[field] = ti
	return m, cmd
}

// View renders the landing view
func (m LandingModel) View() string {
	var chips []string
	for _, f := range models.Features {
		chips = append(chips, featureChipStyle.Render("✓ "+f))
	}

	loginTab, signupTab := tabActiveStyle, tabInactiveStyle
	if m.mode == auth.ModeSignup {
		loginTab, signupTab = tabInactiveStyle, tabActiveStyle
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top,
		loginTab.Render(auth.ModeLogin.String()),
		signupTab.Render(auth.ModeSignup.String()),
	)

	sections := []string{
		brandStyle.Render("✦ " + models.AppName),
		"",
		taglineStyle.Render(models.AppTagline),
		subtitleStyle.Render(models.AppSubtitle),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, chips...),
		"",
		tabs,
		"",
	}

	focused := m.Focused()
	for _, field := range m.mode.Fields() {
		style := fieldStyle
		if field == focused {
			style = fieldFocusedStyle
		}
		sections = append(sections, style.Width(40).Render(m.inputs[field].View()))
	}

	sections = append(sections,
		buttonStyle.Render(m.mode.SubmitLabel()),
		"",
		hintStyle.Render("or"),
		federatedStyle.Render("G  Continue with Google"),
	)

	if m.notice != "" {
		sections = append(sections, "", noticeStyle.Render("⚠ "+m.notice))
	}

	card := landingCardStyle.Render(lipgloss.JoinVertical(lipgloss.Center, sections...))

	status := renderShortcuts(lipgloss.Width(card), []shortcut{
		{"Tab", "Next"},
		{"Ctrl+T", m.mode.Toggle().String()},
		{"Enter", "Submit"},
		{"Ctrl+G", "Google"},
		{"Esc", "Quit"},
	})

	body := lipgloss.JoinVertical(lipgloss.Center, card, status)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}
