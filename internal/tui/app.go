package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/glog"

	"github.com/diogo/uplyft/internal/api"
	"github.com/diogo/uplyft/internal/exchange"
	"github.com/diogo/uplyft/internal/models"
	"github.com/diogo/uplyft/internal/render"
	"github.com/diogo/uplyft/internal/session"
	"github.com/diogo/uplyft/internal/transcript"
)

// view identifies the active screen
type view int

const (
	viewLanding view = iota
	viewChat
)

// Options configures the application
type Options struct {
	Store     session.Store
	Client    api.ChatClient
	Render    render.Options
	ExportDir string
	// ExportFormat selects the transcript format; empty means Markdown
	ExportFormat transcript.Format
	// Clipboard writes text to the system clipboard; defaults to atotto/clipboard
	Clipboard func(string) error
	// IDs overrides the message ID clock (tests)
	IDs *models.IDGenerator
}

// App routes between the landing and chat views and owns the session
type App struct {
	store   session.Store
	view    view
	landing LandingModel
	chat    ChatModel

	width  int
	height int
}

// NewApp creates the root model. It opens on the chat view when a session exists.
func NewApp(opts Options) App {
	if opts.Store == nil {
		opts.Store = session.NewMemoryStore()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Render.Width == 0 {
		opts.Render = render.DefaultOptions()
	}

	conv := exchange.New(opts.IDs)

	a := App{
		store:   opts.Store,
		landing: NewLandingModel(),
		chat:    NewChatModel(opts, conv, session.LoadIdentity(opts.Store)),
	}
	if session.SignedIn(opts.Store) {
		a.view = viewChat
	}
	return a
}

// Init initializes the active view
func (a App) Init() tea.Cmd {
	if a.view == viewChat {
		return a.chat.Init()
	}
	return a.landing.Init()
}

// Update handles messages and updates the model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Both views track the size so a view switch renders at once
		a.width, a.height = msg.Width, msg.Height
		a.landing, _ = a.landing.Update(msg)
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd

	case signInMsg:
		if err := session.SignIn(a.store, msg.identity); err != nil {
			glog.Errorf("tui: sign in failed: %v", err)
			a.landing.notice = fmt.Sprintf("Could not save session: %v", err)
			return a, nil
		}
		a.chat = a.chat.WithIdentity(session.LoadIdentity(a.store))
		a.view = viewChat
		return a, a.chat.Init()

	case signOutMsg:
		if err := session.SignOut(a.store); err != nil {
			glog.Errorf("tui: sign out failed: %v", err)
		}
		a.landing = NewLandingModel()
		if a.width > 0 {
			a.landing, _ = a.landing.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		}
		a.view = viewLanding
		return a, a.landing.Init()

	case replyMsg, exportedMsg:
		// Late results still reach the conversation; stale tickets are dropped there
		a.chat, cmd = a.chat.Update(msg)
		return a, cmd
	}

	if a.view == viewChat {
		a.chat, cmd = a.chat.Update(msg)
	} else {
		a.landing, cmd = a.landing.Update(msg)
	}
	return a, cmd
}

// View renders the active view
func (a App) View() string {
	if a.view == viewChat {
		return a.chat.View()
	}
	return a.landing.View()
}

// RunApp starts the TUI
func RunApp(opts Options) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
