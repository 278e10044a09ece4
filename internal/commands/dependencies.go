package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/golang/glog"
	"golang.org/x/term"

	"github.com/diogo/uplyft/internal/api"
	"github.com/diogo/uplyft/internal/config"
	"github.com/diogo/uplyft/internal/logging"
	"github.com/diogo/uplyft/internal/render"
	"github.com/diogo/uplyft/internal/session"
	"github.com/diogo/uplyft/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunApp(opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client is the backend client. Nil builds one from config.
	Client api.ChatClient

	// Store holds the session. Nil opens the file store under ~/.uplyft.
	Store session.Store

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error

	// IsTerminal reports whether stdout is a terminal.
	IsTerminal func() bool

	// SkipLogging leaves glog unconfigured (tests).
	SkipLogging bool

	// cfg is resolved once per invocation by setup
	cfg config.Config
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunApp(opts tui.Options) error {
	return tui.RunApp(opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:        &DefaultTUI{},
		Clipboard:  clipboard.WriteAll,
		IsTerminal: isStdoutTTY,
	}
}

// setup loads .env, the config file and env overrides, then applies the
// endpoint flag, logging and theme
func (d *Dependencies) setup(endpoint string) error {
	if err := config.LoadEnvFile(); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg, err = config.ApplyEnv(cfg); err != nil {
		return err
	}
	if endpoint != "" {
		if err := config.ValidateEndpoint(endpoint); err != nil {
			return fmt.Errorf("invalid --endpoint: %w", err)
		}
		cfg.Endpoint = endpoint
	}
	d.cfg = cfg

	if !d.SkipLogging {
		logDir, err := config.GetLogDir()
		if err != nil {
			return err
		}
		if err := logging.Setup(logging.Options{Dir: logDir, Verbose: cfg.Verbose}); err != nil {
			return err
		}
	}

	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		glog.Warningf("commands: unknown tui_theme %q, keeping default", cfg.TUITheme)
	}
	tui.UpdateTheme()

	return nil
}

// chatClient returns the injected client or builds one from config.
// The returned func releases the client.
func (d *Dependencies) chatClient() (api.ChatClient, func(), error) {
	if d.Client != nil {
		return d.Client, func() {}, nil
	}

	client, err := api.NewClient(
		api.WithEndpoint(d.cfg.Endpoint),
		api.WithTimeout(time.Duration(d.cfg.TimeoutSeconds)*time.Second),
		api.WithClientProfile(d.cfg.ClientProfile),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}
	glog.V(1).Infof("commands: backend endpoint %s", client.Endpoint())
	return client, client.Close, nil
}

// sessionStore returns the injected store or the file store in the config directory
func (d *Dependencies) sessionStore() (session.Store, error) {
	if d.Store != nil {
		return d.Store, nil
	}

	if _, err := config.EnsureConfigDir(); err != nil {
		return nil, err
	}
	path, err := config.GetSessionPath()
	if err != nil {
		return nil, err
	}
	return session.NewFileStore(path)
}

// clipboardFunc returns the configured clipboard writer
func (d *Dependencies) clipboardFunc() func(string) error {
	if d.Clipboard != nil {
		return d.Clipboard
	}
	return clipboard.WriteAll
}

// stdoutIsTerminal reports whether decorated output should be used
func (d *Dependencies) stdoutIsTerminal() bool {
	if d.IsTerminal != nil {
		return d.IsTerminal()
	}
	return isStdoutTTY()
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}
