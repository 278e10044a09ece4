// Package config handles configuration and on-disk locations for uplyft.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/diogo/uplyft/internal/models"
	"github.com/diogo/uplyft/internal/render"
	"github.com/diogo/uplyft/internal/transcript"
)

// Environment variables that override the config file
const (
	EnvEndpoint = "UPLYFT_ENDPOINT"
	EnvTimeout  = "UPLYFT_TIMEOUT"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // built-in style name or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// Endpoint is the backend chat URL that receives {"message": ...}.
	Endpoint string `json:"endpoint"`
	// TimeoutSeconds bounds a single exchange. Zero keeps the transport default.
	TimeoutSeconds int `json:"timeout_seconds,omitempty"`
	// ClientProfile selects the tls-client browser profile (e.g. "chrome_120").
	ClientProfile string `json:"client_profile,omitempty"`
	// Verbose raises the debug log level.
	Verbose         bool           `json:"verbose"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty"`     // TUI color theme
	ExportDir       string         `json:"export_dir,omitempty"`    // Directory for transcript exports
	ExportFormat    string         `json:"export_format,omitempty"` // "markdown" or "json"
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "uplyft",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		Endpoint:        models.DefaultEndpoint,
		TimeoutSeconds:  0,
		ClientProfile:   "chrome_120",
		Verbose:         false,
		CopyToClipboard: false,
		TUITheme:        "uplyft",
		ExportDir:       filepath.Join(homeDir, ".uplyft", "exports"),
		ExportFormat:    string(transcript.FormatMarkdown),
		Markdown:        DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".uplyft"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: holds the session file
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetSessionPath returns the path to the session file
func GetSessionPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "session.json"), nil
}

// GetLogDir returns the directory for debug logs
func GetLogDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "logs"), nil
}

// GetExportDir returns the export directory from config, creating it if necessary
func GetExportDir(cfg Config) (string, error) {
	dir := cfg.ExportDir
	if dir == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(configDir, "exports")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	return dir, nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnvFile loads a .env file from the working directory, if present.
// Variables already set in the environment win.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overlays environment variables onto cfg
func ApplyEnv(cfg Config) (Config, error) {
	if endpoint := strings.TrimSpace(os.Getenv(EnvEndpoint)); endpoint != "" {
		if err := ValidateEndpoint(endpoint); err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvEndpoint, err)
		}
		cfg.Endpoint = endpoint
	}

	if raw := strings.TrimSpace(os.Getenv(EnvTimeout)); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs < 0 {
			return cfg, fmt.Errorf("invalid %s value: %q", EnvTimeout, raw)
		}
		cfg.TimeoutSeconds = secs
	}

	return cfg, nil
}

// ValidateEndpoint checks that endpoint is an absolute http(s) URL
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", endpoint)
	}
	return nil
}

// setBool parses v into dst
func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

// validateMarkdownStyle accepts a built-in style name or a path to a JSON style file
func validateMarkdownStyle(style string) error {
	if render.IsBuiltinStyle(style) {
		return nil
	}
	if strings.EqualFold(filepath.Ext(style), ".json") {
		if _, err := os.Stat(style); err != nil {
			return fmt.Errorf("style file %q: %w", style, err)
		}
		return nil
	}
	return fmt.Errorf("unknown markdown style %q (valid: %s, or a path to a .json style file)",
		style, strings.Join(render.ThemeNames(), ", "))
}

// validateTUITheme accepts only the built-in TUI theme names
func validateTUITheme(name string) error {
	names := render.TUIThemeNames()
	for _, n := range names {
		if n == name {
			return nil
		}
	}
	return fmt.Errorf("unknown TUI theme %q (valid: %s)", name, strings.Join(names, ", "))
}

// setters maps `config set` keys to field writers
var setters = map[string]func(*Config, string) error{
	"endpoint": func(c *Config, v string) error {
		if err := ValidateEndpoint(v); err != nil {
			return err
		}
		c.Endpoint = v
		return nil
	},
	"timeout_seconds": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("timeout_seconds must be a non-negative integer")
		}
		c.TimeoutSeconds = n
		return nil
	},
	"client_profile": func(c *Config, v string) error {
		c.ClientProfile = v
		return nil
	},
	"verbose": func(c *Config, v string) error {
		return setBool(&c.Verbose, v)
	},
	"copy_to_clipboard": func(c *Config, v string) error {
		return setBool(&c.CopyToClipboard, v)
	},
	"tui_theme": func(c *Config, v string) error {
		if err := validateTUITheme(v); err != nil {
			return err
		}
		c.TUITheme = v
		return nil
	},
	"export_dir": func(c *Config, v string) error {
		c.ExportDir = v
		return nil
	},
	"export_format": func(c *Config, v string) error {
		f, err := transcript.ParseFormat(v)
		if err != nil {
			return err
		}
		c.ExportFormat = string(f)
		return nil
	},
	"markdown.style": func(c *Config, v string) error {
		if err := validateMarkdownStyle(v); err != nil {
			return err
		}
		c.Markdown.Style = v
		return nil
	},
	"markdown.enable_emoji": func(c *Config, v string) error {
		return setBool(&c.Markdown.EnableEmoji, v)
	},
	"markdown.preserve_newlines": func(c *Config, v string) error {
		return setBool(&c.Markdown.PreserveNewLines, v)
	},
	"markdown.table_wrap": func(c *Config, v string) error {
		return setBool(&c.Markdown.TableWrap, v)
	},
	"markdown.inline_table_links": func(c *Config, v string) error {
		return setBool(&c.Markdown.InlineTableLinks, v)
	},
}

// SetValue updates a single config key from its string form
func SetValue(cfg *Config, key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := set(cfg, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

// Keys returns the settable config keys, sorted
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
