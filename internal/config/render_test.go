package config

import (
	"testing"

	"github.com/diogo/uplyft/internal/render"
)

func TestRenderOptions(t *testing.T) {
	t.Setenv(EnvStyle, "")

	cfg := DefaultConfig()
	cfg.Markdown.Style = "dracula"
	cfg.Markdown.EnableEmoji = false
	cfg.Markdown.InlineTableLinks = true

	opts := cfg.RenderOptions()

	if opts.Style != "dracula" {
		t.Errorf("Style = %q, want dracula", opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("EnableEmoji should follow config")
	}
	if !opts.InlineTableLinks {
		t.Error("InlineTableLinks should follow config")
	}
	if opts.Width != 80 {
		t.Errorf("Width = %d, want default 80", opts.Width)
	}
}

func TestRenderOptions_EmptyStyleKeepsDefault(t *testing.T) {
	t.Setenv(EnvStyle, "")

	cfg := DefaultConfig()
	cfg.Markdown.Style = ""

	if got := cfg.RenderOptions().Style; got != render.ThemeUplyft {
		t.Errorf("Style = %q, want %q", got, render.ThemeUplyft)
	}
}

func TestRenderOptions_EnvOverride(t *testing.T) {
	t.Setenv(EnvStyle, "light")

	opts := DefaultConfig().RenderOptions()
	if opts.Style != "light" {
		t.Errorf("Style = %q, want light from env", opts.Style)
	}
}
