package config

import (
	"os"

	"github.com/diogo/uplyft/internal/render"
)

// EnvStyle overrides the configured markdown style
const EnvStyle = "GLAMOUR_STYLE"

// RenderOptions builds render options from the markdown block of c.
// GLAMOUR_STYLE takes precedence over the configured style.
func (c Config) RenderOptions() render.Options {
	opts := render.DefaultOptions()

	md := c.Markdown
	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap
	opts.InlineTableLinks = md.InlineTableLinks

	if style := os.Getenv(EnvStyle); style != "" {
		opts.Style = style
	}

	return opts
}
