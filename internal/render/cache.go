package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// rendererCache keeps one sync.Pool of renderers per distinct Options value.
// glamour.TermRenderer is not safe for concurrent Render calls, so a renderer
// is checked out for the duration of one render and never shared.
type rendererCache struct {
	mu    sync.RWMutex
	pools map[Options]*sync.Pool
}

var renderers = &rendererCache{
	pools: make(map[Options]*sync.Pool),
}

// pool returns the pool for opts, creating it on first use
func (c *rendererCache) pool(opts Options) *sync.Pool {
	c.mu.RLock()
	p, ok := c.pools[opts]
	c.mu.RUnlock()
	if ok {
		return p
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.pools[opts]; ok {
		return p
	}

	p = &sync.Pool{
		New: func() any {
			r, err := newRenderer(opts)
			if err != nil {
				return nil
			}
			return r
		},
	}
	c.pools[opts] = p
	return p
}

// checkout takes a renderer for opts. A failed pool constructor is retried
// directly so the caller sees the error.
func (c *rendererCache) checkout(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := c.pool(opts).Get().(*glamour.TermRenderer); ok && r != nil {
		return r, nil
	}
	return newRenderer(opts)
}

// release hands r back to the pool for opts
func (c *rendererCache) release(opts Options, r *glamour.TermRenderer) {
	if r != nil {
		c.pool(opts).Put(r)
	}
}

// newRenderer builds a TermRenderer for opts. The colour profile follows
// lipgloss so replies degrade the same way as the surrounding chrome.
func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	ropts := []glamour.TermRendererOption{
		styleOption(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
		glamour.WithColorProfile(lipgloss.ColorProfile()),
	}
	if opts.EnableEmoji {
		ropts = append(ropts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		ropts = append(ropts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(ropts...)
}

// ClearCache drops all renderer pools (useful for testing).
func ClearCache() {
	renderers.mu.Lock()
	renderers.pools = make(map[Options]*sync.Pool)
	renderers.mu.Unlock()
}

// CacheSize returns the number of distinct option sets with a pool.
func CacheSize() int {
	renderers.mu.RLock()
	defer renderers.mu.RUnlock()
	return len(renderers.pools)
}
