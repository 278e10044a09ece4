package render

import "strings"

// Markdown renders markdown content for terminal display.
// Uses a pooled renderer, so it is safe to call from concurrent commands.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := renderers.checkout(opts)
	if err != nil {
		return "", err
	}
	defer renderers.release(opts, renderer)

	return renderer.Render(content)
}

// Reply renders a bot reply for a chat bubble. Rendering errors fall back to
// the raw text so a bad style never hides a reply.
func Reply(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
