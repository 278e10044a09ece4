// Package transcript writes the in-memory conversation to a file on request.
// Nothing is read back; a transcript is an export, not history.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diogo/uplyft/internal/models"
)

// Format represents the format for exporting a conversation
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat accepts "markdown", "md" or "json"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want markdown or json)", s)
	}
}

// Ext returns the file extension for the format
func (f Format) Ext() string {
	if f == FormatJSON {
		return "json"
	}
	return "md"
}

// Transcript is a snapshot of one conversation
type Transcript struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	User       models.Identity  `json:"user"`
	ExportedAt time.Time        `json:"exported_at"`
	Messages   []models.Message `json:"messages"`
}

// New snapshots msgs for user under a fresh random ID
func New(user models.Identity, msgs []models.Message) Transcript {
	out := make([]models.Message, len(msgs))
	copy(out, msgs)

	return Transcript{
		ID:         uuid.NewString(),
		Title:      models.ChatTitle,
		User:       user,
		ExportedAt: time.Now(),
		Messages:   out,
	}
}

// Markdown renders the transcript as a Markdown document
func (t Transcript) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(t.Title)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "**User:** %s <%s>\n", t.User.Name, t.User.Email)
	fmt.Fprintf(&sb, "**Exported:** %s\n", t.ExportedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "**Messages:** %d\n\n---\n\n", len(t.Messages))

	for i, msg := range t.Messages {
		role := models.AppName
		if msg.IsUser() {
			role = t.User.Name
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		if !msg.Timestamp.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(msg.Timestamp.Format("15:04"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")

		if i < len(t.Messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

// JSON encodes the transcript as indented JSON
func (t Transcript) JSON() ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// FileName returns transcript-<first 8 chars of id>.<ext>
func (t Transcript) FileName(f Format) string {
	short := strings.ReplaceAll(t.ID, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("transcript-%s.%s", short, f.Ext())
}

// Write stores the transcript in dir and returns the file path
func Write(dir string, t Transcript, f Format) (string, error) {
	var data []byte
	switch f {
	case FormatJSON:
		b, err := t.JSON()
		if err != nil {
			return "", fmt.Errorf("failed to encode transcript: %w", err)
		}
		data = b
	case FormatMarkdown:
		data = []byte(t.Markdown())
	default:
		return "", fmt.Errorf("unknown export format %q", f)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, t.FileName(f))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}
