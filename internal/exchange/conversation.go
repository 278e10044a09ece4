// Package exchange holds the conversation state and the one-request-at-a-time
// submit/reply cycle shared by the TUI and the one-shot commands.
package exchange

import (
	"context"
	"strings"
	"sync"

	"github.com/golang/glog"

	"github.com/diogo/uplyft/internal/models"
)

// Sender performs the outbound call for a ticket
type Sender interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// Ticket identifies a submitted message awaiting its reply
type Ticket struct {
	ID   uint64
	Text string
}

// Result is the outcome of an exchange: Success or Failure
type Result interface {
	isResult()
}

// Success carries the backend reply
type Success struct {
	Reply string
}

// Failure carries the reason the exchange did not produce a reply
type Failure struct {
	Err error
}

func (Success) isResult() {}
func (Failure) isResult() {}

// Conversation is the ordered message list plus the single-slot request tracker
type Conversation struct {
	mu       sync.Mutex
	ids      *models.IDGenerator
	messages []models.Message
	seq      uint64
	current  uint64 // 0 when nothing is outstanding
}

// New creates a conversation seeded with the greeting
func New(ids *models.IDGenerator) *Conversation {
	if ids == nil {
		ids = models.NewIDGenerator()
	}
	c := &Conversation{ids: ids}
	c.messages = []models.Message{models.Greeting(ids.Now())}
	return c
}

// Submit appends the draft as a user message and opens a ticket for it.
// It refuses blank drafts and drafts sent while a reply is outstanding.
func (c *Conversation) Submit(draft string) (Ticket, models.Message, bool) {
	if strings.TrimSpace(draft) == "" {
		return Ticket{}, models.Message{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != 0 {
		return Ticket{}, models.Message{}, false
	}

	msg := c.ids.NewUserMessage(draft)
	c.messages = append(c.messages, msg)

	c.seq++
	c.current = c.seq

	return Ticket{ID: c.current, Text: draft}, msg, true
}

// Resolve appends the bot message for the outstanding ticket and clears the
// awaiting state. Results for any other ticket are dropped.
func (c *Conversation) Resolve(t Ticket, r Result) (models.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.ID == 0 || t.ID != c.current {
		glog.V(1).Infof("exchange: dropping result for stale ticket %d", t.ID)
		return models.Message{}, false
	}
	c.current = 0

	content := models.ErrorReply
	switch res := r.(type) {
	case Success:
		content = res.Reply
	case Failure:
		glog.Warningf("exchange: ticket %d failed: %v", t.ID, res.Err)
	}

	msg := c.ids.NewBotMessage(content)
	c.messages = append(c.messages, msg)
	return msg, true
}

// Awaiting reports whether a reply is outstanding
func (c *Conversation) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != 0
}

// Messages returns a copy of the message list in display order
func (c *Conversation) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastReply returns the most recent bot message, if any
func (c *Conversation) LastReply() (models.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Sender == models.SenderBot {
			return c.messages[i], true
		}
	}
	return models.Message{}, false
}

// Reset drops the outstanding ticket and restores the greeting-only list
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = 0
	c.messages = []models.Message{models.Greeting(c.ids.Now())}
}

// Exchange sends the ticket text and folds any error into Failure
func Exchange(ctx context.Context, sender Sender, t Ticket) Result {
	reply, err := sender.SendMessage(ctx, t.Text)
	if err != nil {
		return Failure{Err: err}
	}
	return Success{Reply: reply}
}
