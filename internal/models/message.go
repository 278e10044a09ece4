package models

import (
	"strconv"
	"sync"
	"time"
)

// Sender identifies who authored a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message represents a chat message for TUI display
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// IsUser reports whether the message was written by the user
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// Identity holds the display-only session fields.
// It carries no credentials and is not a security boundary.
type Identity struct {
	Name  string `json:"userName"`
	Email string `json:"userEmail"`
}

// DefaultIdentity returns the identity shown when no session exists
func DefaultIdentity() Identity {
	return Identity{Name: DefaultUserName, Email: DefaultUserEmail}
}

// IDGenerator hands out creation-time message IDs (Unix milliseconds).
// IDs strictly increase even when two messages share a millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator creates an IDGenerator using the wall clock
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// NewIDGeneratorWithClock creates an IDGenerator reading time from now
func NewIDGeneratorWithClock(now func() time.Time) *IDGenerator {
	return &IDGenerator{now: now}
}

// Next returns the ID for a message created at t plus offset milliseconds.
// Bot replies use offset 1 so they never collide with the user message that triggered them.
func (g *IDGenerator) Next(t time.Time, offset int64) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := t.UnixMilli() + offset
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return strconv.FormatInt(id, 10)
}

// Now returns the generator's current time
func (g *IDGenerator) Now() time.Time {
	if g.now == nil {
		return time.Now()
	}
	return g.now()
}

// NewUserMessage creates a user message stamped at the generator's clock
func (g *IDGenerator) NewUserMessage(content string) Message {
	now := g.Now()
	return Message{
		ID:        g.Next(now, 0),
		Content:   content,
		Sender:    SenderUser,
		Timestamp: now,
	}
}

// NewBotMessage creates a bot message with the +1 ms ID offset
func (g *IDGenerator) NewBotMessage(content string) Message {
	now := g.Now()
	return Message{
		ID:        g.Next(now, 1),
		Content:   content,
		Sender:    SenderBot,
		Timestamp: now,
	}
}

// Greeting returns the seeded first bot message
func Greeting(t time.Time) Message {
	return Message{
		ID:        GreetingID,
		Content:   GreetingReply,
		Sender:    SenderBot,
		Timestamp: t,
	}
}
