package exchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diogo/uplyft/internal/api"
	apierrors "github.com/diogo/uplyft/internal/errors"
	"github.com/diogo/uplyft/internal/models"
)

func newTestConversation() *Conversation {
	base := time.UnixMilli(1_700_000_000_000)
	return New(models.NewIDGeneratorWithClock(func() time.Time { return base }))
}

func TestNew_SeedsGreeting(t *testing.T) {
	c := newTestConversation()

	msgs := c.Messages()
	if len(msgs) != 1 {
		t.Fatalf("len(Messages()) = %d, want 1", len(msgs))
	}
	if msgs[0].ID != models.GreetingID || msgs[0].Sender != models.SenderBot {
		t.Errorf("first message = %+v, want greeting", msgs[0])
	}
	if c.Awaiting() {
		t.Error("new conversation should not be awaiting")
	}
}

func TestSubmit_AppendsUserMessageBeforeResolve(t *testing.T) {
	c := newTestConversation()

	ticket, msg, ok := c.Submit("hello")
	if !ok {
		t.Fatal("Submit() refused a non-empty draft")
	}
	if ticket.Text != "hello" {
		t.Errorf("ticket.Text = %q", ticket.Text)
	}
	if msg.Sender != models.SenderUser || msg.Content != "hello" {
		t.Errorf("user message = %+v", msg)
	}

	msgs := c.Messages()
	if len(msgs) != 2 || msgs[1].ID != msg.ID {
		t.Fatalf("messages = %+v, want greeting then user message", msgs)
	}
	if !c.Awaiting() {
		t.Error("Awaiting() = false after Submit")
	}
}

func TestSubmit_KeepsDraftUntrimmed(t *testing.T) {
	c := newTestConversation()

	ticket, msg, ok := c.Submit("  spaced out \n")
	if !ok {
		t.Fatal("Submit() refused a draft with content")
	}
	if msg.Content != "  spaced out \n" || ticket.Text != "  spaced out \n" {
		t.Errorf("content = %q, text = %q, want original draft", msg.Content, ticket.Text)
	}
}

func TestSubmit_BlankIsNoop(t *testing.T) {
	for _, draft := range []string{"", " ", "\t\n", "   \r\n  "} {
		c := newTestConversation()
		sender := &api.MockChatClient{Reply: "x"}

		ticket, _, ok := c.Submit(draft)
		if ok {
			t.Errorf("Submit(%q) accepted a blank draft", draft)
			Exchange(context.Background(), sender, ticket)
		}
		if got := len(c.Messages()); got != 1 {
			t.Errorf("Submit(%q) changed message count to %d", draft, got)
		}
		if c.Awaiting() {
			t.Errorf("Submit(%q) set awaiting", draft)
		}
		if sender.Calls() != 0 {
			t.Errorf("Submit(%q) issued %d calls", draft, sender.Calls())
		}
	}
}

func TestSubmit_RefusedWhileAwaiting(t *testing.T) {
	c := newTestConversation()

	first, _, _ := c.Submit("one")
	if _, _, ok := c.Submit("two"); ok {
		t.Fatal("second Submit() accepted while awaiting")
	}
	if got := len(c.Messages()); got != 2 {
		t.Errorf("message count = %d, want 2", got)
	}

	c.Resolve(first, Failure{Err: errors.New("down")})

	if c.Awaiting() {
		t.Fatal("Awaiting() still true after a failed resolve")
	}
	if _, _, ok := c.Submit("two"); !ok {
		t.Error("Submit() should be re-enabled after resolve")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{"success", Success{Reply: "Hi there"}, "Hi there"},
		{"empty reply", Success{Reply: ""}, ""},
		{"network failure", Failure{Err: apierrors.NewNetworkError("send message", "x", errors.New("refused"))}, models.ErrorReply},
		{"parse failure", Failure{Err: apierrors.NewParseError("missing reply field", "reply")}, models.ErrorReply},
		{"api failure", Failure{Err: apierrors.NewAPIError(500, "x", "boom")}, models.ErrorReply},
		{"nil result", nil, models.ErrorReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConversation()
			ticket, user, _ := c.Submit("hi")

			bot, ok := c.Resolve(ticket, tt.result)
			if !ok {
				t.Fatal("Resolve() dropped the current ticket")
			}
			if bot.Content != tt.want {
				t.Errorf("bot content = %q, want %q", bot.Content, tt.want)
			}
			if bot.Sender != models.SenderBot {
				t.Errorf("bot sender = %q", bot.Sender)
			}
			if bot.ID == user.ID {
				t.Errorf("bot and user share id %s", bot.ID)
			}

			msgs := c.Messages()
			if len(msgs) != 3 || msgs[1].ID != user.ID || msgs[2].ID != bot.ID {
				t.Errorf("messages out of order: %+v", msgs)
			}
			if c.Awaiting() {
				t.Error("Awaiting() = true after resolve")
			}
		})
	}
}

func TestResolve_StaleTicketDropped(t *testing.T) {
	c := newTestConversation()
	ticket, _, _ := c.Submit("hi")

	c.Reset()

	if _, ok := c.Resolve(ticket, Success{Reply: "late"}); ok {
		t.Fatal("Resolve() accepted a ticket superseded by Reset")
	}
	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].ID != models.GreetingID {
		t.Errorf("messages = %+v, want greeting only", msgs)
	}
}

func TestResolve_TwiceDropsSecond(t *testing.T) {
	c := newTestConversation()
	ticket, _, _ := c.Submit("hi")

	if _, ok := c.Resolve(ticket, Success{Reply: "a"}); !ok {
		t.Fatal("first Resolve() dropped")
	}
	if _, ok := c.Resolve(ticket, Success{Reply: "b"}); ok {
		t.Error("second Resolve() for the same ticket accepted")
	}
	if got := len(c.Messages()); got != 3 {
		t.Errorf("message count = %d, want 3", got)
	}
}

func TestResolve_ZeroTicket(t *testing.T) {
	c := newTestConversation()
	if _, ok := c.Resolve(Ticket{}, Success{Reply: "x"}); ok {
		t.Error("Resolve() accepted the zero ticket")
	}
}

func TestReset_NewTicketAfterReset(t *testing.T) {
	c := newTestConversation()
	old, _, _ := c.Submit("one")
	c.Reset()

	fresh, _, ok := c.Submit("two")
	if !ok {
		t.Fatal("Submit() refused after Reset")
	}
	if fresh.ID == old.ID {
		t.Error("ticket ids should not repeat across Reset")
	}
	if _, ok := c.Resolve(old, Success{Reply: "late"}); ok {
		t.Error("old ticket resolved the new exchange")
	}
	if !c.Awaiting() {
		t.Error("stale resolve must not clear the new ticket")
	}
}

func TestMessages_ReturnsCopy(t *testing.T) {
	c := newTestConversation()
	msgs := c.Messages()
	msgs[0].Content = "mutated"

	if c.Messages()[0].Content == "mutated" {
		t.Error("Messages() exposed internal state")
	}
}

func TestLastReply(t *testing.T) {
	c := newTestConversation()

	last, ok := c.LastReply()
	if !ok || last.ID != models.GreetingID {
		t.Errorf("LastReply() = %+v, %v, want greeting", last, ok)
	}

	ticket, _, _ := c.Submit("hi")
	if last, _ := c.LastReply(); last.ID != models.GreetingID {
		t.Errorf("LastReply() while awaiting = %+v, want greeting", last)
	}
	c.Resolve(ticket, Success{Reply: "Hi there"})

	if last, _ := c.LastReply(); last.Content != "Hi there" {
		t.Errorf("LastReply().Content = %q", last.Content)
	}
}

func TestExchange(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		sender := &api.MockChatClient{Reply: "Hi there"}
		res := Exchange(context.Background(), sender, Ticket{ID: 1, Text: "hello"})

		s, ok := res.(Success)
		if !ok || s.Reply != "Hi there" {
			t.Errorf("Exchange() = %#v, want Success{Hi there}", res)
		}
		if sender.LastMessage() != "hello" {
			t.Errorf("sent %q, want ticket text", sender.LastMessage())
		}
	})

	t.Run("failure", func(t *testing.T) {
		cause := errors.New("connection refused")
		sender := &api.MockChatClient{Err: cause}
		res := Exchange(context.Background(), sender, Ticket{ID: 1, Text: "hello"})

		f, ok := res.(Failure)
		if !ok || !errors.Is(f.Err, cause) {
			t.Errorf("Exchange() = %#v, want Failure wrapping cause", res)
		}
	})
}

func TestFullCycle(t *testing.T) {
	c := newTestConversation()
	sender := &api.MockChatClient{Err: errors.New("offline")}

	ticket, _, _ := c.Submit("ping")
	bot, _ := c.Resolve(ticket, Exchange(context.Background(), sender, ticket))

	if bot.Content != models.ErrorReply {
		t.Errorf("bot content = %q, want error reply", bot.Content)
	}
	if sender.Calls() != 1 {
		t.Errorf("calls = %d, want 1", sender.Calls())
	}
}
