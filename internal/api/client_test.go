package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/uplyft/internal/errors"
	"github.com/diogo/uplyft/internal/models"
)

func newTestClient(t *testing.T, doer *mockDoer, opts ...ClientOption) *Client {
	t.Helper()
	opts = append([]ClientOption{WithHTTPClient(doer)}, opts...)
	c, err := NewClient(opts...)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClient_Defaults(t *testing.T) {
	c := newTestClient(t, &mockDoer{})

	if c.Endpoint() != models.DefaultEndpoint {
		t.Errorf("Endpoint() = %q, want %q", c.Endpoint(), models.DefaultEndpoint)
	}
	if c.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0", c.Timeout())
	}
	if c.IsClosed() {
		t.Error("new client should not be closed")
	}
}

func TestNewClient_Options(t *testing.T) {
	c := newTestClient(t, &mockDoer{},
		WithEndpoint("http://example.test/chat"),
		WithTimeout(3*time.Second),
		WithClientProfile("firefox_120"),
	)

	if c.Endpoint() != "http://example.test/chat" {
		t.Errorf("Endpoint() = %q", c.Endpoint())
	}
	if c.Timeout() != 3*time.Second {
		t.Errorf("Timeout() = %v", c.Timeout())
	}
	if c.profile != "firefox_120" {
		t.Errorf("profile = %q", c.profile)
	}
}

func TestNewClient_EmptyEndpointKeepsDefault(t *testing.T) {
	c := newTestClient(t, &mockDoer{}, WithEndpoint(""))
	if c.Endpoint() != models.DefaultEndpoint {
		t.Errorf("Endpoint() = %q, want default", c.Endpoint())
	}
}

func TestNewClient_RealTransport(t *testing.T) {
	c, err := NewClient(WithTimeout(5 * time.Second))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if c.httpClient == nil {
		t.Fatal("expected a tls-client transport")
	}
	c.Close()
}

func TestSendMessage_Success(t *testing.T) {
	doer := &mockDoer{response: newResponse(200, `{"reply":"You said: hi"}`)}
	c := newTestClient(t, doer, WithEndpoint("http://backend.test/chat"))

	reply, err := c.SendMessage(context.Background(), "hi")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if reply != "You said: hi" {
		t.Errorf("reply = %q", reply)
	}

	if len(doer.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(doer.requests))
	}
	req := doer.requests[0]
	if req.Method != http.MethodPost {
		t.Errorf("method = %s, want POST", req.Method)
	}
	if req.URL.String() != "http://backend.test/chat" {
		t.Errorf("url = %s", req.URL.String())
	}
	if ct := req.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(doer.lastBody()), &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if len(body) != 1 || body["message"] != "hi" {
		t.Errorf("request body = %v, want only message", body)
	}
}

func TestSendMessage_SendsTextUntrimmed(t *testing.T) {
	doer := &mockDoer{response: newResponse(200, `{"reply":"ok"}`)}
	c := newTestClient(t, doer)

	if _, err := c.SendMessage(context.Background(), "  hello  "); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if got := doer.lastBody(); got != `{"message":"  hello  "}` {
		t.Errorf("body = %s", got)
	}
}

func TestSendMessage_EmptyReplyIsValid(t *testing.T) {
	doer := &mockDoer{response: newResponse(200, `{"reply":""}`)}
	c := newTestClient(t, doer)

	reply, err := c.SendMessage(context.Background(), "hi")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if reply != "" {
		t.Errorf("reply = %q, want empty", reply)
	}
}

func TestSendMessage_ExtraFieldsIgnored(t *testing.T) {
	doer := &mockDoer{response: newResponse(201, `{"reply":"x","meta":{"a":1}}`)}
	c := newTestClient(t, doer)

	reply, err := c.SendMessage(context.Background(), "hi")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if reply != "x" {
		t.Errorf("reply = %q", reply)
	}
}

func TestSendMessage_Failures(t *testing.T) {
	tests := []struct {
		name   string
		doer   *mockDoer
		check  func(error) bool
		detail string
	}{
		{
			name:   "server error",
			doer:   &mockDoer{response: newResponse(500, "boom")},
			check:  apierrors.IsAPIError,
			detail: "api error",
		},
		{
			name:   "not found",
			doer:   &mockDoer{response: newResponse(404, `{"reply":"hidden"}`)},
			check:  apierrors.IsAPIError,
			detail: "api error",
		},
		{
			name:   "invalid json",
			doer:   &mockDoer{response: newResponse(200, "<html>nope</html>")},
			check:  apierrors.IsParseError,
			detail: "parse error",
		},
		{
			name:   "missing reply",
			doer:   &mockDoer{response: newResponse(200, `{"answer":"x"}`)},
			check:  apierrors.IsParseError,
			detail: "parse error",
		},
		{
			name:   "numeric reply",
			doer:   &mockDoer{response: newResponse(200, `{"reply":42}`)},
			check:  apierrors.IsParseError,
			detail: "parse error",
		},
		{
			name:   "null reply",
			doer:   &mockDoer{response: newResponse(200, `{"reply":null}`)},
			check:  apierrors.IsParseError,
			detail: "parse error",
		},
		{
			name:   "connection refused",
			doer:   &mockDoer{err: errors.New("dial tcp 127.0.0.1:5000: connect: connection refused")},
			check:  apierrors.IsNetworkError,
			detail: "network error",
		},
		{
			name:   "net timeout",
			doer:   &mockDoer{err: &net.DNSError{Err: "i/o timeout", IsTimeout: true}},
			check:  apierrors.IsTimeoutError,
			detail: "timeout error",
		},
		{
			name: "body read fails",
			doer: &mockDoer{response: &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(errReader{err: errors.New("connection reset")}),
			}},
			check:  apierrors.IsNetworkError,
			detail: "network error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.doer)

			reply, err := c.SendMessage(context.Background(), "hi")
			if err == nil {
				t.Fatalf("expected error, got reply %q", reply)
			}
			if reply != "" {
				t.Errorf("reply = %q, want empty on failure", reply)
			}
			if !tt.check(err) {
				t.Errorf("error %v (%T) is not a %s", err, err, tt.detail)
			}
		})
	}
}

func TestSendMessage_APIErrorCarriesStatusAndBody(t *testing.T) {
	doer := &mockDoer{response: newResponse(503, "unavailable")}
	c := newTestClient(t, doer, WithEndpoint("http://backend.test/chat"))

	_, err := c.SendMessage(context.Background(), "hi")
	if got := apierrors.GetHTTPStatus(err); got != 503 {
		t.Errorf("status = %d, want 503", got)
	}
	if got := apierrors.GetEndpoint(err); got != "http://backend.test/chat" {
		t.Errorf("endpoint = %q", got)
	}
	if got := apierrors.GetResponseBody(err); got != "unavailable" {
		t.Errorf("body = %q", got)
	}
}

func TestSendMessage_ParseErrorMatchesSentinel(t *testing.T) {
	doer := &mockDoer{response: newResponse(200, `[]`)}
	c := newTestClient(t, doer)

	_, err := c.SendMessage(context.Background(), "hi")
	if !errors.Is(err, apierrors.ErrInvalidResponse) {
		t.Errorf("errors.Is(err, ErrInvalidResponse) = false for %v", err)
	}
}

func TestSendMessage_EmptyMessage(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		doer := &mockDoer{response: newResponse(200, `{"reply":"x"}`)}
		c := newTestClient(t, doer)

		_, err := c.SendMessage(context.Background(), text)
		if !errors.Is(err, apierrors.ErrEmptyMessage) {
			t.Errorf("SendMessage(%q) error = %v, want ErrEmptyMessage", text, err)
		}
		if len(doer.requests) != 0 {
			t.Errorf("SendMessage(%q) made %d requests, want 0", text, len(doer.requests))
		}
	}
}

func TestSendMessage_Closed(t *testing.T) {
	doer := &mockDoer{response: newResponse(200, `{"reply":"x"}`)}
	c := newTestClient(t, doer)

	c.Close()
	c.Close()

	if !doer.closedIdle {
		t.Error("Close() should release idle connections")
	}

	_, err := c.SendMessage(context.Background(), "hi")
	if !errors.Is(err, apierrors.ErrClientClosed) {
		t.Errorf("error = %v, want ErrClientClosed", err)
	}
}

func TestSendMessage_TimeoutFromContext(t *testing.T) {
	doer := &mockDoer{
		doFunc: func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		},
	}
	c := newTestClient(t, doer, WithTimeout(10*time.Millisecond))

	_, err := c.SendMessage(context.Background(), "hi")
	if !apierrors.IsTimeoutError(err) {
		t.Errorf("error = %v (%T), want timeout", err, err)
	}
}

func TestSendMessage_CancelledContext(t *testing.T) {
	doer := &mockDoer{
		doFunc: func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		},
	}
	c := newTestClient(t, doer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SendMessage(ctx, "hi")
	if !apierrors.IsNetworkError(err) {
		t.Errorf("error = %v (%T), want network error", err, err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("errors.Is(err, context.Canceled) = false for %v", err)
	}
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		body    string
		want    string
		wantErr bool
	}{
		{`{"reply":"hello"}`, "hello", false},
		{`{"reply":"line1\nline2"}`, "line1\nline2", false},
		{`{"reply":"ünïcode ✓"}`, "ünïcode ✓", false},
		{`{}`, "", true},
		{`{"reply":true}`, "", true},
		{`{"reply":{"text":"x"}}`, "", true},
		{``, "", true},
		{`{"reply":"unterminated`, "", true},
	}

	for _, tt := range tests {
		got, err := parseReply([]byte(tt.body))
		if (err != nil) != tt.wantErr {
			t.Errorf("parseReply(%q) error = %v, wantErr %v", tt.body, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseReply(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestMockChatClient(t *testing.T) {
	m := &MockChatClient{Reply: "pong"}

	got, err := m.SendMessage(context.Background(), "ping")
	if err != nil || got != "pong" {
		t.Errorf("SendMessage() = %q, %v", got, err)
	}
	if m.Calls() != 1 || m.LastMessage() != "ping" {
		t.Errorf("Calls() = %d, LastMessage() = %q", m.Calls(), m.LastMessage())
	}

	m.SendFunc = func(ctx context.Context, text string) (string, error) {
		return "", errors.New("down")
	}
	if _, err := m.SendMessage(context.Background(), "x"); err == nil {
		t.Error("SendFunc error should be returned")
	}
}
