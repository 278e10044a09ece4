package api

import (
	"io"
	"strings"
	"sync"

	http "github.com/bogdanfinn/fhttp"
)

// mockDoer implements HTTPDoer for testing
type mockDoer struct {
	mu sync.Mutex

	// Mock responses
	response *http.Response
	err      error
	doFunc   func(req *http.Request) (*http.Response, error)

	// Recorded requests
	requests []*http.Request
	bodies   []string

	closedIdle bool
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		m.bodies = append(m.bodies, string(b))
	}
	fn := m.doFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(req)
	}
	return m.response, m.err
}

func (m *mockDoer) CloseIdleConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closedIdle = true
}

func (m *mockDoer) lastBody() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.bodies) == 0 {
		return ""
	}
	return m.bodies[len(m.bodies)-1]
}

// newResponse builds a response with the given status and body
func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// errReader fails every read
type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }
