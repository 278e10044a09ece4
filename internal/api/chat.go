package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/golang/glog"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/uplyft/internal/errors"
)

// Response size limits
const (
	maxReplyBytes = 1 << 20 // 1 MiB
	maxErrorBytes = 4 << 10 // 4 KiB kept for diagnostics
)

// PathReply is the gjson path of the reply text
const PathReply = "reply"

// chatRequest is the outbound request body
type chatRequest struct {
	Message string `json:"message"`
}

// SendMessage posts text to the chat endpoint and returns the reply field.
// Only the given text is sent; no earlier turns are included.
func (c *Client) SendMessage(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apierrors.ErrEmptyMessage
	}

	if c.IsClosed() {
		return "", apierrors.ErrClientClosed
	}

	payload, err := json.Marshal(chatRequest{Message: text})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(ctx, c.endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	glog.V(1).Infof("api: POST %s -> %d in %s", c.endpoint, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return "", apierrors.NewAPIErrorWithBody(resp.StatusCode, c.endpoint, "send message failed", string(errorBody))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", classifyTransportError(ctx, c.endpoint, err)
	}

	return parseReply(body)
}

// parseReply extracts the reply string from a response body
func parseReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}

	reply := gjson.GetBytes(body, PathReply)
	if !reply.Exists() {
		return "", apierrors.NewParseError("missing reply field", PathReply)
	}
	if reply.Type != gjson.String {
		return "", apierrors.NewParseError("reply is not a string", PathReply)
	}

	return reply.String(), nil
}

// classifyTransportError maps a failed round trip to a timeout or network error
func classifyTransportError(ctx context.Context, endpoint string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(endpoint)
	}

	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return apierrors.NewTimeoutError(endpoint)
	}

	return apierrors.NewNetworkError("send message", endpoint, err)
}
