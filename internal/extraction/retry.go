package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strings"
	"time"

	"finrecon-backend/internal/findoc"
)

const retryBaseDelay = 300 * time.Millisecond

// retryingClient wraps a Parser+Extractor pair with a single retry on
// transient failures.
type retryingClient struct {
	parser    Parser
	extractor Extractor
	requestID string
}

// WithRetry adds one retry on transient network and 5xx failures to the given
// client. The request id is carried only for log correlation.
func WithRetry(parser Parser, extractor Extractor, requestID string) (Parser, Extractor) {
	r := retryingClient{parser: parser, extractor: extractor, requestID: requestID}
	return r, r
}

func (r retryingClient) Parse(ctx context.Context, fileName string, content []byte) (ParseResult, error) {
	result, err := r.parser.Parse(ctx, fileName, content)
	if err == nil || !shouldRetry(err) {
		return result, err
	}
	log.Printf("extraction retry op=parse attempt=1 request_id=%s error=%s", r.requestID, err)
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return ParseResult{}, ctx.Err()
	}
	return r.parser.Parse(ctx, fileName, content)
}

func (r retryingClient) Extract(ctx context.Context, markdown string, schema findoc.Schema) (json.RawMessage, error) {
	result, err := r.extractor.Extract(ctx, markdown, schema)
	if err == nil || !shouldRetry(err) {
		return result, err
	}
	log.Printf("extraction retry op=extract attempt=1 request_id=%s error=%s", r.requestID, err)
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return r.extractor.Extract(ctx, markdown, schema)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotConfigured) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") {
		return true
	}
	if strings.Contains(msg, "timeout") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
