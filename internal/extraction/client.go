// Package extraction binds the external document-understanding service. A
// document goes through two calls: Parse turns the raw file into markdown,
// Extract pulls schema-shaped fields out of that markdown. Both are plain
// HTTPS calls; everything downstream of them is pure computation.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"finrecon-backend/internal/findoc"
	"finrecon-backend/internal/shared/telemetry"
)

const (
	defaultParseURL   = "https://api.va.landing.ai/v1/ade/parse"
	defaultExtractURL = "https://api.va.landing.ai/v1/ade/extract"

	parseModel   = "dpt-2-latest"
	extractModel = "extract-latest"
)

// ErrNotConfigured is returned when structured extraction is requested but no
// API key is set.
var ErrNotConfigured = errors.New("extraction api not configured")

// ParseResult is the output of the parse call.
type ParseResult struct {
	Markdown string         `json:"markdown"`
	Metadata map[string]any `json:"metadata"`
}

// Parser turns a raw document into markdown text.
type Parser interface {
	Parse(ctx context.Context, fileName string, content []byte) (ParseResult, error)
}

// Extractor pulls schema-shaped fields out of parsed markdown. The result may
// be partial: fields the service could not read come back null and the caller
// must treat that as a valid input, not an error.
type Extractor interface {
	Extract(ctx context.Context, markdown string, schema findoc.Schema) (json.RawMessage, error)
}

// Client calls the hosted extraction service. It implements both Parser and
// Extractor.
type Client struct {
	apiKey     string
	parseURL   string
	extractURL string
	httpClient *http.Client
}

// NewClient constructs a Client. Endpoint URLs can be overridden through
// EXTRACTION_PARSE_URL / EXTRACTION_EXTRACT_URL for testing.
func NewClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("EXTRACTION_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:     apiKey,
		parseURL:   envOr("EXTRACTION_PARSE_URL", defaultParseURL),
		extractURL: envOr("EXTRACTION_EXTRACT_URL", defaultExtractURL),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Parse submits the document and returns the recognized markdown.
func (c *Client) Parse(ctx context.Context, fileName string, content []byte) (ParseResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("model", parseModel); err != nil {
		return ParseResult{}, err
	}
	fw, err := writer.CreateFormFile("document", fileName)
	if err != nil {
		return ParseResult{}, err
	}
	if _, err := fw.Write(content); err != nil {
		return ParseResult{}, err
	}
	if err := writer.Close(); err != nil {
		return ParseResult{}, err
	}

	raw, status, err := c.post(ctx, c.parseURL, writer.FormDataContentType(), body)
	if err != nil {
		return ParseResult{}, err
	}
	if status != http.StatusOK {
		return ParseResult{}, fmt.Errorf("extraction parse failed: http status %d: %s", status, truncate(raw, 200))
	}

	var result ParseResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return ParseResult{}, fmt.Errorf("extraction parse response: %w", err)
	}
	return result, nil
}

// Extract runs schema-guided extraction over parsed markdown. Both 200 and
// 206 (partial result) are accepted; a 206 logs the schema violation and
// still returns whatever fields were read.
func (c *Client) Extract(ctx context.Context, markdown string, schema findoc.Schema) (json.RawMessage, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("schema", string(schema)); err != nil {
		return nil, err
	}
	if err := writer.WriteField("model", extractModel); err != nil {
		return nil, err
	}
	if err := writer.WriteField("markdown", markdown); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	raw, status, err := c.post(ctx, c.extractURL, writer.FormDataContentType(), body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusPartialContent {
		return nil, fmt.Errorf("extraction failed: http status %d: %s", status, truncate(raw, 200))
	}

	var result struct {
		Extraction json.RawMessage `json:"extraction"`
		Metadata   struct {
			SchemaViolationError string `json:"schema_violation_error"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("extraction response: %w", err)
	}

	if status == http.StatusPartialContent && result.Metadata.SchemaViolationError != "" {
		telemetry.Info("extraction.partial", map[string]any{
			"schema_violation": truncate([]byte(result.Metadata.SchemaViolationError), 200),
		})
	}
	return result.Extraction, nil
}

func (c *Client) post(ctx context.Context, url, contentType string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, 0, fmt.Errorf("extraction request timeout: %w", err)
		}
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return raw, resp.StatusCode, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func truncate(raw []byte, n int) string {
	s := string(raw)
	if len(s) > n {
		return s[:n]
	}
	return s
}

var (
	_ Parser    = (*Client)(nil)
	_ Extractor = (*Client)(nil)
)
