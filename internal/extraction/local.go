package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"finrecon-backend/internal/findoc"
)

// LocalParser extracts plain text from uploaded documents without calling the
// hosted service. PDFs go through a text extractor; everything else is
// treated as UTF-8 text. Used when no API key is configured, so uploads still
// work in dev even though structured extraction does not.
type LocalParser struct{}

func (LocalParser) Parse(ctx context.Context, fileName string, content []byte) (ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return ParseResult{}, err
	}
	text, err := localText(fileName, content)
	if err != nil {
		return ParseResult{}, err
	}
	return ParseResult{
		Markdown: text,
		Metadata: map[string]any{"source": "local"},
	}, nil
}

// NoExtractor rejects structured extraction when the hosted service is not
// configured.
type NoExtractor struct{}

func (NoExtractor) Extract(ctx context.Context, markdown string, schema findoc.Schema) (json.RawMessage, error) {
	return nil, ErrNotConfigured
}

func localText(fileName string, content []byte) (string, error) {
	if isPDF(fileName, content) {
		return pdfText(content)
	}
	return strings.TrimSpace(string(content)), nil
}

func isPDF(fileName string, content []byte) bool {
	if strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return true
	}
	return bytes.HasPrefix(content, []byte("%PDF-"))
}

func pdfText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var (
	_ Parser    = LocalParser{}
	_ Extractor = NoExtractor{}
)
