package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"finrecon-backend/internal/extraction"
	"finrecon-backend/internal/findoc"
	"finrecon-backend/internal/shared/metrics"
	"finrecon-backend/internal/shared/storage/object"
	"finrecon-backend/internal/shared/telemetry"
)

// AuditRecorder records a user action for the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, userID, sessionID, action, details string)
}

// StatsRecorder bumps per-user dashboard counters.
type StatsRecorder interface {
	DocumentProcessed(ctx context.Context, userID string, docType findoc.DocType)
}

// SessionCounter bumps the per-login processed-documents counter.
type SessionCounter interface {
	IncrementDocuments(ctx context.Context, sessionID string)
}

// Service contains the document processing pipeline: store the upload, parse
// it to markdown, detect its type, run schema-guided extraction, persist.
type Service struct {
	Store     object.ObjectStore
	Repo      DocumentsRepo
	Parser    extraction.Parser
	Extractor extraction.Extractor
	Audit     AuditRecorder
	Stats     StatsRecorder
	Sessions  SessionCounter
}

// Upload runs the full pipeline for one uploaded file. When override is a
// valid document type it wins over keyword detection. When the extraction
// service is not configured the document is stored with markdown only.
func (s *Service) Upload(ctx context.Context, userID, sessionID, fileName string, r io.Reader, override findoc.DocType) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	if len(content) == 0 {
		return Document{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	fileKey, _, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(content))
	if err != nil {
		return Document{}, err
	}

	started := time.Now()
	parsed, err := s.Parser.Parse(ctx, fileName, content)
	if err != nil {
		metrics.IncDocumentsFailed()
		return Document{}, fmt.Errorf("parse document: %w", err)
	}

	docType := override
	if !docType.Valid() {
		docType = findoc.DetectType(parsed.Markdown)
	}

	// Keep a derived markdown copy next to the original, best effort.
	if saver, ok := s.Store.(keySaver); ok && parsed.Markdown != "" {
		if _, err := saver.SaveWithKey(ctx, fileKey+".md", "text/markdown; charset=utf-8", strings.NewReader(parsed.Markdown)); err != nil {
			telemetry.Error("documents.markdown_save_failed", map[string]any{"file_key": fileKey, "err": err.Error()})
		}
	}

	var fields []byte
	extracted, err := s.Extractor.Extract(ctx, parsed.Markdown, findoc.SchemaFor(docType))
	switch {
	case err == nil:
		fields = extracted
	case errors.Is(err, extraction.ErrNotConfigured):
		telemetry.Info("documents.extraction_skipped", map[string]any{"file_name": fileName})
	default:
		metrics.IncDocumentsFailed()
		return Document{}, fmt.Errorf("extract fields: %w", err)
	}
	metrics.ObserveExtractionDurationMs(float64(time.Since(started)) / float64(time.Millisecond))

	doc := Document{
		ID:              uuid.NewString(),
		UserID:          userID,
		FileName:        fileName,
		FileKey:         fileKey,
		DocType:         docType,
		Markdown:        parsed.Markdown,
		ExtractedFields: fields,
		ProcessedAt:     time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	metrics.IncDocumentsProcessed()
	if s.Audit != nil {
		s.Audit.Record(ctx, userID, sessionID, "document_processed", fmt.Sprintf("%s: %s", docType, fileName))
	}
	if s.Stats != nil {
		s.Stats.DocumentProcessed(ctx, userID, docType)
	}
	if s.Sessions != nil && sessionID != "" {
		s.Sessions.IncrementDocuments(ctx, sessionID)
	}

	return doc, nil
}

// Get returns one document owned by the user.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns the user's documents newest-first, optionally filtered by type.
func (s *Service) List(ctx context.Context, userID string, docType findoc.DocType, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, docType, limit, offset)
}

type keySaver interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}

// OpenOriginal streams the stored upload for download.
func (s *Service) OpenOriginal(ctx context.Context, userID, documentID string) (io.ReadCloser, Document, error) {
	doc, err := s.Get(ctx, userID, documentID)
	if err != nil {
		return nil, Document{}, err
	}
	body, err := s.Store.Open(ctx, doc.FileKey)
	if err != nil {
		return nil, Document{}, err
	}
	return body, doc, nil
}

// Delete removes a document and records the action.
func (s *Service) Delete(ctx context.Context, userID, sessionID, documentID string) error {
	if userID == "" || documentID == "" {
		return ErrInvalidInput
	}
	if err := s.Repo.Delete(ctx, userID, documentID); err != nil {
		return err
	}
	if s.Audit != nil {
		s.Audit.Record(ctx, userID, sessionID, "document_deleted", documentID)
	}
	return nil
}
