package documents

import (
	"encoding/json"
	"time"
)

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID      string          `json:"documentId"`
	FileName        string          `json:"fileName"`
	DocType         string          `json:"docType"`
	ExtractedFields json.RawMessage `json:"extractedFields,omitempty"`
	ProcessedAt     time.Time       `json:"processedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:      doc.ID,
		FileName:        doc.FileName,
		DocType:         string(doc.DocType),
		ExtractedFields: doc.ExtractedFields,
		ProcessedAt:     doc.ProcessedAt,
	}
}
