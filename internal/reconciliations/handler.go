package reconciliations

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"finrecon-backend/internal/documents"
	"finrecon-backend/internal/shared/server/middleware"
	"finrecon-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reconciliations", h.run)
	rg.GET("/reconciliations", h.list)
	rg.GET("/reconciliations/:id", h.get)
}

type runRequest struct {
	InvoiceDocumentID string `json:"invoiceDocumentId"`
	PODocumentID      string `json:"poDocumentId"`
}

func (h *Handler) run(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sessionID := middleware.SessionIDFromContext(c)

	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.InvoiceDocumentID = strings.TrimSpace(req.InvoiceDocumentID)
	req.PODocumentID = strings.TrimSpace(req.PODocumentID)
	if req.InvoiceDocumentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invoiceDocumentId is required", nil)
		return
	}

	rec, err := h.Svc.Run(c.Request.Context(), userID, sessionID, req.InvoiceDocumentID, req.PODocumentID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run reconciliation", nil)
		}
		return
	}

	c.Set("reconciliationId", rec.ID)
	respond.JSON(c, http.StatusCreated, toResponse(rec))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	rec, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "reconciliation not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch reconciliation", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(rec))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	recs, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list reconciliations", nil)
		}
		return
	}

	resp := make([]Response, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, toResponse(rec))
	}
	respond.JSON(c, http.StatusOK, resp)
}
