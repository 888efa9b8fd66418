package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goreceipts/internal/adapter/http/dto"
	"github.com/iho/goreceipts/internal/domain"
	"github.com/iho/goreceipts/internal/usecase"
)

// RecordService defines the behavior needed by RecordHandler.
type RecordService interface {
	List(ctx context.Context) ([]domain.Record, error)
	Get(ctx context.Context, id string) (domain.Record, error)
	Add(ctx context.Context, patch usecase.RecordPatch) (domain.Record, error)
	Update(ctx context.Context, id string, patch usecase.RecordPatch) (domain.Record, error)
	Remove(ctx context.Context, id string) error
	Shift(ctx context.Context, id string, months int) (domain.Record, error)
}

// RecordHandler handles record-related HTTP requests.
type RecordHandler struct {
	recordUC RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordUC RecordService) *RecordHandler {
	return &RecordHandler{recordUC: recordUC}
}

// List returns every record in display order.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.recordUC.List(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list records", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordListFromDomain(records))
}

// Create adds a record. The body is optional; an empty record starts with
// the current month as its period.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.recordUC.Add(r.Context(), req.ToPatch())
	if err != nil {
		writeDomainError(w, "failed to add record", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordFromDomain(record))
}

// Get retrieves a record by ID.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing record ID", "")
		return
	}

	record, err := h.recordUC.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get record", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordFromDomain(record))
}

// Update edits the fields present in the body.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing record ID", "")
		return
	}

	var req dto.RecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	patch := req.ToPatch()
	if patch.Empty() {
		writeError(w, http.StatusBadRequest, "nothing to update", "")
		return
	}

	record, err := h.recordUC.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, "failed to update record", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordFromDomain(record))
}

// Delete removes a record.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing record ID", "")
		return
	}

	if err := h.recordUC.Remove(r.Context(), id); err != nil {
		writeDomainError(w, "failed to remove record", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Shift moves a record's period by the requested number of months.
func (h *RecordHandler) Shift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing record ID", "")
		return
	}

	var req dto.ShiftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.recordUC.Shift(r.Context(), id, req.Months)
	if err != nil {
		writeDomainError(w, "failed to shift period", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordFromDomain(record))
}
