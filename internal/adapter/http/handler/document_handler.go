package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/iho/goreceipts/internal/usecase"
)

// Printer renders receipts.
type Printer interface {
	Print(ctx context.Context) (*usecase.PrintResult, error)
}

// Exporter renders the record list as a spreadsheet.
type Exporter interface {
	Export(ctx context.Context) (*usecase.ExportResult, error)
}

// DocumentHandler serves generated files.
type DocumentHandler struct {
	printer  Printer
	exporter Exporter
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(printer Printer, exporter Exporter) *DocumentHandler {
	return &DocumentHandler{printer: printer, exporter: exporter}
}

// Print returns the receipts PDF as an attachment.
func (h *DocumentHandler) Print(w http.ResponseWriter, r *http.Request) {
	result, err := h.printer.Print(r.Context())
	if err != nil {
		writeDomainError(w, "failed to print receipts", err)
		return
	}

	w.Header().Set("X-Receipt-Count", strconv.Itoa(len(result.Receipts)))
	w.Header().Set("X-Receipt-Pages", strconv.Itoa(result.Pages))
	w.Header().Set("X-Receipts-Skipped", strconv.Itoa(result.Skipped))
	writeAttachment(w, "application/pdf", result.Filename, result.Document)
}

// Export returns the record list as an attachment.
func (h *DocumentHandler) Export(w http.ResponseWriter, r *http.Request) {
	result, err := h.exporter.Export(r.Context())
	if err != nil {
		writeDomainError(w, "failed to export records", err)
		return
	}

	w.Header().Set("X-Record-Count", strconv.Itoa(result.Records))
	writeAttachment(w, result.ContentType, result.Filename, result.Data)
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
