package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/goreceipts/internal/infrastructure/metrics"
)

// ExportUseCase writes the whole record list, printable or not, as a
// spreadsheet.
type ExportUseCase struct {
	records  RecordLister
	exporter RecordExporter
	basename string
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// NewExportUseCase creates a new ExportUseCase. The export file shares the
// printed document's base name.
func NewExportUseCase(records RecordLister, exporter RecordExporter, filename string, logger zerolog.Logger, metrics *metrics.Metrics) *ExportUseCase {
	if filename == "" {
		filename = DefaultFilename
	}
	if i := strings.LastIndex(filename, "."); i > 0 {
		filename = filename[:i]
	}
	return &ExportUseCase{
		records:  records,
		exporter: exporter,
		basename: filename,
		logger:   logger,
		metrics:  metrics,
	}
}

// ExportResult is a finished export.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
	Records     int
}

// Export renders every record in display order.
func (uc *ExportUseCase) Export(ctx context.Context) (*ExportResult, error) {
	records, err := uc.records.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := uc.exporter.Export(&buf, records); err != nil {
		uc.logger.Error().Err(err).Int("records", len(records)).Msg("failed to export records")
		return nil, fmt.Errorf("export records: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.ExportsCreated.Inc()
	}

	return &ExportResult{
		Filename:    uc.basename + uc.exporter.Extension(),
		ContentType: uc.exporter.ContentType(),
		Data:        buf.Bytes(),
		Records:     len(records),
	}, nil
}
