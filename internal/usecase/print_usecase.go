package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goreceipts/internal/domain"
	"github.com/iho/goreceipts/internal/infrastructure/metrics"
	"github.com/iho/goreceipts/internal/receipt"
)

// RecordLister provides the current record list.
type RecordLister interface {
	List(ctx context.Context) ([]domain.Record, error)
}

// PrintUseCase renders the printable records as one document.
type PrintUseCase struct {
	records  RecordLister
	factory  DocumentFactory
	composer *receipt.Composer
	filename string
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// NewPrintUseCase creates a new PrintUseCase.
func NewPrintUseCase(
	records RecordLister,
	factory DocumentFactory,
	composer *receipt.Composer,
	filename string,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
) *PrintUseCase {
	if filename == "" {
		filename = DefaultFilename
	}
	return &PrintUseCase{
		records:  records,
		factory:  factory,
		composer: composer,
		filename: filename,
		logger:   logger,
		metrics:  metrics,
	}
}

// PrintResult is a finished document.
type PrintResult struct {
	Filename string
	Document []byte
	Pages    int
	Receipts []receipt.Receipt
	// Skipped counts records left out for missing tenant, amount or period.
	Skipped int
}

// Print selects the printable records and composes them into a document.
// Nothing is returned unless the whole document rendered.
func (uc *PrintUseCase) Print(ctx context.Context) (result *PrintResult, err error) {
	start := time.Now()
	defer func() {
		if uc.metrics == nil {
			return
		}
		if err != nil {
			uc.metrics.PrintErrors.WithLabelValues(errorType(err)).Inc()
			return
		}
		uc.metrics.PrintDuration.Observe(time.Since(start).Seconds())
		uc.metrics.ReceiptsPrinted.Add(float64(len(result.Receipts)))
		uc.metrics.PagesRendered.Add(float64(result.Pages))
	}()

	records, err := uc.records.List(ctx)
	if err != nil {
		return nil, err
	}

	printable, err := receipt.SelectPrintable(records)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := uc.factory.NewDocument(uc.composer.Layout())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRenderingFailure, err)
	}

	summary, err := uc.composer.Compose(doc, printable)
	if err != nil {
		uc.logger.Error().Err(err).Int("receipts", len(printable)).Msg("failed to compose receipts")
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		uc.logger.Error().Err(err).Msg("failed to output document")
		return nil, fmt.Errorf("%w: %w", domain.ErrRenderingFailure, err)
	}

	uc.logger.Info().
		Int("receipts", len(summary.Receipts)).
		Int("pages", summary.Pages).
		Int("skipped", len(records)-len(printable)).
		Str("layout", uc.composer.Layout().Name).
		Msg("receipts printed")

	return &PrintResult{
		Filename: uc.filename,
		Document: buf.Bytes(),
		Pages:    summary.Pages,
		Receipts: summary.Receipts,
		Skipped:  len(records) - len(printable),
	}, nil
}
