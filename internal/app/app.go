// Package app wires configuration, storage and use cases together for the
// server and CLI binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/goreceipts/internal/adapter/export"
	"github.com/iho/goreceipts/internal/adapter/repository"
	"github.com/iho/goreceipts/internal/adapter/repository/idgen"
	"github.com/iho/goreceipts/internal/infrastructure/config"
	"github.com/iho/goreceipts/internal/infrastructure/metrics"
	"github.com/iho/goreceipts/internal/infrastructure/pdf"
	"github.com/iho/goreceipts/internal/receipt"
	"github.com/iho/goreceipts/internal/usecase"
)

// Creator is written into generated PDF metadata.
const Creator = "goreceipts"

// App holds the wired use cases and the resources behind them.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
	Backend *repository.Backend
	Layout  receipt.Layout

	Records  *usecase.RecordUseCase
	Printer  *usecase.PrintUseCase
	Exporter *usecase.ExportUseCase
}

type options struct {
	registerer prometheus.Registerer
	now        func() time.Time
	intn       func(int) int
}

// Option configures New.
type Option func(*options)

// WithRegisterer registers metrics with reg instead of the default registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithClock overrides the wall clock. The configured time zone still
// applies.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithRandom overrides the source of receipt number suffixes.
func WithRandom(intn func(int) int) Option {
	return func(o *options) {
		o.intn = intn
	}
}

// New opens the configured store, loads the record list and builds the use
// cases.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	layout, err := receipt.LayoutByName(cfg.ReceiptLayout)
	if err != nil {
		return nil, err
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load time zone: %w", err)
	}
	now := func() time.Time { return o.now().In(loc) }

	m := metrics.New(o.registerer)

	backend, err := repository.Open(ctx, cfg, logger, m)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StorageBackend, err)
	}

	records := usecase.NewRecordUseCase(backend.Store, idgen.NewULIDGenerator(),
		usecase.WithStorageKey(cfg.StorageKey),
		usecase.WithClock(now),
		usecase.WithLogger(logger),
		usecase.WithMetrics(m),
	)

	loadCtx, cancel := context.WithTimeout(ctx, usecase.DefaultStoreTimeout)
	defer cancel()
	if err := records.Load(loadCtx); err != nil {
		backend.Close()
		return nil, err
	}

	composerOpts := []receipt.Option{receipt.WithClock(now)}
	if o.intn != nil {
		composerOpts = append(composerOpts, receipt.WithRandom(o.intn))
	}
	composer := receipt.NewComposer(layout, composerOpts...)

	factory := pdf.Factory{Title: receipt.Title, Creator: Creator}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  m,
		Backend:  backend,
		Layout:   layout,
		Records:  records,
		Printer:  usecase.NewPrintUseCase(records, factory, composer, cfg.ReceiptFilename, logger, m),
		Exporter: usecase.NewExportUseCase(records, export.NewXLSXExporter(), cfg.ReceiptFilename, logger, m),
	}, nil
}

// Close releases the store connection.
func (a *App) Close() error {
	return a.Backend.Close()
}
