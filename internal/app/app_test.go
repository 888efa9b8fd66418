package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goreceipts/internal/app"
	"github.com/iho/goreceipts/internal/infrastructure/config"
	"github.com/iho/goreceipts/internal/receipt"
	"github.com/iho/goreceipts/internal/usecase"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StorageBackend:  config.StorageFile,
		StorageKey:      "receiptEntries",
		StorageDir:      t.TempDir(),
		ReceiptLayout:   receipt.LayoutGrid,
		ReceiptTimezone: "America/Mexico_City",
	}
}

func strPtr(s string) *string { return &s }

func TestNewWiresUseCases(t *testing.T) {
	cfg := testConfig(t)

	// 03:00 UTC on April 1st is still March 31st in Mexico City.
	clock := func() time.Time { return time.Date(2025, time.April, 1, 3, 0, 0, 0, time.UTC) }

	a, err := app.New(context.Background(), cfg, zerolog.Nop(),
		app.WithRegisterer(prometheus.NewRegistry()),
		app.WithClock(clock),
		app.WithRandom(func(int) int { return 7 }),
	)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, receipt.LayoutGrid, a.Layout.Name)

	rec, err := a.Records.Add(context.Background(), usecase.RecordPatch{
		Tenant: strPtr("Ana"),
		Amount: strPtr("900"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, int(rec.PeriodStart.Month))

	result, err := a.Printer.Print(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, "20250331-007", result.Receipts[0].Number)
	assert.Equal(t, usecase.DefaultFilename, result.Filename)

	exported, err := a.Exporter.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "recibos_oficiales_alquiler.xlsx", exported.Filename)
}

func TestNewPersistsAcrossInstances(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	first, err := app.New(ctx, cfg, zerolog.Nop(), app.WithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, err)
	_, err = first.Records.Add(ctx, usecase.RecordPatch{Tenant: strPtr("Luis")})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := app.New(ctx, cfg, zerolog.Nop(), app.WithRegisterer(prometheus.NewRegistry()))
	require.NoError(t, err)
	defer second.Close()

	records, err := second.Records.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Luis", records[0].Tenant)
}

func TestNewRejectsUnknownLayout(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReceiptLayout = "poster"

	_, err := app.New(context.Background(), cfg, zerolog.Nop(), app.WithRegisterer(prometheus.NewRegistry()))
	assert.ErrorIs(t, err, receipt.ErrInvalidLayout)
}
