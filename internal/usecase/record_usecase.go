package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/iho/goreceipts/internal/domain"
	"github.com/iho/goreceipts/internal/infrastructure/metrics"
)

// RecordUseCase owns the record list. Every mutation is applied to the
// in-memory list and then written to the snapshot store as a whole.
// Operations are serialized: there is exactly one writer at a time.
type RecordUseCase struct {
	mu sync.Mutex

	store   SnapshotStore
	idGen   IDGenerator
	key     string
	now     func() time.Time
	logger  zerolog.Logger
	metrics *metrics.Metrics

	list   *domain.RecordList
	loaded bool
}

// RecordOption configures a RecordUseCase.
type RecordOption func(*RecordUseCase)

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) RecordOption {
	return func(uc *RecordUseCase) {
		if key != "" {
			uc.key = key
		}
	}
}

// WithClock sets the source of "today" for new records and shifts.
func WithClock(now func() time.Time) RecordOption {
	return func(uc *RecordUseCase) {
		uc.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) RecordOption {
	return func(uc *RecordUseCase) {
		uc.logger = logger
	}
}

// WithMetrics enables metrics.
func WithMetrics(m *metrics.Metrics) RecordOption {
	return func(uc *RecordUseCase) {
		uc.metrics = m
	}
}

// NewRecordUseCase creates a new RecordUseCase. The list is loaded from the
// store on first use, or explicitly with Load.
func NewRecordUseCase(store SnapshotStore, idGen IDGenerator, opts ...RecordOption) *RecordUseCase {
	uc := &RecordUseCase{
		store:  store,
		idGen:  idGen,
		key:    DefaultStorageKey,
		now:    time.Now,
		logger: zerolog.Nop(),
		list:   domain.NewRecordList(nil),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RecordPatch holds user edits. Nil fields are left untouched; an empty
// string clears the field.
type RecordPatch struct {
	Unit        *string
	Tenant      *string
	Amount      *string
	PeriodStart *string
	PeriodEnd   *string
}

// Empty reports whether the patch changes nothing.
func (p RecordPatch) Empty() bool {
	return p.Unit == nil && p.Tenant == nil && p.Amount == nil && p.PeriodStart == nil && p.PeriodEnd == nil
}

func (p RecordPatch) apply(r *domain.Record) error {
	if p.Unit != nil {
		unit := domain.NormalizeText(*p.Unit)
		if err := domain.ValidateTextField("unit", unit); err != nil {
			return err
		}
		r.Unit = unit
	}

	if p.Tenant != nil {
		tenant := domain.NormalizeText(*p.Tenant)
		if err := domain.ValidateTextField("tenant", tenant); err != nil {
			return err
		}
		r.Tenant = tenant
	}

	if p.Amount != nil {
		amount, err := domain.ParseAmount(*p.Amount)
		if err != nil {
			return err
		}
		r.Amount = amount
	}

	if p.PeriodStart != nil {
		d, err := domain.ParseDate(*p.PeriodStart)
		if err != nil {
			return fmt.Errorf("period start: %w", err)
		}
		r.PeriodStart = d
	}

	if p.PeriodEnd != nil {
		d, err := domain.ParseDate(*p.PeriodEnd)
		if err != nil {
			return fmt.Errorf("period end: %w", err)
		}
		r.PeriodEnd = d
	}

	r.NormalizePeriod()
	return nil
}

// Load replaces the in-memory list with the stored snapshot. A missing or
// corrupt snapshot yields an empty list. Records without an id get a fresh
// one and stored periods are re-clamped; either repair is saved back.
func (uc *RecordUseCase) Load(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.load(ctx)
}

func (uc *RecordUseCase) load(ctx context.Context) error {
	data, err := uc.store.Load(ctx, uc.key)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		uc.setList(domain.NewRecordList(nil))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load snapshot %q: %w", uc.key, err)
	}

	records, err := DecodeSnapshot(data)
	if err != nil {
		uc.logger.Warn().
			Err(err).
			Str("key", uc.key).
			Msg("discarding corrupt snapshot, starting with an empty list")
		uc.setList(domain.NewRecordList(nil))
		return nil
	}

	repaired := false
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uc.idGen.Generate()
			repaired = true
		}
		if records[i].NormalizePeriod() {
			repaired = true
		}
	}

	list := domain.NewRecordList(records)
	if list.Len() != len(records) {
		uc.logger.Warn().
			Str("key", uc.key).
			Int("stored", len(records)).
			Int("kept", list.Len()).
			Msg("dropped duplicate or excess records from snapshot")
		repaired = true
	}
	uc.setList(list)

	if repaired {
		if err := uc.persist(ctx); err != nil {
			uc.logger.Warn().Err(err).Str("key", uc.key).Msg("repaired snapshot not saved")
		}
	}

	uc.logger.Debug().Str("key", uc.key).Int("records", list.Len()).Msg("records loaded")
	return nil
}

func (uc *RecordUseCase) ensureLoaded(ctx context.Context) error {
	if uc.loaded {
		return nil
	}
	return uc.load(ctx)
}

func (uc *RecordUseCase) setList(list *domain.RecordList) {
	uc.list = list
	uc.loaded = true
	if uc.metrics != nil {
		uc.metrics.RecordsStored.Set(float64(list.Len()))
	}
}

// commit persists the list after a mutation. On failure the list is restored
// to prev so memory never runs ahead of the store.
func (uc *RecordUseCase) commit(ctx context.Context, prev []domain.Record) error {
	if err := uc.persist(ctx); err != nil {
		uc.list = domain.NewRecordList(prev)
		return err
	}
	return nil
}

// persist writes the full list under the storage key.
func (uc *RecordUseCase) persist(ctx context.Context) error {
	data, err := EncodeSnapshot(uc.list.Records())
	if err != nil {
		return err
	}

	if err := uc.store.Save(ctx, uc.key, data); err != nil {
		uc.logger.Error().Err(err).Str("key", uc.key).Msg("failed to save snapshot")
		return fmt.Errorf("save snapshot %q: %w", uc.key, err)
	}

	if uc.metrics != nil {
		uc.metrics.RecordsStored.Set(float64(uc.list.Len()))
	}
	return nil
}

func (uc *RecordUseCase) today() civil.Date {
	return civil.DateOf(uc.now())
}

func (uc *RecordUseCase) observe(operation string, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RecordOperations.WithLabelValues(operation).Inc()
	if err != nil {
		uc.metrics.RecordErrors.WithLabelValues(operation, errorType(err)).Inc()
	}
}

// List returns all records in display order.
func (uc *RecordUseCase) List(ctx context.Context) ([]domain.Record, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return uc.list.Records(), nil
}

// Get returns one record.
func (uc *RecordUseCase) Get(ctx context.Context, id string) (domain.Record, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.ensureLoaded(ctx); err != nil {
		return domain.Record{}, err
	}
	return uc.list.Get(id)
}

// Add appends a record whose period defaults to the current month, then
// applies patch. It fails with domain.ErrEntryLimitReached once the list
// holds domain.MaxRecords records.
func (uc *RecordUseCase) Add(ctx context.Context, patch RecordPatch) (rec domain.Record, err error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	defer func() { uc.observe("add", err) }()

	if err := uc.ensureLoaded(ctx); err != nil {
		return domain.Record{}, err
	}
	if uc.list.Full() {
		return domain.Record{}, domain.ErrEntryLimitReached
	}

	rec = domain.NewRecord(uc.idGen.Generate(), uc.today())
	if err := patch.apply(&rec); err != nil {
		return domain.Record{}, err
	}

	prev := uc.list.Records()
	if err := uc.list.Add(rec); err != nil {
		return domain.Record{}, err
	}

	if err := uc.commit(ctx, prev); err != nil {
		return domain.Record{}, err
	}

	uc.logger.Info().Str("record_id", rec.ID).Int("records", uc.list.Len()).Msg("record added")
	return rec, nil
}

// Update applies patch to a record. The period is re-clamped and the result
// persisted immediately.
func (uc *RecordUseCase) Update(ctx context.Context, id string, patch RecordPatch) (rec domain.Record, err error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	defer func() { uc.observe("update", err) }()

	if err := uc.ensureLoaded(ctx); err != nil {
		return domain.Record{}, err
	}

	rec, err = uc.list.Get(id)
	if err != nil {
		return domain.Record{}, err
	}

	if err := patch.apply(&rec); err != nil {
		return domain.Record{}, err
	}

	prev := uc.list.Records()
	if err := uc.list.Replace(rec); err != nil {
		return domain.Record{}, err
	}

	if err := uc.commit(ctx, prev); err != nil {
		return domain.Record{}, err
	}

	return rec, nil
}

// Remove deletes a record.
func (uc *RecordUseCase) Remove(ctx context.Context, id string) (err error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	defer func() { uc.observe("remove", err) }()

	if err := uc.ensureLoaded(ctx); err != nil {
		return err
	}

	prev := uc.list.Records()
	if err := uc.list.Remove(id); err != nil {
		return err
	}

	if err := uc.commit(ctx, prev); err != nil {
		return err
	}

	uc.logger.Info().Str("record_id", id).Int("records", uc.list.Len()).Msg("record removed")
	return nil
}

// Shift moves a record's period by months calendar months.
func (uc *RecordUseCase) Shift(ctx context.Context, id string, months int) (rec domain.Record, err error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	defer func() { uc.observe("shift", err) }()

	if err := uc.ensureLoaded(ctx); err != nil {
		return domain.Record{}, err
	}

	rec, err = uc.list.Get(id)
	if err != nil {
		return domain.Record{}, err
	}

	rec.Shift(months, uc.today())

	prev := uc.list.Records()
	if err := uc.list.Replace(rec); err != nil {
		return domain.Record{}, err
	}

	if err := uc.commit(ctx, prev); err != nil {
		return domain.Record{}, err
	}

	return rec, nil
}

// errorType maps errors to a low-cardinality metrics label.
func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrEntryLimitReached):
		return "limit_reached"
	case errors.Is(err, domain.ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrNoPrintableRecords):
		return "no_printable"
	case errors.Is(err, domain.ErrRenderingFailure):
		return "rendering"
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrFieldTooLong):
		return "validation"
	default:
		return "internal"
	}
}
