package domain

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// MaxRecords is the maximum number of records a list can hold.
const MaxRecords = 30

// Record is one billable rent entry.
type Record struct {
	ID          string
	Unit        string
	Tenant      string
	Amount      decimal.NullDecimal
	PeriodStart civil.Date
	PeriodEnd   civil.Date
}

// NewRecord creates a record whose period covers the month containing today.
func NewRecord(id string, today civil.Date) Record {
	start, end := DefaultPeriod(today)
	return Record{
		ID:          id,
		PeriodStart: start,
		PeriodEnd:   end,
	}
}

// IsPrintable reports whether the record has a tenant, an amount and both
// period boundaries.
func (r Record) IsPrintable() bool {
	return strings.TrimSpace(r.Tenant) != "" &&
		r.Amount.Valid &&
		!IsZeroDate(r.PeriodStart) &&
		!IsZeroDate(r.PeriodEnd)
}

// NormalizePeriod re-applies the period clamp. It returns true when the end
// date changed, in which case the caller must persist the record.
func (r *Record) NormalizePeriod() bool {
	if IsZeroDate(r.PeriodStart) || IsZeroDate(r.PeriodEnd) {
		return false
	}
	end := ClampPeriod(r.PeriodStart, r.PeriodEnd)
	if end == r.PeriodEnd {
		return false
	}
	r.PeriodEnd = end
	return true
}

// Shift moves the record's period by monthOffset months. An unset start is
// treated as the first day of today's month.
func (r *Record) Shift(monthOffset int, today civil.Date) {
	base := r.PeriodStart
	if IsZeroDate(base) {
		base, _ = DefaultPeriod(today)
	}
	r.PeriodStart, r.PeriodEnd = ShiftPeriod(base, monthOffset)
}

// RecordList is an ordered, bounded list of records. Insertion order is
// display order and print order.
type RecordList struct {
	records []Record
}

// NewRecordList builds a list from records, keeping the first occurrence of
// each id and at most MaxRecords entries.
func NewRecordList(records []Record) *RecordList {
	l := &RecordList{records: make([]Record, 0, len(records))}
	for _, r := range records {
		if len(l.records) >= MaxRecords {
			break
		}
		if _, ok := l.index(r.ID); ok || r.ID == "" {
			continue
		}
		l.records = append(l.records, r)
	}
	return l
}

// Len returns the number of records.
func (l *RecordList) Len() int {
	return len(l.records)
}

// Full reports whether the list has reached MaxRecords.
func (l *RecordList) Full() bool {
	return len(l.records) >= MaxRecords
}

// Records returns a copy of the records in order.
func (l *RecordList) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Get returns the record with the given id.
func (l *RecordList) Get(id string) (Record, error) {
	i, ok := l.index(id)
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return l.records[i], nil
}

// Add appends a record.
func (l *RecordList) Add(r Record) error {
	if l.Full() {
		return ErrEntryLimitReached
	}
	if _, ok := l.index(r.ID); ok {
		return ErrDuplicateRecordID
	}
	l.records = append(l.records, r)
	return nil
}

// Replace overwrites the record with the same id, keeping its position.
func (l *RecordList) Replace(r Record) error {
	i, ok := l.index(r.ID)
	if !ok {
		return ErrRecordNotFound
	}
	l.records[i] = r
	return nil
}

// Remove deletes the record with the given id.
func (l *RecordList) Remove(id string) error {
	i, ok := l.index(id)
	if !ok {
		return ErrRecordNotFound
	}
	l.records = append(l.records[:i], l.records[i+1:]...)
	return nil
}

func (l *RecordList) index(id string) (int, bool) {
	for i := range l.records {
		if l.records[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
