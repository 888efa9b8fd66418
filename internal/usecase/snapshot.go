package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iho/goreceipts/internal/domain"
)

// snapshotRecord is the persisted form of a record. Amounts and dates are
// strings, empty when unset.
type snapshotRecord struct {
	ID          string      `json:"id"`
	Unit        string      `json:"unit"`
	Tenant      string      `json:"tenant"`
	Amount      looseString `json:"amount"`
	PeriodStart looseString `json:"periodStart"`
	PeriodEnd   looseString `json:"periodEnd"`
}

// looseString accepts a string, a number or null. Anything else decodes as
// empty instead of failing the whole snapshot.
type looseString string

func (a *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = looseString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			*a = ""
			return nil
		}
		*a = looseString(n.String())
	}

	return nil
}

// EncodeSnapshot serializes records in order.
func EncodeSnapshot(records []domain.Record) ([]byte, error) {
	out := make([]snapshotRecord, len(records))
	for i, r := range records {
		out[i] = snapshotRecord{
			ID:          r.ID,
			Unit:        r.Unit,
			Tenant:      r.Tenant,
			PeriodStart: looseString(domain.FormatDate(r.PeriodStart)),
			PeriodEnd:   looseString(domain.FormatDate(r.PeriodEnd)),
		}
		if r.Amount.Valid {
			out[i].Amount = looseString(r.Amount.Decimal.StringFixed(2))
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot. A payload that is not a JSON array of
// records yields domain.ErrCorruptSnapshot; an unparsable amount or date only
// leaves that field unset.
func DecodeSnapshot(data []byte) ([]domain.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var in []snapshotRecord
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorruptSnapshot, err)
	}

	records := make([]domain.Record, 0, len(in))
	for _, s := range in {
		r := domain.Record{
			ID:     s.ID,
			Unit:   s.Unit,
			Tenant: s.Tenant,
		}

		if amount, err := domain.ParseAmount(string(s.Amount)); err == nil {
			r.Amount = amount
		}
		if d, err := domain.ParseDate(string(s.PeriodStart)); err == nil {
			r.PeriodStart = d
		}
		if d, err := domain.ParseDate(string(s.PeriodEnd)); err == nil {
			r.PeriodEnd = d
		}

		records = append(records, r)
	}

	return records, nil
}
