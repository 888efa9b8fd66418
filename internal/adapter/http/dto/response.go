package dto

import (
	"github.com/iho/goreceipts/internal/domain"
	"github.com/iho/goreceipts/internal/receipt"
)

// RecordView is a record as shown to users: raw values for editing plus
// display forms of the amount and period.
type RecordView struct {
	ID                 string `json:"id"`
	Unit               string `json:"unit"`
	Tenant             string `json:"tenant"`
	Amount             string `json:"amount"`
	AmountDisplay      string `json:"amount_display"`
	PeriodStart        string `json:"period_start"`
	PeriodEnd          string `json:"period_end"`
	PeriodStartDisplay string `json:"period_start_display"`
	PeriodEndDisplay   string `json:"period_end_display"`
	Printable          bool   `json:"printable"`
}

// RecordFromDomain converts a domain record to its view.
func RecordFromDomain(r domain.Record) *RecordView {
	v := &RecordView{
		ID:                 r.ID,
		Unit:               r.Unit,
		Tenant:             r.Tenant,
		PeriodStart:        domain.FormatDate(r.PeriodStart),
		PeriodEnd:          domain.FormatDate(r.PeriodEnd),
		PeriodStartDisplay: receipt.ShortDate(r.PeriodStart),
		PeriodEndDisplay:   receipt.ShortDate(r.PeriodEnd),
		Printable:          r.IsPrintable(),
	}
	if r.Amount.Valid {
		v.Amount = r.Amount.Decimal.StringFixed(2)
		v.AmountDisplay = receipt.FormatAmount(r.Amount.Decimal)
	}
	return v
}

// RecordsFromDomain converts domain records to views.
func RecordsFromDomain(records []domain.Record) []*RecordView {
	result := make([]*RecordView, len(records))
	for i, r := range records {
		result[i] = RecordFromDomain(r)
	}
	return result
}

// RecordListResponse is the full record list.
type RecordListResponse struct {
	Records   []*RecordView `json:"records"`
	Count     int           `json:"count"`
	Limit     int           `json:"limit"`
	Printable int           `json:"printable"`
}

// RecordListFromDomain builds the list response.
func RecordListFromDomain(records []domain.Record) *RecordListResponse {
	views := RecordsFromDomain(records)
	printable := 0
	for _, v := range views {
		if v.Printable {
			printable++
		}
	}
	return &RecordListResponse{
		Records:   views,
		Count:     len(views),
		Limit:     domain.MaxRecords,
		Printable: printable,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
