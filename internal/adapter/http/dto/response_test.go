package dto

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/iho/goreceipts/internal/domain"
)

func TestRecordFromDomain(t *testing.T) {
	r := domain.Record{
		ID:          "r1",
		Unit:        "3B",
		Tenant:      "Ana",
		Amount:      decimal.NewNullDecimal(decimal.RequireFromString("1500.5")),
		PeriodStart: civil.Date{Year: 2025, Month: 1, Day: 5},
		PeriodEnd:   civil.Date{Year: 2025, Month: 2, Day: 4},
	}

	v := RecordFromDomain(r)
	if v.Amount != "1500.50" || v.AmountDisplay != "$ 1,500.50 MXN" {
		t.Fatalf("unexpected amount fields: %q %q", v.Amount, v.AmountDisplay)
	}
	if v.PeriodStart != "2025-01-05" || v.PeriodStartDisplay != "05-Ene-2025" {
		t.Fatalf("unexpected start fields: %q %q", v.PeriodStart, v.PeriodStartDisplay)
	}
	if v.PeriodEndDisplay != "04-Feb-2025" {
		t.Fatalf("unexpected end display: %q", v.PeriodEndDisplay)
	}
	if !v.Printable {
		t.Fatalf("expected record to be printable")
	}
}

func TestRecordFromDomain_UnsetFields(t *testing.T) {
	v := RecordFromDomain(domain.Record{ID: "r2", Tenant: "Ana"})
	if v.Amount != "" || v.AmountDisplay != "" || v.PeriodStart != "" || v.PeriodStartDisplay != "" {
		t.Fatalf("expected unset fields to be blank, got %+v", v)
	}
	if v.Printable {
		t.Fatalf("incomplete record must not be printable")
	}
}

func TestRecordListFromDomain(t *testing.T) {
	resp := RecordListFromDomain([]domain.Record{
		{ID: "a"},
		{
			ID:          "b",
			Tenant:      "Luis",
			Amount:      decimal.NewNullDecimal(decimal.NewFromInt(100)),
			PeriodStart: civil.Date{Year: 2025, Month: 3, Day: 1},
			PeriodEnd:   civil.Date{Year: 2025, Month: 3, Day: 31},
		},
	})

	if resp.Count != 2 || resp.Printable != 1 || resp.Limit != domain.MaxRecords {
		t.Fatalf("unexpected list response: %+v", resp)
	}
	if resp.Records[0].ID != "a" || resp.Records[1].ID != "b" {
		t.Fatalf("expected order to be preserved")
	}
}
