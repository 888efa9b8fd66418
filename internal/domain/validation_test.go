package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	t.Run("empty means unset", func(t *testing.T) {
		amount, err := ParseAmount("  ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if amount.Valid {
			t.Fatalf("expected unset amount")
		}
	})

	t.Run("rounds to cents", func(t *testing.T) {
		amount, err := ParseAmount("1500.456")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if amount.Decimal.String() != "1500.46" {
			t.Fatalf("expected 1500.46, got %s", amount.Decimal.String())
		}
	})

	t.Run("zero allowed", func(t *testing.T) {
		amount, err := ParseAmount("0")
		if err != nil || !amount.Valid {
			t.Fatalf("expected zero to be accepted, got %+v err=%v", amount, err)
		}
	})

	t.Run("negative rejected", func(t *testing.T) {
		if _, err := ParseAmount("-1"); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		if _, err := ParseAmount("mil pesos"); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("too large rejected", func(t *testing.T) {
		if _, err := ParseAmount("1000000000"); !errors.Is(err, ErrAmountTooLarge) {
			t.Fatalf("expected ErrAmountTooLarge, got %v", err)
		}
	})
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2025-02-28")
	if err != nil {
		t.Fatalf("expected valid date, got %v", err)
	}
	if d != date(2025, time.February, 28) {
		t.Fatalf("unexpected date %s", d)
	}

	d, err = ParseDate("")
	if err != nil || !IsZeroDate(d) {
		t.Fatalf("expected empty string to be unset, got %s err=%v", d, err)
	}

	for _, bad := range []string{"2025-02-30", "28/02/2025", "2025-13-01", "yesterday"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", bad, err)
		}
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	if got := FormatDate(date(2025, time.March, 9)); got != "2025-03-09" {
		t.Fatalf("expected 2025-03-09, got %s", got)
	}
	if got := FormatDate(date(0, 0, 0)); got != "" {
		t.Fatalf("expected empty string for unset date, got %q", got)
	}
}

func TestValidateTextField(t *testing.T) {
	t.Parallel()

	if err := ValidateTextField("tenant", "Ana López"); err != nil {
		t.Fatalf("expected valid field, got %v", err)
	}

	accented := strings.Repeat("ñ", MaxTextFieldLength)
	if err := ValidateTextField("tenant", accented); err != nil {
		t.Fatalf("expected %d accented characters to be valid, got %v", MaxTextFieldLength, err)
	}

	tooLong := strings.Repeat("x", MaxTextFieldLength+1)
	if err := ValidateTextField("tenant", tooLong); !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("expected ErrFieldTooLong, got %v", err)
	}
}

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	decomposed := "Jose\u0301 Nun\u0303ez"
	if got := NormalizeText("  " + decomposed + "\t"); got != "José Nuñez" {
		t.Fatalf("NormalizeText = %q, want %q", got, "José Nuñez")
	}
	if got := NormalizeText("   "); got != "" {
		t.Fatalf("NormalizeText(blank) = %q, want empty", got)
	}
}
