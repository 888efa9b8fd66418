package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iho/goreceipts/internal/usecase"
)

// ErrInvalidRequest is returned for request bodies that fail validation
// before reaching the use case.
var ErrInvalidRequest = errors.New("invalid request")

// Amount is a user-entered amount. It accepts a JSON string or number;
// an empty string clears the amount.
type Amount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or a number")
	}
	*a = Amount(n.String())
	return nil
}

// RecordRequest creates or edits a record. Omitted fields are left
// untouched; empty strings clear a field.
type RecordRequest struct {
	Unit        *string `json:"unit,omitempty"`
	Tenant      *string `json:"tenant,omitempty"`
	Amount      *Amount `json:"amount,omitempty"`
	PeriodStart *string `json:"period_start,omitempty"`
	PeriodEnd   *string `json:"period_end,omitempty"`
}

// ToPatch converts to use case input.
func (r *RecordRequest) ToPatch() usecase.RecordPatch {
	patch := usecase.RecordPatch{
		Unit:        r.Unit,
		Tenant:      r.Tenant,
		PeriodStart: r.PeriodStart,
		PeriodEnd:   r.PeriodEnd,
	}
	if r.Amount != nil {
		s := strings.TrimSpace(string(*r.Amount))
		patch.Amount = &s
	}
	return patch
}

// ShiftRequest moves a record's period by whole months.
type ShiftRequest struct {
	Months int `json:"months"`
}

// Validate checks the request.
func (r *ShiftRequest) Validate() error {
	if r.Months == 0 {
		return fmt.Errorf("%w: months must not be zero", ErrInvalidRequest)
	}
	return nil
}
