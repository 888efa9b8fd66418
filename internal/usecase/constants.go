package usecase

import "time"

const (
	// DefaultStorageKey is the key the record list is saved under
	DefaultStorageKey = "receiptEntries"

	// DefaultFilename is the suggested name for the printed document
	DefaultFilename = "recibos_oficiales_alquiler.pdf"

	// DefaultStoreTimeout bounds a single snapshot load or save
	DefaultStoreTimeout = 5 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
