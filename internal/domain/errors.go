package domain

import "errors"

var (
	// Record list errors
	ErrEntryLimitReached = errors.New("entry limit reached")
	ErrRecordNotFound    = errors.New("record not found")
	ErrDuplicateRecordID = errors.New("duplicate record id")

	// Printing errors
	ErrNoPrintableRecords = errors.New("no printable records")
	ErrRenderingFailure   = errors.New("rendering failure")

	// Persistence errors
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrCorruptSnapshot  = errors.New("corrupt snapshot")
)
