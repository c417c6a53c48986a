package domain

import "errors"

// Storage-level outcomes that repositories translate driver errors into.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrWriteConflict  = errors.New("write conflict")
)
