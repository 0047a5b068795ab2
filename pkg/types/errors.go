package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrCorruptDocument = errors.New("document is not a valid trading-post database")
	ErrUnknownSync     = errors.New("unknown sync strategy")
	ErrInvalidFileName = errors.New("invalid document file name")
)

// Record errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("invalid record ID")
	ErrInvalidData = errors.New("invalid record data")
)

// Field validation errors.
var (
	ErrInvalidName     = errors.New("name must not be empty")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
	ErrInvalidValue    = errors.New("value must not be negative")
	ErrInvalidWeight   = errors.New("weight must not be negative")
	ErrInvalidDate     = errors.New("invalid date")
)

// Transaction errors.
var (
	ErrInsufficientStock   = errors.New("not enough stock")
	ErrNonPositiveQuantity = errors.New("quantity must be greater than zero")
)

// Query errors.
var (
	ErrInvalidField = errors.New("unknown search field")
	ErrInvalidSort  = errors.New("unknown sort order")
)
