package services

import "errors"

// Domain failures surfaced to the HTTP layer. Routes translate these with
// errors.Is, so services wrap them with fmt.Errorf("%w: ...") to attach
// the room/service/date context the caller needs to act on.
var (
	ErrNotFound = errors.New("record not found")

	// invoice generation / payment
	ErrInvoiceAlreadyExists = errors.New("an invoice already exists for this room and billing period; edit the existing invoice instead of generating a new one")
	ErrMissingReading       = errors.New("missing meter reading for billing period")
	ErrNonMonotonicReading  = errors.New("current meter reading is lower than the previous one")
	ErrUnsupportedCharging  = errors.New("unsupported charging method")
	ErrAlreadyPaid          = errors.New("invoice is already paid")
	ErrCannotDeletePaid     = errors.New("a paid invoice cannot be deleted")
	ErrInvalidAmount        = errors.New("amount must not be negative")

	// meter readings
	ErrDuplicateReading = errors.New("a meter reading already exists for this period")
	ErrInvalidReading   = errors.New("reading is lower than the previous recorded reading")
	ErrReadingLocked    = errors.New("meter reading is referenced by a paid invoice and can no longer be edited")

	// pricing
	ErrPriceOverlap = errors.New("an existing price interval already covers this effective date")

	// contracts and tenancy
	ErrOverlappingContract       = errors.New("an existing contract for this room overlaps the requested period")
	ErrRoomNotAvailable          = errors.New("room is not available")
	ErrRoomFull                  = errors.New("room already has the maximum number of renters")
	ErrNoActiveContract          = errors.New("room has no active contract")
	ErrAlreadyTerminated         = errors.New("contract is already terminated")
	ErrAlreadyMovedOut           = errors.New("tenant has already moved out")
	ErrInvalidDate               = errors.New("invalid date")
	ErrDuplicateIdentityDocument = errors.New("a tenant with this identity document already exists")
)
