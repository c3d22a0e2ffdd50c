package utils

import (
	"errors"

	"github.com/TungTV17/HostelFinder-sub001/services"

	"github.com/kataras/iris/v12"
)

type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

func JSONPage(ctx iris.Context, data interface{}, page, perPage int, total int64) {
	ctx.JSON(iris.Map{
		"data":  data,
		"meta":  PageMeta{Page: page, PerPage: perPage, Total: total},
		"links": iris.Map{},
	})
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"error": code, "message": message})
}

// HandleDomainError maps engine failures onto HTTP statuses. Anything not
// in the taxonomy is a storage-level failure and comes back as a plain 500
// without leaking internals.
func HandleDomainError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		JSONError(ctx, iris.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, services.ErrInvoiceAlreadyExists),
		errors.Is(err, services.ErrDuplicateReading),
		errors.Is(err, services.ErrDuplicateIdentityDocument),
		errors.Is(err, services.ErrPriceOverlap),
		errors.Is(err, services.ErrOverlappingContract),
		errors.Is(err, services.ErrAlreadyPaid),
		errors.Is(err, services.ErrCannotDeletePaid),
		errors.Is(err, services.ErrAlreadyTerminated),
		errors.Is(err, services.ErrAlreadyMovedOut),
		errors.Is(err, services.ErrReadingLocked),
		errors.Is(err, services.ErrRoomFull),
		errors.Is(err, services.ErrRoomNotAvailable),
		errors.Is(err, services.ErrNoActiveContract):
		JSONError(ctx, iris.StatusConflict, "conflict", err.Error())
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidReading),
		errors.Is(err, services.ErrNonMonotonicReading),
		errors.Is(err, services.ErrMissingReading),
		errors.Is(err, services.ErrUnsupportedCharging):
		JSONError(ctx, iris.StatusUnprocessableEntity, "unprocessable", err.Error())
	default:
		JSONError(ctx, iris.StatusInternalServerError, "internal", "an unexpected error occurred")
	}
}
