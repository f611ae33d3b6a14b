package domain

import (
	"errors"
	"fmt"

	"posledger/internal/money"
)

// Error kinds. Every failure reported by the core matches one of these via errors.Is.
var (
	ErrInvalidAmount     = money.ErrInvalidAmount
	ErrInvalidArgument   = errors.New("posledger: invalid argument")
	ErrProductNotFound   = errors.New("posledger: product not found")
	ErrInsufficientStock = errors.New("posledger: insufficient stock")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("posledger: invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidArgument }

type NotFoundError struct {
	Code int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("posledger: product %d not found", e.Code)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrProductNotFound }

// StockError reports a request exceeding what is on hand.
type StockError struct {
	Code      int
	Name      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("posledger: insufficient stock for %s (code %d): requested %d, available %d",
		e.Name, e.Code, e.Requested, e.Available)
}

func (e *StockError) Is(target error) bool { return target == ErrInsufficientStock }

// IsUserError reports whether err is one of the recoverable kinds above.
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrInsufficientStock)
}
