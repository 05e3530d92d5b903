package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput wraps every field rule violation.
	ErrInvalidInput = errors.New("invalid input")

	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
	ErrNegativeCost      = errors.New("cost must not be negative")
	ErrInvalidMonths     = errors.New("months out of range")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrInvalidRole       = errors.New("invalid role")
)
