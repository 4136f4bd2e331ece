package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ===============================
// Business error codes
// ===============================

const (
	CodePastDate           = "past_date"
	CodeClosedDate         = "closed_date"
	CodeOutsideHours       = "outside_business_hours"
	CodePetOwnership       = "pet_ownership"
	CodePriceNotConfigured = "price_not_configured"
	CodeSlotConflict       = "slot_conflict"
	CodeInvalidTransition  = "invalid_transition"
	CodeForbidden          = "forbidden"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// IsUniqueViolation detects the Postgres unique-constraint violation
// raised when two bookings commit the same time window concurrently.
// The partial unique index on (date, start_time, end_time) is the
// final arbiter; this remaps its failure to the normal rejection path.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
