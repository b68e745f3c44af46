package httperr

import "errors"

// Business error codes surfaced to callers verbatim.
const (
	CodeSlotUnavailable     = "slot_unavailable"
	CodeInvalidTransition   = "invalid_transition"
	CodeUnauthorized        = "unauthorized"
	CodeServiceNotFound     = "service_not_found"
	CodeClientNotFound      = "client_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeInvalidDateOrTime   = "invalid_date_or_time"
	CodeUnknownAction       = "unknown_action"
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

// BusinessCode returns the code of a wrapped BusinessError, or "".
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
