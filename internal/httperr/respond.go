package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// fieldErrors is satisfied by validators.FieldErrors without importing it.
type fieldErrors interface {
	error
	Fields() map[string][]string
}

var messages = map[string]string{
	CodeSlotUnavailable:     "Intervalul ales nu mai este disponibil.",
	CodeInvalidTransition:   "Programarea nu mai poate fi modificată.",
	CodeUnauthorized:        "Neautorizat.",
	CodeServiceNotFound:     "Serviciul nu a fost găsit.",
	CodeClientNotFound:      "Clientul nu a fost găsit.",
	CodeAppointmentNotFound: "Programarea nu a fost găsită.",
	CodeInvalidDateOrTime:   "Data sau ora nu sunt valide.",
	CodeUnknownAction:       "Acțiune necunoscută.",
}

// Respond maps an error from the core to its HTTP representation.
func Respond(c *gin.Context, err error) {
	var fe fieldErrors
	if errors.As(err, &fe) {
		Invalid(c, fe.Fields())
		return
	}

	if code := BusinessCode(err); code != "" {
		msg := messages[code]
		switch code {
		case CodeUnauthorized:
			Forbidden(c, code, msg)
		case CodeSlotUnavailable, CodeInvalidTransition:
			Conflict(c, code, msg)
		case CodeServiceNotFound, CodeClientNotFound, CodeAppointmentNotFound:
			NotFound(c, code, msg)
		default:
			BadRequest(c, code, msg)
		}
		return
	}

	if IsNotFound(err) {
		NotFound(c, "not_found", "Resursa nu a fost găsită.")
		return
	}

	if IsStore(err) {
		Internal(c, "store_error", "A apărut o eroare.")
		return
	}

	Internal(c, "internal_error", "A apărut o eroare la server.")
}
