package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/pawpoint/grooming-scheduler/internal/httperr"
)

var businessMessages = map[string]string{
	httperr.CodePastDate:           "Cannot book a time in the past.",
	httperr.CodeClosedDate:         "The shop is closed on this date.",
	httperr.CodeOutsideHours:       "The requested time is outside business hours.",
	httperr.CodePetOwnership:       "You can only book appointments for your own pets.",
	httperr.CodePriceNotConfigured: "No price is configured for this service and pet size.",
	httperr.CodeSlotConflict:       "The requested slot is no longer available.",
	httperr.CodeInvalidTransition:  "The appointment cannot change to that status.",
	httperr.CodeForbidden:          "You are not allowed to perform this action.",
}

// writeBusiness maps a business rejection onto the HTTP surface.
// Anything that is not a business error is an internal failure.
func writeBusiness(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	msg := businessMessages[code]
	if msg == "" {
		msg = "Request rejected."
	}

	switch code {
	case httperr.CodeSlotConflict:
		httperr.Conflict(c, code, msg)
	case httperr.CodeForbidden:
		httperr.Forbidden(c, code, msg)
	case "appointment_not_found", "service_not_found", "pet_not_found":
		httperr.NotFound(c, code, "Not found.")
	default:
		httperr.BadRequest(c, code, msg)
	}
}
