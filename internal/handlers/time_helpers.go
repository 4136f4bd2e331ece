package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/pawpoint/grooming-scheduler/internal/domain/appointment"
	"github.com/pawpoint/grooming-scheduler/internal/middleware"
)

// parseDate anchors a "2006-01-02" string to midnight in the business
// timezone.
func parseDate(loc *time.Location, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, loc)
}

// actorFrom builds the domain actor from the auth middleware context.
func actorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:      c.MustGet(middleware.ContextUserID).(uuid.UUID),
		IsStaff: c.MustGet(middleware.ContextIsStaff).(bool),
	}
}
