package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pawpoint/grooming-scheduler/internal/httperr"
	"github.com/pawpoint/grooming-scheduler/internal/models"
)

type BusinessHoursHandler struct {
	db *gorm.DB
}

func NewBusinessHoursHandler(db *gorm.DB) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db}
}

type WeekdayConfig struct {
	Weekday   int    `json:"weekday" binding:"required,min=1,max=7"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type BusinessHoursUpdateRequest struct {
	Days []WeekdayConfig `json:"days" binding:"required"`
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	var hours []models.BusinessHours
	if err := h.db.
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_business_hours", "Could not load business hours.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update replaces the weekday table. One row per weekday; open days
// need a valid open < close pair.
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid business hours.")
		return
	}

	seen := map[int]bool{}
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday may appear once.")
			return
		}
		seen[d.Weekday] = true

		if !d.IsOpen {
			continue
		}

		open, err1 := time.Parse("15:04", d.OpenTime)
		close, err2 := time.Parse("15:04", d.CloseTime)
		if err1 != nil || err2 != nil || !open.Before(close) {
			httperr.BadRequest(c, "invalid_time_range", "Open time must be before close time.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}

		for _, d := range req.Days {
			row := models.BusinessHours{
				Weekday:   d.Weekday,
				OpenTime:  d.OpenTime,
				CloseTime: d.CloseTime,
				IsOpen:    d.IsOpen,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_business_hours", "Could not save business hours.")
		return
	}

	actor := actorFrom(c)
	writeAudit(h.db, &actor.ID, "business_hours_updated", "business_hours", nil, req.Days)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
