package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawpoint/grooming-scheduler/internal/httperr"
	"github.com/pawpoint/grooming-scheduler/internal/models"
)

type HolidayHandler struct {
	db *gorm.DB
}

func NewHolidayHandler(db *gorm.DB) *HolidayHandler {
	return &HolidayHandler{db: db}
}

type HolidayRequest struct {
	Name        string `json:"name" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Description string `json:"description"`
}

func (h *HolidayHandler) List(c *gin.Context) {
	var holidays []models.Holiday
	h.db.Order("start_date ASC").Find(&holidays)
	c.JSON(http.StatusOK, holidays)
}

func (h *HolidayHandler) Create(c *gin.Context) {
	req, start, end, ok := h.bind(c)
	if !ok {
		return
	}

	holiday := models.Holiday{
		Name:        req.Name,
		StartDate:   start,
		EndDate:     end,
		Description: req.Description,
	}

	if err := h.db.Create(&holiday).Error; err != nil {
		httperr.Internal(c, "failed_to_create_holiday", "Could not save the holiday.")
		return
	}

	actor := actorFrom(c)
	writeAudit(h.db, &actor.ID, "holiday_created", "holiday", &holiday.ID, nil)

	c.JSON(http.StatusCreated, holiday)
}

func (h *HolidayHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_holiday_id", "Invalid holiday id.")
		return
	}

	var holiday models.Holiday
	if err := h.db.First(&holiday, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "holiday_not_found", "Holiday not found.")
		return
	}

	req, start, end, ok := h.bind(c)
	if !ok {
		return
	}

	holiday.Name = req.Name
	holiday.StartDate = start
	holiday.EndDate = end
	holiday.Description = req.Description

	if err := h.db.Save(&holiday).Error; err != nil {
		httperr.Internal(c, "failed_to_update_holiday", "Could not save the holiday.")
		return
	}

	c.JSON(http.StatusOK, holiday)
}

func (h *HolidayHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_holiday_id", "Invalid holiday id.")
		return
	}

	if err := h.db.Delete(&models.Holiday{}, "id = ?", id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_holiday", "Could not delete the holiday.")
		return
	}

	actor := actorFrom(c)
	writeAudit(h.db, &actor.ID, "holiday_deleted", "holiday", &id, nil)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *HolidayHandler) bind(c *gin.Context) (*HolidayRequest, time.Time, time.Time, bool) {
	var req HolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid holiday data.")
		return nil, time.Time{}, time.Time{}, false
	}

	start, err1 := time.Parse("2006-01-02", req.StartDate)
	end, err2 := time.Parse("2006-01-02", req.EndDate)
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid holiday dates.")
		return nil, time.Time{}, time.Time{}, false
	}

	if start.After(end) {
		httperr.BadRequest(c, "invalid_date_range", "Start date must not be after end date.")
		return nil, time.Time{}, time.Time{}, false
	}

	return &req, start, end, true
}
