package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawpoint/grooming-scheduler/internal/config"
	domain "github.com/pawpoint/grooming-scheduler/internal/domain/appointment"
	"github.com/pawpoint/grooming-scheduler/internal/dto"
	"github.com/pawpoint/grooming-scheduler/internal/httperr"
	"github.com/pawpoint/grooming-scheduler/internal/middleware"
	ucAppointment "github.com/pawpoint/grooming-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	slots    *ucAppointment.GetAvailableSlots
	create   *ucAppointment.CreateAppointment
	confirm  *ucAppointment.ConfirmAppointment
	complete *ucAppointment.CompleteAppointment
	cancel   *ucAppointment.CancelAppointment
	addNote  *ucAppointment.AddNote
	list     *ucAppointment.ListAppointments
	repo     domain.Repository
	sched    config.Scheduling
}

func NewAppointmentHandler(
	slots *ucAppointment.GetAvailableSlots,
	create *ucAppointment.CreateAppointment,
	confirm *ucAppointment.ConfirmAppointment,
	complete *ucAppointment.CompleteAppointment,
	cancel *ucAppointment.CancelAppointment,
	addNote *ucAppointment.AddNote,
	list *ucAppointment.ListAppointments,
	repo domain.Repository,
	sched config.Scheduling,
) *AppointmentHandler {
	return &AppointmentHandler{
		slots:    slots,
		create:   create,
		confirm:  confirm,
		complete: complete,
		cancel:   cancel,
		addNote:  addNote,
		list:     list,
		repo:     repo,
		sched:    sched,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PetID     string `json:"pet_id" binding:"required"`
	ServiceID string `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
}

type AddNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// ======================================================
// AVAILABLE SLOTS (public)
// ======================================================

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	dateStr := c.Query("date")
	serviceStr := c.Query("service_id")
	if dateStr == "" || serviceStr == "" {
		httperr.BadRequest(c, "missing_parameters", "date and service_id are required.")
		return
	}

	date, err := parseDate(h.sched.Location, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date format.")
		return
	}

	serviceID, err := uuid.Parse(serviceStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	free, err := h.slots.Execute(c.Request.Context(), ucAppointment.AvailableSlotsInput{
		Date:      date,
		ServiceID: serviceID,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	out := make([]dto.TimeSlotDTO, 0, len(free))
	for _, s := range free {
		out = append(out, dto.TimeSlotDTO{
			Start: s.Start.Format("15:04"),
			End:   s.End.Format("15:04"),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            dateStr,
		"service_id":      serviceStr,
		"available_slots": out,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment data.")
		return
	}

	petID, err1 := uuid.Parse(req.PetID)
	serviceID, err2 := uuid.Parse(req.ServiceID)
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid pet or service id.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		CustomerID: userID,
		PetID:      petID,
		ServiceID:  serviceID,
		Date:       req.Date,
		Time:       req.Time,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// LIST / DETAIL
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	actor := actorFrom(c)

	var f domain.ListFilter
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := parseDate(h.sched.Location, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date format.")
			return
		}
		f.Date = &date
	}
	f.Status = c.Query("status")

	aps, err := h.list.Execute(c.Request.Context(), actor, f)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not load appointments.")
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.NewAppointmentListDTO(&ap))
	}

	c.JSON(http.StatusOK, out)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	actor := actorFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	if !actor.IsStaff && ap.CustomerID != actor.ID {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	actor := actorFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), actor, id)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	actor := actorFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), actor, id)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// Cancel returns the cancelled appointment plus a warning that is
// non-null when the cancellation landed inside the notice window.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actor := actorFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	ap, warning, err := h.cancel.Execute(c.Request.Context(), actor, id)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	resp := gin.H{"appointment": ap}
	if warning != "" {
		resp["warning"] = warning
	} else {
		resp["warning"] = nil
	}

	c.JSON(http.StatusOK, resp)
}

// ======================================================
// NOTES
// ======================================================

func (h *AppointmentHandler) AddNote(c *gin.Context) {
	actor := actorFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Invalid appointment id.")
		return
	}

	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A note body is required.")
		return
	}

	note, err := h.addNote.Execute(c.Request.Context(), actor, id, req.Note)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}
