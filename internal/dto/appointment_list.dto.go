package dto

import (
	"github.com/google/uuid"

	"github.com/pawpoint/grooming-scheduler/internal/models"
)

type TimeSlotDTO struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

type AppointmentListDTO struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	PetName     string    `json:"pet_name"`
	ServiceName string    `json:"service_name"`
	TotalPrice  float64   `json:"total_price"`
}

func NewAppointmentListDTO(ap *models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:          ap.ID,
		Date:        ap.Date.Format("2006-01-02"),
		StartTime:   ap.StartTime.Format("15:04"),
		EndTime:     ap.EndTime.Format("15:04"),
		Status:      ap.Status,
		PetName:     ap.Pet.Name,
		ServiceName: ap.Service.Name,
		TotalPrice:  ap.TotalPrice,
	}
}
