package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawpoint/grooming-scheduler/internal/httperr"
	"github.com/pawpoint/grooming-scheduler/internal/httpresp"
	"github.com/pawpoint/grooming-scheduler/internal/models"
	"github.com/pawpoint/grooming-scheduler/internal/storage"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	db    *gorm.DB
	media *storage.MediaStore
}

func NewServiceHandler(db *gorm.DB, media *storage.MediaStore) *ServiceHandler {
	return &ServiceHandler{db: db, media: media}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	DurationMin int    `json:"duration_min" binding:"required,gt=0"`
	Active      *bool  `json:"active"`
}

type PriceEntry struct {
	DogSize string  `json:"dog_size" binding:"required,oneof=small medium large"`
	Price   float64 `json:"price" binding:"min=0"`
}

type SetPricesRequest struct {
	Prices []PriceEntry `json:"prices" binding:"required"`
}

// ======================================================
// PUBLIC READS
// ======================================================

func (h *ServiceHandler) ListActive(c *gin.Context) {
	var services []models.Service
	h.db.
		Preload("Prices").
		Where("active = ?", true).
		Order("name ASC").
		Find(&services)

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	svc, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, svc)
}

// ======================================================
// STAFF CRUD
// ======================================================

func (h *ServiceHandler) ListAll(c *gin.Context) {
	var services []models.Service
	h.db.
		Preload("Prices").
		Order("name ASC").
		Find(&services)

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}

	svc := models.Service{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Active:      true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not save the service.")
		return
	}

	actor := actorFrom(c)
	writeAudit(h.db, &actor.ID, "service_created", "service", &svc.ID, nil)

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	svc, ok := h.load(c)
	if !ok {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.DurationMin = req.DurationMin
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not save the service.")
		return
	}

	actor := actorFrom(c)
	writeAudit(h.db, &actor.ID, "service_updated", "service", &svc.ID, nil)

	httpresp.OK(c, svc)
}

// Delete refuses to remove a service that appointments still reference
// (protect semantics; the FK RESTRICT backs this up at the database).
func (h *ServiceHandler) Delete(c *gin.Context) {
	svc, ok := h.load(c)
	if !ok {
		return
	}

	var refs int64
	h.db.Model(&models.Appointment{}).Where("service_id = ?", svc.ID).Count(&refs)
	if refs > 0 {
		httperr.BadRequest(c, "service_in_use", "Appointments still reference this service.")
		return
	}

	if err := h.db.Delete(svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete the service.")
		return
	}

	actor := actorFrom(c)
	writeAudit(h.db, &actor.ID, "service_deleted", "service", &svc.ID, nil)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ======================================================
// PRICES
// ======================================================

// SetPrices replaces the per-size price table of a service.
func (h *ServiceHandler) SetPrices(c *gin.Context) {
	svc, ok := h.load(c)
	if !ok {
		return
	}

	var req SetPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid price data.")
		return
	}

	seen := map[string]bool{}
	for _, p := range req.Prices {
		if seen[p.DogSize] {
			httperr.BadRequest(c, "duplicate_size", "Each size may appear once.")
			return
		}
		seen[p.DogSize] = true
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", svc.ID).Delete(&models.ServicePrice{}).Error; err != nil {
			return err
		}

		for _, p := range req.Prices {
			price := models.ServicePrice{
				ServiceID: svc.ID,
				DogSize:   p.DogSize,
				Price:     p.Price,
			}
			if err := tx.Create(&price).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_prices", "Could not save the prices.")
		return
	}

	actor := actorFrom(c)
	writeAudit(h.db, &actor.ID, "service_prices_updated", "service", &svc.ID, req.Prices)

	h.db.Preload("Prices").First(svc, "id = ?", svc.ID)
	httpresp.OK(c, svc)
}

// ======================================================
// IMAGE
// ======================================================

func (h *ServiceHandler) UploadImage(c *gin.Context) {
	svc, ok := h.load(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return
	}
	defer file.Close()

	url, err := h.media.SaveImage(c.Request.Context(), "services", file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The upload is not a valid image.")
		return
	}

	svc.ImageURL = url
	if err := h.db.Save(svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not save the service.")
		return
	}

	httpresp.OK(c, svc)
}

// ======================================================
// HELPERS
// ======================================================

func (h *ServiceHandler) load(c *gin.Context) (*models.Service, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return nil, false
	}

	var svc models.Service
	if err := h.db.Preload("Prices").First(&svc, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return nil, false
	}

	return &svc, true
}
