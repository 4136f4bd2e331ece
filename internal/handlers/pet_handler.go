package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawpoint/grooming-scheduler/internal/httperr"
	"github.com/pawpoint/grooming-scheduler/internal/middleware"
	"github.com/pawpoint/grooming-scheduler/internal/models"
	"github.com/pawpoint/grooming-scheduler/internal/storage"
)

// ======================================================
// HANDLER
// ======================================================

type PetHandler struct {
	db    *gorm.DB
	media *storage.MediaStore
}

func NewPetHandler(db *gorm.DB, media *storage.MediaStore) *PetHandler {
	return &PetHandler{db: db, media: media}
}

// ======================================================
// REQUESTS
// ======================================================

type PetRequest struct {
	Name         string  `json:"name" binding:"required"`
	Breed        string  `json:"breed"`
	WeightKg     float64 `json:"weight_kg" binding:"required,gt=0"`
	Birthday     string  `json:"birthday"`
	Gender       string  `json:"gender" binding:"omitempty,oneof=M F"`
	IsSterilized bool    `json:"is_sterilized"`
	Notes        string  `json:"notes"`
}

// ======================================================
// CRUD (owner-scoped)
// ======================================================

func (h *PetHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var pets []models.Pet
	h.db.
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&pets)

	c.JSON(http.StatusOK, pets)
}

func (h *PetHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid pet data.")
		return
	}

	pet := models.Pet{
		OwnerID:      userID,
		Name:         req.Name,
		Breed:        req.Breed,
		WeightKg:     req.WeightKg,
		Gender:       req.Gender,
		IsSterilized: req.IsSterilized,
		Notes:        req.Notes,
	}

	if req.Birthday != "" {
		bd, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid birthday.")
			return
		}
		pet.Birthday = &bd
	}

	if err := h.db.Create(&pet).Error; err != nil {
		httperr.Internal(c, "failed_to_create_pet", "Could not save the pet.")
		return
	}

	c.JSON(http.StatusCreated, pet)
}

func (h *PetHandler) Update(c *gin.Context) {
	pet, ok := h.ownPet(c)
	if !ok {
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid pet data.")
		return
	}

	pet.Name = req.Name
	pet.Breed = req.Breed
	pet.WeightKg = req.WeightKg
	pet.Gender = req.Gender
	pet.IsSterilized = req.IsSterilized
	pet.Notes = req.Notes

	if req.Birthday != "" {
		bd, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid birthday.")
			return
		}
		pet.Birthday = &bd
	}

	if err := h.db.Save(pet).Error; err != nil {
		httperr.Internal(c, "failed_to_update_pet", "Could not save the pet.")
		return
	}

	c.JSON(http.StatusOK, pet)
}

// Delete removes the pet; its appointments go with it (cascade).
func (h *PetHandler) Delete(c *gin.Context) {
	pet, ok := h.ownPet(c)
	if !ok {
		return
	}

	if err := h.db.Delete(pet).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_pet", "Could not delete the pet.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ======================================================
// PHOTO
// ======================================================

func (h *PetHandler) UploadPhoto(c *gin.Context) {
	pet, ok := h.ownPet(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "A photo file is required.")
		return
	}
	defer file.Close()

	url, err := h.media.SaveImage(c.Request.Context(), "pets", file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The upload is not a valid image.")
		return
	}

	pet.PhotoURL = url
	if err := h.db.Save(pet).Error; err != nil {
		httperr.Internal(c, "failed_to_update_pet", "Could not save the pet.")
		return
	}

	c.JSON(http.StatusOK, pet)
}

// ======================================================
// HEALTH RECORDS
// ======================================================

type HealthRecordRequest struct {
	Date        string `json:"date" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (h *PetHandler) ListHealthRecords(c *gin.Context) {
	pet, ok := h.ownPet(c)
	if !ok {
		return
	}

	var records []models.PetHealthRecord
	h.db.
		Where("pet_id = ?", pet.ID).
		Order("date DESC").
		Find(&records)

	c.JSON(http.StatusOK, records)
}

func (h *PetHandler) CreateHealthRecord(c *gin.Context) {
	pet, ok := h.ownPet(c)
	if !ok {
		return
	}

	var req HealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid health record.")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid record date.")
		return
	}

	record := models.PetHealthRecord{
		PetID:       pet.ID,
		Date:        date,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := h.db.Create(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_create_record", "Could not save the record.")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ======================================================
// HELPERS
// ======================================================

// ownPet loads the :id pet and enforces ownership. Staff can reach any
// pet.
func (h *PetHandler) ownPet(c *gin.Context) (*models.Pet, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	isStaff := c.MustGet(middleware.ContextIsStaff).(bool)

	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_pet_id", "Invalid pet id.")
		return nil, false
	}

	var pet models.Pet
	if err := h.db.First(&pet, "id = ?", petID).Error; err != nil {
		httperr.NotFound(c, "pet_not_found", "Pet not found.")
		return nil, false
	}

	if !isStaff && pet.OwnerID != userID {
		httperr.NotFound(c, "pet_not_found", "Pet not found.")
		return nil, false
	}

	return &pet, true
}
