package handlers

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawpoint/grooming-scheduler/internal/models"
)

func writeAudit(
	db *gorm.DB,
	actorID *uuid.UUID,
	action string,
	entity string,
	entityID *uuid.UUID,
	meta any,
) {

	var payload string
	if meta != nil {
		if b, err := json.Marshal(meta); err == nil {
			payload = string(b)
		}
	}

	row := models.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: payload,
	}

	db.Create(&row)
}
