package v1

import (
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/uuid"
)

type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}
