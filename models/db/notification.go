package dbmodels

import (
	"time"

	"bim-collab-backend/models"
)

type UserNotification struct {
	BaseModel
	UserID  string                  `gorm:"type:varchar(36);index:idx_recipient"`
	Type    models.NotificationType `gorm:"type:varchar(100)"`
	Title   string                  `gorm:"type:varchar(255)"`
	Message string
	LinkTo  string `gorm:"type:varchar(512)"`
	IsRead  bool   `gorm:"default:false"`

	// event payload
	ApplicationID   string `gorm:"type:varchar(36);index"`
	RelatedEntityID string `gorm:"type:varchar(36)"`
	ProjectTitle    string `gorm:"type:varchar(255)"`
	ResponseMessage string
	ProposedDate    *time.Time
}
