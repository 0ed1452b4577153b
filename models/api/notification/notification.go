package notificationapimodels

import (
	"time"

	dbmodels "bim-collab-backend/models/db"
)

type NotificationView struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	LinkTo          string     `json:"link_to,omitempty"`
	IsRead          bool       `json:"is_read"`
	ApplicationID   string     `json:"application_id,omitempty"`
	RelatedEntityID string     `json:"related_entity_id,omitempty"`
	ProjectTitle    string     `json:"project_title,omitempty"`
	ResponseMessage string     `json:"response_message,omitempty"`
	ProposedDate    *time.Time `json:"proposed_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func Convert(rec dbmodels.UserNotification) NotificationView {
	return NotificationView{
		ID:              rec.ID,
		Type:            string(rec.Type),
		Title:           rec.Title,
		Message:         rec.Message,
		LinkTo:          rec.LinkTo,
		IsRead:          rec.IsRead,
		ApplicationID:   rec.ApplicationID,
		RelatedEntityID: rec.RelatedEntityID,
		ProjectTitle:    rec.ProjectTitle,
		ResponseMessage: rec.ResponseMessage,
		ProposedDate:    rec.ProposedDate,
		CreatedAt:       rec.CreatedAt,
	}
}

// FeedGroup is the presentation grouping of the feed, one bucket per project.
type FeedGroup struct {
	ProjectTitle  string             `json:"project_title"`
	Notifications []NotificationView `json:"notifications"`
}
