package notification

import (
	"time"

	"bim-collab-backend/db"
	notificationstore "bim-collab-backend/lib/notification/store"
	companystore "bim-collab-backend/lib/profile/company-store"
	professionalstore "bim-collab-backend/lib/profile/professional-store"
	"bim-collab-backend/lib/smtp"
	"bim-collab-backend/models"
	notificationapimodels "bim-collab-backend/models/api/notification"
	dbmodels "bim-collab-backend/models/db"

	log "github.com/sirupsen/logrus"
)

// SendParams addresses a single workflow event to one recipient.
type SendParams struct {
	RecipientID     string
	Type            models.NotificationType
	Title           string
	Message         string
	LinkTo          string
	ApplicationID   string
	RelatedEntityID string
	ProjectTitle    string
	ResponseMessage string
	ProposedDate    *time.Time
}

type Provider interface {
	// Dispatch creates exactly one unread notice. No deduplication is done,
	// each transition is expected to call it once.
	Dispatch(params SendParams) error
	Feed(userID string) ([]notificationapimodels.FeedGroup, error)
	MarkRead(userID, id string) error
	UnreadCount(userID string) (int64, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:             notificationstore.NewInstance(db.DB),
		professionalStore: professionalstore.NewInstance(db.DB),
		companyStore:      companystore.NewInstance(db.DB),
	}
}

type impl struct {
	store             notificationstore.Provider
	professionalStore professionalstore.Provider
	companyStore      companystore.Provider
}

func (i impl) Dispatch(params SendParams) error {
	logger := log.
		WithField("recipient_id", params.RecipientID).
		WithField("notification_type", params.Type)
	rec := dbmodels.UserNotification{
		UserID:          params.RecipientID,
		Type:            params.Type,
		Title:           params.Title,
		Message:         params.Message,
		LinkTo:          params.LinkTo,
		IsRead:          false,
		ApplicationID:   params.ApplicationID,
		RelatedEntityID: params.RelatedEntityID,
		ProjectTitle:    params.ProjectTitle,
		ResponseMessage: params.ResponseMessage,
		ProposedDate:    params.ProposedDate,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to create notification")
		return err
	}
	logger.WithField("notification_id", id).Info("notification dispatched")
	i.mirrorToEmail(params)
	return nil
}

// mirrorToEmail is best-effort, a mail failure never fails the dispatch.
func (i impl) mirrorToEmail(params SendParams) {
	logger := log.WithField("recipient_id", params.RecipientID)
	email := i.resolveEmail(params.RecipientID)
	if email == "" {
		return
	}
	if err := smtp.Instance.SendEMail(email, params.Message, params.Title); err != nil {
		logger.WithError(err).Warn("failed to mirror notification to email")
	}
}

func (i impl) resolveEmail(userID string) string {
	professional, err := i.professionalStore.GetByUserID(userID)
	if err == nil && professional != nil {
		return professional.Email
	}
	company, err := i.companyStore.GetByUserID(userID)
	if err == nil && company != nil {
		return company.Email
	}
	return ""
}

func (i impl) Feed(userID string) ([]notificationapimodels.FeedGroup, error) {
	list, err := i.store.List(userID)
	if err != nil {
		return nil, err
	}
	groupIdx := map[string]int{}
	groups := make([]notificationapimodels.FeedGroup, 0)
	for _, rec := range list {
		title := rec.ProjectTitle
		if title == "" {
			title = "Altro"
		}
		idx, exist := groupIdx[title]
		if !exist {
			idx = len(groups)
			groupIdx[title] = idx
			groups = append(groups, notificationapimodels.FeedGroup{ProjectTitle: title})
		}
		groups[idx].Notifications = append(groups[idx].Notifications, notificationapimodels.Convert(rec))
	}
	return groups, nil
}

func (i impl) MarkRead(userID, id string) error {
	return i.store.MarkRead(userID, id)
}

func (i impl) UnreadCount(userID string) (int64, error) {
	return i.store.UnreadCount(userID)
}
