package notificationstore

import (
	dbmodels "bim-collab-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.UserNotification) (id string, err error)
	List(userID string) ([]dbmodels.UserNotification, error)
	MarkRead(userID, id string) error
	UnreadCount(userID string) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.UserNotification) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(userID string) (list []dbmodels.UserNotification, err error) {
	list = []dbmodels.UserNotification{}
	err = i.db.
		Model(dbmodels.UserNotification{}).
		Where("user_id = ?", userID).
		Order("is_read, created_at desc").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) MarkRead(userID, id string) error {
	tx := i.db.
		Model(&dbmodels.UserNotification{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Update("is_read", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("notification not found")
	}
	return nil
}

func (i impl) UnreadCount(userID string) (count int64, err error) {
	err = i.db.
		Model(dbmodels.UserNotification{}).
		Where("user_id = ?", userID).
		Where("is_read = false").
		Count(&count).
		Error
	return count, err
}
