package applicationstore

import (
	"bim-collab-backend/models"
	dbmodels "bim-collab-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.ProjectApplication) (id string, err error)
	GetByID(id string) (rec *dbmodels.ProjectApplication, err error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateWithStatusGuard applies updMap only if the row still holds the
	// expected status. Returns the status found when the guard fails.
	UpdateWithStatusGuard(id string, expected models.ApplicationStatus, updMap map[string]interface{}) error
	// DeleteWithStatusGuard removes the row only if it still holds the
	// expected status. Returns the status found when the guard fails.
	DeleteWithStatusGuard(id string, expected models.ApplicationStatus) error
	// IsExist reports whether any application exists for the pair, rejected
	// ones included. A rejected application still blocks re-application.
	IsExist(projectID, professionalID string) (found bool, err error)
	List(filter dbmodels.ApplicationFilter) ([]dbmodels.ProjectApplication, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ProjectApplication) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ProjectApplication, error) {
	rec := dbmodels.ProjectApplication{}
	err := i.db.
		Model(&dbmodels.ProjectApplication{}).
		Where("id = ?", id).
		Preload("Project").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.ProjectApplication{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.NewNotFoundError("application", id)
	}
	return nil
}

func (i impl) UpdateWithStatusGuard(id string, expected models.ApplicationStatus, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.ProjectApplication{}).
		Where("id = ?", id).
		Where("status = ?", expected).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		// the guard failed, re-read to tell not-found from a raced status
		current, err := i.GetByID(id)
		if err != nil {
			return err
		}
		if current == nil {
			return models.NewNotFoundError("application", id)
		}
		return models.NewStaleStateError(expected, current.Status)
	}
	return nil
}

func (i impl) DeleteWithStatusGuard(id string, expected models.ApplicationStatus) error {
	tx := i.db.Delete(&dbmodels.ProjectApplication{}, "id = ? AND status = ?", id, expected)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		// the guard failed, re-read to tell not-found from a raced status
		current, err := i.GetByID(id)
		if err != nil {
			return err
		}
		if current == nil {
			return models.NewNotFoundError("application", id)
		}
		return models.NewStaleStateError(expected, current.Status)
	}
	return nil
}

func (i impl) IsExist(projectID, professionalID string) (found bool, err error) {
	var exists bool
	err = i.db.Model(&dbmodels.ProjectApplication{}).
		Select("count(*) > 0").
		Where("project_id = ?", projectID).
		Where("professional_id = ?", professionalID).
		Find(&exists).
		Error
	return exists, err
}

func (i impl) List(filter dbmodels.ApplicationFilter) (list []dbmodels.ProjectApplication, err error) {
	list = []dbmodels.ProjectApplication{}
	tx := i.db.
		Model(dbmodels.ProjectApplication{})
	if filter.ProjectID != "" {
		tx = tx.Where("project_id = ?", filter.ProjectID)
	}
	if filter.ProfessionalID != "" {
		tx = tx.Where("professional_id = ?", filter.ProfessionalID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	err = tx.
		Order("application_date desc").
		Preload("Project").
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
