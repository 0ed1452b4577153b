package professionalstore

import (
	dbmodels "bim-collab-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.ProfessionalProfile, err error)
	GetByUserID(userID string) (rec *dbmodels.ProfessionalProfile, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.ProfessionalProfile, error) {
	rec := dbmodels.ProfessionalProfile{}
	err := i.db.
		Model(&dbmodels.ProfessionalProfile{}).
		Where("id = ?", id).
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

func (i impl) GetByUserID(userID string) (*dbmodels.ProfessionalProfile, error) {
	rec := dbmodels.ProfessionalProfile{}
	err := i.db.
		Model(&dbmodels.ProfessionalProfile{}).
		Where("user_id = ?", userID).
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
