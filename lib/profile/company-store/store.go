package companystore

import (
	dbmodels "bim-collab-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.CompanyProfile, err error)
	GetByUserID(userID string) (rec *dbmodels.CompanyProfile, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.CompanyProfile, error) {
	rec := dbmodels.CompanyProfile{}
	err := i.db.
		Model(&dbmodels.CompanyProfile{}).
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

func (i impl) GetByUserID(userID string) (*dbmodels.CompanyProfile, error) {
	rec := dbmodels.CompanyProfile{}
	err := i.db.
		Model(&dbmodels.CompanyProfile{}).
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
