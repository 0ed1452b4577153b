package contractstore

import (
	"bim-collab-backend/models"
	dbmodels "bim-collab-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Contract) (id string, err error)
	GetByID(id string) (rec *dbmodels.Contract, err error)
	GetByApplicationID(applicationID string) (rec *dbmodels.Contract, err error)
	Update(id string, updMap map[string]interface{}) error
	List(status models.ContractStatus) ([]dbmodels.Contract, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Contract) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Contract, error) {
	rec := dbmodels.Contract{}
	err := i.db.
		Model(&dbmodels.Contract{}).
		Where("id = ?", id).
		Preload("Application").
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

func (i impl) GetByApplicationID(applicationID string) (*dbmodels.Contract, error) {
	rec := dbmodels.Contract{}
	err := i.db.
		Model(&dbmodels.Contract{}).
		Where("application_id = ?", applicationID).
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
		Model(&dbmodels.Contract{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.NewNotFoundError("contract", id)
	}
	return nil
}

func (i impl) List(status models.ContractStatus) (list []dbmodels.Contract, err error) {
	list = []dbmodels.Contract{}
	tx := i.db.
		Model(dbmodels.Contract{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err = tx.
		Order("created_at desc").
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
