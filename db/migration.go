package db

import (
	dbmodels "bim-collab-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.ProfessionalProfile{}); err != nil {
		return errors.Wrap(err, "failed to migrate ProfessionalProfile")
	}
	if err := DB.AutoMigrate(&dbmodels.CompanyProfile{}); err != nil {
		return errors.Wrap(err, "failed to migrate CompanyProfile")
	}
	if err := DB.AutoMigrate(&dbmodels.Project{}); err != nil {
		return errors.Wrap(err, "failed to migrate Project")
	}
	if err := DB.AutoMigrate(&dbmodels.ProjectApplication{}); err != nil {
		return errors.Wrap(err, "failed to migrate ProjectApplication")
	}
	if err := DB.AutoMigrate(&dbmodels.UserNotification{}); err != nil {
		return errors.Wrap(err, "failed to migrate UserNotification")
	}
	if err := DB.AutoMigrate(&dbmodels.Contract{}); err != nil {
		return errors.Wrap(err, "failed to migrate Contract")
	}
	log.Info("migrations finished")
	return nil
}
