package dbmodels

import (
	"fmt"

	"github.com/lib/pq"
)

type ProfessionalProfile struct {
	BaseModel
	UserID        string `gorm:"type:varchar(36);uniqueIndex"`
	FirstName     string `gorm:"type:varchar(255)"`
	LastName      string `gorm:"type:varchar(255)"`
	Email         string `gorm:"type:varchar(255)"`
	VATNumber     string `gorm:"type:varchar(50)"`
	FiscalCode    string `gorm:"type:varchar(50)"`
	FiscalAddress string `gorm:"type:varchar(512)"`
	Skills        pq.StringArray `gorm:"type:text[]"`
	HourlyRate    float64
}

func (p ProfessionalProfile) GetFullName() string {
	return fmt.Sprintf("%v %v", p.FirstName, p.LastName)
}

type CompanyProfile struct {
	BaseModel
	UserID              string `gorm:"type:varchar(36);uniqueIndex"`
	Name                string `gorm:"type:varchar(255)"`
	Email               string `gorm:"type:varchar(255)"`
	VATNumber           string `gorm:"type:varchar(50)"`
	LegalRepresentative string `gorm:"type:varchar(255)"`
	LegalAddress        string `gorm:"type:varchar(512)"`
}
