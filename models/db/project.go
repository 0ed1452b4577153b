package dbmodels

import (
	"time"

	"bim-collab-backend/models"

	"github.com/lib/pq"
)

type Project struct {
	BaseModel
	CompanyID    string          `gorm:"type:varchar(36);index:idx_project_company"`
	Company      *CompanyProfile `gorm:"foreignKey:CompanyID"`
	Title        string          `gorm:"type:varchar(255)"`
	Description  string
	Status       models.ProjectStatus `gorm:"type:varchar(50)"`
	StartDate    *time.Time
	EndDate      *time.Time
	Deliverables pq.StringArray `gorm:"type:text[]"`
	BimSoftware  pq.StringArray `gorm:"type:text[]"`
	Budget       float64
}
