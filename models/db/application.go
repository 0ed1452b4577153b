package dbmodels

import (
	"time"

	"bim-collab-backend/models"

	"github.com/lib/pq"
)

type ProjectApplication struct {
	BaseModel
	ProjectID      string   `gorm:"type:varchar(36);index:idx_project_professional"`
	Project        *Project `gorm:"foreignKey:ProjectID"`
	ProfessionalID string   `gorm:"type:varchar(36);index:idx_project_professional"`
	Status         models.ApplicationStatus

	CoverLetterMessage string
	RelevantSkills     pq.StringArray `gorm:"type:text[]"`
	AvailabilityNotes  string

	// interview negotiation fields, populated only during the colloquio_* sub-flow
	InterviewProposalMessage    string
	ProposedInterviewDate       *time.Time
	ProfessionalResponseReason  string
	ProfessionalNewDateProposal *time.Time

	RejectionReason string

	ApplicationDate time.Time `gorm:"index"`
}

type ApplicationFilter struct {
	ProjectID      string `json:"project_id"`
	ProfessionalID string `json:"professional_id"`
	Status         string `json:"status"`
}
