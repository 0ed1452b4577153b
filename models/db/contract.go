package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"bim-collab-backend/models"
)

type Contract struct {
	BaseModel
	ApplicationID string              `gorm:"type:varchar(36);index"`
	Application   *ProjectApplication `gorm:"foreignKey:ApplicationID"`
	ProjectID     string              `gorm:"type:varchar(36);index"`

	ContractData  ContractData `gorm:"type:jsonb"`
	GeneratedText string
	Status        models.ContractStatus `gorm:"type:varchar(50)"`

	AIModel         string `gorm:"type:varchar(100)"`
	AIPromptVersion string `gorm:"type:varchar(50)"`
	GeneratedAt     *time.Time

	WordCount    int
	ArticleCount int

	AdminNotes string
}

// ContractData is the structured draft assembled before text generation,
// stored as a single jsonb column.
type ContractData struct {
	Professional ContractProfessional `json:"professional"`
	Company      ContractCompany      `json:"company"`
	Project      ContractProject      `json:"project"`
	Payment      ContractPayment      `json:"payment"`
}

type ContractProfessional struct {
	FullName      string `json:"full_name"`
	VATNumber     string `json:"vat_number"`
	FiscalCode    string `json:"fiscal_code"`
	FiscalAddress string `json:"fiscal_address"`
}

type ContractCompany struct {
	Name                string `json:"name"`
	VATNumber           string `json:"vat_number"`
	LegalRepresentative string `json:"legal_representative"`
	LegalAddress        string `json:"legal_address"`
}

type ContractProject struct {
	Title        string     `json:"title"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Deliverables []string   `json:"deliverables"`
}

type ContractPayment struct {
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency"`
	Terms       string  `json:"terms"`
}

func (j ContractData) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ContractData) Scan(value any) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
