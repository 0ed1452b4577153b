package contractapimodels

import (
	"time"

	dbmodels "bim-collab-backend/models/db"
)

type ContractView struct {
	ID              string                `json:"id"`
	ApplicationID   string                `json:"application_id"`
	ProjectID       string                `json:"project_id"`
	ContractData    dbmodels.ContractData `json:"contract_data"`
	GeneratedText   string                `json:"generated_text,omitempty"`
	Status          string                `json:"status"`
	AIModel         string                `json:"ai_model,omitempty"`
	AIPromptVersion string                `json:"ai_prompt_version,omitempty"`
	GeneratedAt     *time.Time            `json:"generated_at,omitempty"`
	WordCount       int                   `json:"word_count"`
	ArticleCount    int                   `json:"article_count"`
	AdminNotes      string                `json:"admin_notes,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func Convert(rec dbmodels.Contract) ContractView {
	return ContractView{
		ID:              rec.ID,
		ApplicationID:   rec.ApplicationID,
		ProjectID:       rec.ProjectID,
		ContractData:    rec.ContractData,
		GeneratedText:   rec.GeneratedText,
		Status:          string(rec.Status),
		AIModel:         rec.AIModel,
		AIPromptVersion: rec.AIPromptVersion,
		GeneratedAt:     rec.GeneratedAt,
		WordCount:       rec.WordCount,
		ArticleCount:    rec.ArticleCount,
		AdminNotes:      rec.AdminNotes,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

type DraftOverrides struct {
	PaymentTotalAmount float64 `json:"payment_total_amount"`
	PaymentCurrency    string  `json:"payment_currency"`
	PaymentTerms       string  `json:"payment_terms"`
}

type UpdateTextData struct {
	GeneratedText string `json:"generated_text"`
}

type SendToReviewData struct {
	NotifyCompany      bool `json:"notify_company"`
	NotifyProfessional bool `json:"notify_professional"`
}

type ReviewDecisionData struct {
	AdminNotes string `json:"admin_notes"`
}
