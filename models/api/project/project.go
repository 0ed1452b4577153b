package projectapimodels

import (
	"time"

	dbmodels "bim-collab-backend/models/db"
)

type ProjectView struct {
	ID           string     `json:"id"`
	CompanyID    string     `json:"company_id"`
	CompanyName  string     `json:"company_name,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Deliverables []string   `json:"deliverables"`
	BimSoftware  []string   `json:"bim_software"`
	Budget       float64    `json:"budget"`
	CreatedAt    time.Time  `json:"created_at"`
}

func Convert(rec dbmodels.Project) ProjectView {
	view := ProjectView{
		ID:           rec.ID,
		CompanyID:    rec.CompanyID,
		Title:        rec.Title,
		Description:  rec.Description,
		Status:       string(rec.Status),
		StartDate:    rec.StartDate,
		EndDate:      rec.EndDate,
		Deliverables: []string(rec.Deliverables),
		BimSoftware:  []string(rec.BimSoftware),
		Budget:       rec.Budget,
		CreatedAt:    rec.CreatedAt,
	}
	if rec.Company != nil {
		view.CompanyName = rec.Company.Name
	}
	return view
}
