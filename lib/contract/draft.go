package contract

import (
	"strings"

	"bim-collab-backend/models"
	contractapimodels "bim-collab-backend/models/api/contract"
	dbmodels "bim-collab-backend/models/db"
)

// buildDraft assembles the contract data payload from the three parties'
// records plus admin-entered payment overrides.
func buildDraft(professional dbmodels.ProfessionalProfile, company dbmodels.CompanyProfile,
	project dbmodels.Project, overrides contractapimodels.DraftOverrides) dbmodels.ContractData {
	data := dbmodels.ContractData{
		Professional: dbmodels.ContractProfessional{
			FullName:      professional.GetFullName(),
			VATNumber:     professional.VATNumber,
			FiscalCode:    professional.FiscalCode,
			FiscalAddress: professional.FiscalAddress,
		},
		Company: dbmodels.ContractCompany{
			Name:                company.Name,
			VATNumber:           company.VATNumber,
			LegalRepresentative: company.LegalRepresentative,
			LegalAddress:        company.LegalAddress,
		},
		Project: dbmodels.ContractProject{
			Title:        project.Title,
			StartDate:    project.StartDate,
			EndDate:      project.EndDate,
			Deliverables: []string(project.Deliverables),
		},
		Payment: dbmodels.ContractPayment{
			TotalAmount: overrides.PaymentTotalAmount,
			Currency:    overrides.PaymentCurrency,
			Terms:       overrides.PaymentTerms,
		},
	}
	if data.Payment.TotalAmount == 0 {
		data.Payment.TotalAmount = project.Budget
	}
	if data.Payment.Currency == "" {
		data.Payment.Currency = "EUR"
	}
	return data
}

// validateDraft gates generation: every required field must be present before
// a legal document is produced. Validated again at generation time, a single
// validation layer is never trusted for a legal document.
func validateDraft(data dbmodels.ContractData) error {
	checks := []struct {
		field string
		empty bool
	}{
		{"professional.vatNumber", strings.TrimSpace(data.Professional.VATNumber) == ""},
		{"professional.fiscalCode", strings.TrimSpace(data.Professional.FiscalCode) == ""},
		{"professional.fiscalAddress", strings.TrimSpace(data.Professional.FiscalAddress) == ""},
		{"company.vatNumber", strings.TrimSpace(data.Company.VATNumber) == ""},
		{"company.legalRepresentative", strings.TrimSpace(data.Company.LegalRepresentative) == ""},
		{"company.legalAddress", strings.TrimSpace(data.Company.LegalAddress) == ""},
		{"project.startDate", data.Project.StartDate == nil || data.Project.StartDate.IsZero()},
		{"project.endDate", data.Project.EndDate == nil || data.Project.EndDate.IsZero()},
		{"project.deliverables", len(data.Project.Deliverables) == 0},
		{"payment.totalAmount", data.Payment.TotalAmount <= 0},
	}
	for _, check := range checks {
		if check.empty {
			return models.NewMissingFieldError(check.field)
		}
	}
	return nil
}
