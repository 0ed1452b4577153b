package contract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bim-collab-backend/db"
	applicationstore "bim-collab-backend/lib/application/store"
	"bim-collab-backend/lib/contract/generator"
	contractstore "bim-collab-backend/lib/contract/store"
	pdfexport "bim-collab-backend/lib/export/pdf"
	filestorage "bim-collab-backend/lib/file-storage"
	"bim-collab-backend/lib/notification"
	companystore "bim-collab-backend/lib/profile/company-store"
	professionalstore "bim-collab-backend/lib/profile/professional-store"
	projectstore "bim-collab-backend/lib/project/store"
	"bim-collab-backend/models"
	contractapimodels "bim-collab-backend/models/api/contract"
	dbmodels "bim-collab-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	CreateDraft(applicationID string, overrides contractapimodels.DraftOverrides) (contractapimodels.ContractView, error)
	Generate(id string) (contractapimodels.ContractView, error)
	UpdateText(id string, data contractapimodels.UpdateTextData) (contractapimodels.ContractView, error)
	SendToReview(id string, data contractapimodels.SendToReviewData) (contractapimodels.ContractView, error)
	Approve(id string, data contractapimodels.ReviewDecisionData) (contractapimodels.ContractView, error)
	Reject(id string, data contractapimodels.ReviewDecisionData) (contractapimodels.ContractView, error)
	Archive(id string) (contractapimodels.ContractView, error)
	GetByID(id string) (contractapimodels.ContractView, error)
	List(status models.ContractStatus) ([]contractapimodels.ContractView, error)
	RenderPDF(ctx context.Context, id string) (fileName string, body []byte, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:             contractstore.NewInstance(db.DB),
		applicationStore:  applicationstore.NewInstance(db.DB),
		projectStore:      projectstore.NewInstance(db.DB),
		professionalStore: professionalstore.NewInstance(db.DB),
		companyStore:      companystore.NewInstance(db.DB),
		notifier:          notification.Instance,
		generator:         generator.Instance,
	}
}

type impl struct {
	store             contractstore.Provider
	applicationStore  applicationstore.Provider
	projectStore      projectstore.Provider
	professionalStore professionalstore.Provider
	companyStore      companystore.Provider
	notifier          notification.Provider
	generator         generator.Provider
}

// qualifyingStatuses are the application statuses an admin may pull a
// contract draft from.
var qualifyingStatuses = map[models.ApplicationStatus]bool{
	models.ApplicationStatusAccepted:          true,
	models.ApplicationStatusInterviewAccepted: true,
}

func (i impl) CreateDraft(applicationID string, overrides contractapimodels.DraftOverrides) (contractapimodels.ContractView, error) {
	var view contractapimodels.ContractView
	application, err := i.applicationStore.GetByID(applicationID)
	if err != nil {
		return view, err
	}
	if application == nil {
		return view, models.NewNotFoundError("application", applicationID)
	}
	if !qualifyingStatuses[application.Status] {
		return view, models.NewValidationError(
			fmt.Sprintf("application in status %q does not qualify for contract generation", application.Status))
	}
	existing, err := i.store.GetByApplicationID(applicationID)
	if err != nil {
		return view, err
	}
	if existing != nil {
		return view, models.NewValidationError("a contract for this application already exists")
	}
	project, err := i.projectStore.GetByID(application.ProjectID)
	if err != nil {
		return view, err
	}
	if project == nil {
		return view, models.NewNotFoundError("project", application.ProjectID)
	}
	professional, err := i.professionalStore.GetByID(application.ProfessionalID)
	if err != nil {
		return view, err
	}
	if professional == nil {
		return view, models.NewNotFoundError("professional profile", application.ProfessionalID)
	}
	company, err := i.companyStore.GetByID(project.CompanyID)
	if err != nil {
		return view, err
	}
	if company == nil {
		return view, models.NewNotFoundError("company profile", project.CompanyID)
	}
	rec := dbmodels.Contract{
		ApplicationID: applicationID,
		ProjectID:     application.ProjectID,
		ContractData:  buildDraft(*professional, *company, *project, overrides),
		Status:        models.ContractStatusDraft,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.WithError(err).WithField("application_id", applicationID).Error("failed to create contract draft")
		return view, err
	}
	return i.GetByID(id)
}

func (i impl) Generate(id string) (contractapimodels.ContractView, error) {
	var view contractapimodels.ContractView
	rec, err := i.getContract(id)
	if err != nil {
		return view, err
	}
	if !rec.Status.IsEditable() {
		return view, models.NewContractInvalidTransition(rec.Status, models.ContractStatusGenerated)
	}
	// the client validated the draft already, validate again before a legal
	// document is produced
	if err := validateDraft(rec.ContractData); err != nil {
		return view, err
	}
	result, err := i.generator.Generate(rec.ContractData)
	if err != nil {
		return view, err
	}
	now := time.Now()
	updMap := map[string]interface{}{
		"generated_text":    result.Text,
		"status":            models.ContractStatusGenerated,
		"ai_model":          generator.ModelName,
		"ai_prompt_version": generator.PromptVersion,
		"generated_at":      now,
		"word_count":        result.Report.WordCount,
		"article_count":     result.Report.ArticleCount,
	}
	if err := i.store.Update(id, updMap); err != nil {
		return view, err
	}
	log.
		WithField("contract_id", id).
		WithField("word_count", result.Report.WordCount).
		WithField("article_count", result.Report.ArticleCount).
		Info("contract text generated")
	return i.GetByID(id)
}

func (i impl) UpdateText(id string, data contractapimodels.UpdateTextData) (contractapimodels.ContractView, error) {
	var view contractapimodels.ContractView
	rec, err := i.getContract(id)
	if err != nil {
		return view, err
	}
	if !rec.Status.IsEditable() {
		return view, models.NewValidationError(
			fmt.Sprintf("contract in status %q is read-only", rec.Status))
	}
	if strings.TrimSpace(data.GeneratedText) == "" {
		return view, models.NewValidationError("contract text cannot be empty", "generated_text")
	}
	// an edit always demotes to DRAFT: the stored validation no longer
	// covers the new text; counts are refreshed from the same pass that
	// will re-validate it on send
	report := generator.Validate(data.GeneratedText)
	updMap := map[string]interface{}{
		"generated_text": data.GeneratedText,
		"status":         models.ContractStatusDraft,
		"word_count":     report.WordCount,
		"article_count":  report.ArticleCount,
	}
	if err := i.store.Update(id, updMap); err != nil {
		return view, err
	}
	return i.GetByID(id)
}

func (i impl) SendToReview(id string, data contractapimodels.SendToReviewData) (contractapimodels.ContractView, error) {
	var view contractapimodels.ContractView
	if !data.NotifyCompany && !data.NotifyProfessional {
		return view, models.NewValidationError("at least one recipient is required")
	}
	rec, err := i.getContract(id)
	if err != nil {
		return view, err
	}
	if !rec.Status.IsEditable() {
		return view, models.NewContractInvalidTransition(rec.Status, models.ContractStatusPendingReview)
	}
	// a draft may not leave DRAFT until its text passes content validation
	report := generator.Validate(rec.GeneratedText)
	if !report.OK() {
		return view, models.NewIncompleteDocumentError(report.Failures)
	}
	updMap := map[string]interface{}{
		"status": models.ContractStatusPendingReview,
	}
	if err := i.store.Update(id, updMap); err != nil {
		return view, err
	}
	i.notifyParties(*rec, data.NotifyCompany, data.NotifyProfessional,
		models.NotificationContractPendingReview,
		"Contratto in revisione",
		"Il contratto di collaborazione è pronto per la tua revisione.")
	return i.GetByID(id)
}

func (i impl) Approve(id string, data contractapimodels.ReviewDecisionData) (contractapimodels.ContractView, error) {
	return i.reviewDecision(id, data, models.ContractStatusApproved,
		models.NotificationContractApproved,
		"Contratto approvato",
		"Il contratto di collaborazione è stato approvato.")
}

func (i impl) Reject(id string, data contractapimodels.ReviewDecisionData) (contractapimodels.ContractView, error) {
	return i.reviewDecision(id, data, models.ContractStatusRejected,
		models.NotificationContractRejected,
		"Contratto rifiutato",
		"Il contratto di collaborazione è stato rifiutato e verrà rielaborato.")
}

func (i impl) reviewDecision(id string, data contractapimodels.ReviewDecisionData, target models.ContractStatus,
	notifyType models.NotificationType, title, message string) (contractapimodels.ContractView, error) {
	var view contractapimodels.ContractView
	rec, err := i.getContract(id)
	if err != nil {
		return view, err
	}
	if rec.Status != models.ContractStatusPendingReview {
		return view, models.NewContractInvalidTransition(rec.Status, target)
	}
	updMap := map[string]interface{}{
		"status": target,
	}
	if data.AdminNotes != "" {
		updMap["admin_notes"] = data.AdminNotes
	}
	if err := i.store.Update(id, updMap); err != nil {
		return view, err
	}
	log.WithField("contract_id", id).WithField("status", target).Info("contract review decision recorded")
	i.notifyParties(*rec, true, true, notifyType, title, message)
	return i.GetByID(id)
}

func (i impl) Archive(id string) (contractapimodels.ContractView, error) {
	var view contractapimodels.ContractView
	rec, err := i.getContract(id)
	if err != nil {
		return view, err
	}
	if rec.Status != models.ContractStatusApproved && rec.Status != models.ContractStatusRejected {
		return view, models.NewContractInvalidTransition(rec.Status, models.ContractStatusArchived)
	}
	if err := i.store.Update(id, map[string]interface{}{"status": models.ContractStatusArchived}); err != nil {
		return view, err
	}
	return i.GetByID(id)
}

func (i impl) GetByID(id string) (contractapimodels.ContractView, error) {
	rec, err := i.getContract(id)
	if err != nil {
		return contractapimodels.ContractView{}, err
	}
	return contractapimodels.Convert(*rec), nil
}

func (i impl) List(status models.ContractStatus) ([]contractapimodels.ContractView, error) {
	list, err := i.store.List(status)
	if err != nil {
		return nil, err
	}
	result := make([]contractapimodels.ContractView, 0, len(list))
	for _, rec := range list {
		result = append(result, contractapimodels.Convert(rec))
	}
	return result, nil
}

func (i impl) RenderPDF(ctx context.Context, id string) (string, []byte, error) {
	rec, err := i.getContract(id)
	if err != nil {
		return "", nil, err
	}
	if rec.Status != models.ContractStatusApproved && rec.Status != models.ContractStatusArchived {
		return "", nil, models.NewValidationError(
			fmt.Sprintf("contract in status %q cannot be exported", rec.Status))
	}
	body, err := pdfexport.RenderContract(*rec)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to render contract PDF")
	}
	fileName := fmt.Sprintf("contratto-%s.pdf", rec.ID)
	if err := filestorage.Instance.UploadContractPDF(ctx, rec.ID, body); err != nil {
		// archival is best-effort, the caller still gets the document
		log.WithError(err).WithField("contract_id", rec.ID).Warn("failed to archive contract PDF to S3")
	}
	return fileName, body, nil
}

func (i impl) getContract(id string) (*dbmodels.Contract, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("contract", id)
	}
	return rec, nil
}

// notifyParties fans the contract event out to the addressed sides, one
// notice per recipient. Failures are logged only: the pipeline transition
// already succeeded.
func (i impl) notifyParties(rec dbmodels.Contract, toCompany, toProfessional bool,
	notifyType models.NotificationType, title, message string) {
	logger := log.WithField("contract_id", rec.ID)
	application, err := i.applicationStore.GetByID(rec.ApplicationID)
	if err != nil || application == nil {
		logger.WithError(err).Error("failed to resolve contract application for notification")
		return
	}
	project, err := i.projectStore.GetByID(rec.ProjectID)
	if err != nil || project == nil {
		logger.WithError(err).Error("failed to resolve contract project for notification")
		return
	}
	linkTo := fmt.Sprintf("/dashboard/contratti/%s", rec.ID)
	if toProfessional {
		professional, err := i.professionalStore.GetByID(application.ProfessionalID)
		if err != nil || professional == nil {
			logger.WithError(err).Error("failed to resolve professional for contract notification")
		} else {
			i.send(professional.UserID, rec, project.Title, notifyType, title, message, linkTo)
		}
	}
	if toCompany {
		company, err := i.companyStore.GetByID(project.CompanyID)
		if err != nil || company == nil {
			logger.WithError(err).Error("failed to resolve company for contract notification")
		} else {
			i.send(company.UserID, rec, project.Title, notifyType, title, message, linkTo)
		}
	}
}

func (i impl) send(recipientID string, rec dbmodels.Contract, projectTitle string,
	notifyType models.NotificationType, title, message, linkTo string) {
	err := i.notifier.Dispatch(notification.SendParams{
		RecipientID:     recipientID,
		Type:            notifyType,
		Title:           title,
		Message:         message,
		LinkTo:          linkTo,
		ApplicationID:   rec.ApplicationID,
		RelatedEntityID: rec.ID,
		ProjectTitle:    projectTitle,
	})
	if err != nil {
		log.WithError(err).
			WithField("contract_id", rec.ID).
			WithField("recipient_id", recipientID).
			Error("contract notification dispatch failed")
	}
}
