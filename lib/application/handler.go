package application

import (
	"fmt"
	"strings"
	"time"

	"bim-collab-backend/db"
	applicationstore "bim-collab-backend/lib/application/store"
	"bim-collab-backend/lib/notification"
	companystore "bim-collab-backend/lib/profile/company-store"
	professionalstore "bim-collab-backend/lib/profile/professional-store"
	projectstore "bim-collab-backend/lib/project/store"
	"bim-collab-backend/models"
	applicationapimodels "bim-collab-backend/models/api/application"
	dbmodels "bim-collab-backend/models/db"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Submit(professionalID string, data applicationapimodels.SubmitData) (applicationapimodels.ApplicationView, error)
	Withdraw(professionalID, id string) error
	StartReview(companyID, id string) (applicationapimodels.ApplicationView, error)
	Preselect(companyID, id string) (applicationapimodels.ApplicationView, error)
	Accept(companyID, id string) (applicationapimodels.ApplicationView, error)
	Reject(companyID, id string, data applicationapimodels.RejectData) (applicationapimodels.ApplicationView, error)
	ProposeInterview(companyID, id string, data applicationapimodels.InterviewProposalData) (applicationapimodels.ApplicationView, error)
	AcceptInterview(professionalID, id string, data applicationapimodels.InterviewAcceptData) (applicationapimodels.ApplicationView, error)
	DeclineInterview(professionalID, id string, data applicationapimodels.InterviewDeclineData) (applicationapimodels.ApplicationView, error)
	RescheduleInterview(professionalID, id string, data applicationapimodels.InterviewRescheduleData) (applicationapimodels.ApplicationView, error)
	GetByID(id string) (applicationapimodels.ApplicationView, error)
	List(filter dbmodels.ApplicationFilter) ([]applicationapimodels.ApplicationView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:             applicationstore.NewInstance(db.DB),
		projectStore:      projectstore.NewInstance(db.DB),
		professionalStore: professionalstore.NewInstance(db.DB),
		companyStore:      companystore.NewInstance(db.DB),
		notifier:          notification.Instance,
	}
}

type impl struct {
	store             applicationstore.Provider
	projectStore      projectstore.Provider
	professionalStore professionalstore.Provider
	companyStore      companystore.Provider
	notifier          notification.Provider
}

// notice describes the single notification produced by a transition,
// addressed to the counterparty of the acting side.
type notice struct {
	notifyType      models.NotificationType
	title           string
	message         string
	responseMessage string
	proposedDate    *time.Time
	linkTo          string
}

func (i impl) Submit(professionalID string, data applicationapimodels.SubmitData) (applicationapimodels.ApplicationView, error) {
	var view applicationapimodels.ApplicationView
	if err := data.Validate(); err != nil {
		return view, err
	}
	project, err := i.getProject(data.ProjectID)
	if err != nil {
		return view, err
	}
	if project.Status != models.ProjectStatusOpen {
		return view, models.NewValidationError("project is not accepting applications", "project_id")
	}
	// at most one application per (project, professional); a rejected
	// application still exists and blocks re-application
	exists, err := i.store.IsExist(data.ProjectID, professionalID)
	if err != nil {
		return view, err
	}
	if exists {
		return view, models.NewValidationError("an application for this project already exists", "project_id")
	}
	rec := dbmodels.ProjectApplication{
		ProjectID:          data.ProjectID,
		ProfessionalID:     professionalID,
		Status:             models.ApplicationStatusSubmitted,
		CoverLetterMessage: data.CoverLetterMessage,
		RelevantSkills:     pq.StringArray(data.RelevantSkills),
		AvailabilityNotes:  data.AvailabilityNotes,
		ApplicationDate:    time.Now(),
	}
	id, err := i.store.Create(rec)
	if err != nil {
		log.WithError(err).WithField("project_id", data.ProjectID).Error("failed to create application")
		return view, err
	}
	created, err := i.store.GetByID(id)
	if err != nil || created == nil {
		return view, errors.Wrap(err, "failed to load created application")
	}
	view = applicationapimodels.Convert(*created)
	dispatchErr := i.notifyCompany(project, *created, notice{
		notifyType: models.NotificationApplicationSubmitted,
		title:      "Nuova candidatura",
		message:    fmt.Sprintf("Hai ricevuto una nuova candidatura per il progetto \"%s\".", project.Title),
	})
	if dispatchErr != nil {
		return view, dispatchErr
	}
	return view, nil
}

func (i impl) Withdraw(professionalID, id string) error {
	rec, err := i.getOwnApplication(professionalID, id)
	if err != nil {
		return err
	}
	// rejection is terminal and informative, the document stays
	if rec.Status == models.ApplicationStatusRejected {
		return models.NewValidationError("a rejected application cannot be withdrawn")
	}
	project, err := i.getProject(rec.ProjectID)
	if err != nil {
		return err
	}
	// compare-and-swap on the status read above: a company decision landing
	// in between turns the delete into a stale-state failure instead of
	// silently wiping the decided document
	if err := i.store.DeleteWithStatusGuard(id, rec.Status); err != nil {
		return err
	}
	return i.notifyCompany(project, *rec, notice{
		notifyType: models.NotificationApplicationWithdrawn,
		title:      "Candidatura ritirata",
		message:    fmt.Sprintf("Il professionista ha ritirato la propria candidatura per il progetto \"%s\".", project.Title),
	})
}

func (i impl) StartReview(companyID, id string) (applicationapimodels.ApplicationView, error) {
	return i.companyTransition(companyID, id, models.ApplicationStatusInReview, nil,
		func(project dbmodels.Project) notice {
			return notice{
				notifyType: models.NotificationApplicationInReview,
				title:      "Candidatura in revisione",
				message:    fmt.Sprintf("La tua candidatura per il progetto \"%s\" è in fase di revisione.", project.Title),
			}
		})
}

func (i impl) Preselect(companyID, id string) (applicationapimodels.ApplicationView, error) {
	return i.companyTransition(companyID, id, models.ApplicationStatusPreselected, nil,
		func(project dbmodels.Project) notice {
			return notice{
				notifyType: models.NotificationApplicationPreselect,
				title:      "Candidatura preselezionata",
				message:    fmt.Sprintf("Sei stato preselezionato per il progetto \"%s\". L'azienda potrebbe proporti un colloquio.", project.Title),
			}
		})
}

func (i impl) Accept(companyID, id string) (applicationapimodels.ApplicationView, error) {
	return i.companyTransition(companyID, id, models.ApplicationStatusAccepted, nil,
		func(project dbmodels.Project) notice {
			return notice{
				notifyType: models.NotificationApplicationAccepted,
				title:      "Candidatura accettata",
				message:    fmt.Sprintf("Congratulazioni! La tua candidatura per il progetto \"%s\" è stata accettata.", project.Title),
			}
		})
}

func (i impl) Reject(companyID, id string, data applicationapimodels.RejectData) (applicationapimodels.ApplicationView, error) {
	var view applicationapimodels.ApplicationView
	reason := strings.TrimSpace(data.Reason)
	if len(reason) < models.MinReasonLength {
		return view, models.NewValidationError(
			fmt.Sprintf("rejection reason must be at least %d characters", models.MinReasonLength),
			"rejection_reason")
	}
	updMap := map[string]interface{}{
		"rejection_reason": reason,
	}
	return i.companyTransition(companyID, id, models.ApplicationStatusRejected, updMap,
		func(project dbmodels.Project) notice {
			return notice{
				notifyType:      models.NotificationApplicationRejected,
				title:           "Candidatura rifiutata",
				message:         fmt.Sprintf("La tua candidatura per il progetto \"%s\" è stata rifiutata.", project.Title),
				responseMessage: reason,
			}
		})
}

func (i impl) ProposeInterview(companyID, id string, data applicationapimodels.InterviewProposalData) (applicationapimodels.ApplicationView, error) {
	var view applicationapimodels.ApplicationView
	if err := data.Validate(); err != nil {
		return view, err
	}
	proposedDate := data.Date
	updMap := map[string]interface{}{
		"interview_proposal_message": data.Message,
		"proposed_interview_date":    proposedDate,
		// a fresh proposal resets any previous professional response
		"professional_response_reason":   "",
		"professional_new_date_proposal": nil,
	}
	return i.companyTransition(companyID, id, models.ApplicationStatusInterviewProposed, updMap,
		func(project dbmodels.Project) notice {
			return notice{
				notifyType:      models.NotificationInterviewProposed,
				title:           "Proposta di colloquio",
				message:         fmt.Sprintf("L'azienda ti ha proposto un colloquio per il progetto \"%s\": %s", project.Title, data.Message),
				responseMessage: data.Message,
				proposedDate:    &proposedDate,
			}
		})
}

func (i impl) AcceptInterview(professionalID, id string, data applicationapimodels.InterviewAcceptData) (applicationapimodels.ApplicationView, error) {
	updMap := map[string]interface{}{}
	if data.CounterDate != nil {
		updMap["professional_new_date_proposal"] = *data.CounterDate
	}
	return i.professionalResponse(professionalID, id, models.ApplicationStatusInterviewAccepted, updMap,
		func(project dbmodels.Project) notice {
			message := fmt.Sprintf("Il professionista ha ACCETTATO il colloquio per il progetto \"%s\".", project.Title)
			if data.CounterDate != nil {
				message = fmt.Sprintf("%s Data alternativa proposta: %s.", message, data.CounterDate.Format("02/01/2006 15:04"))
			}
			if data.Message != "" {
				message = fmt.Sprintf("%s Messaggio: %s", message, data.Message)
			}
			return notice{
				notifyType:      models.NotificationInterviewAccepted,
				title:           "Colloquio accettato",
				message:         message,
				responseMessage: data.Message,
				proposedDate:    data.CounterDate,
			}
		})
}

func (i impl) DeclineInterview(professionalID, id string, data applicationapimodels.InterviewDeclineData) (applicationapimodels.ApplicationView, error) {
	var view applicationapimodels.ApplicationView
	reason := strings.TrimSpace(data.Reason)
	if len(reason) < models.MinReasonLength {
		return view, models.NewValidationError(
			fmt.Sprintf("interview decline reason must be at least %d characters", models.MinReasonLength),
			"professional_response_reason")
	}
	updMap := map[string]interface{}{
		"professional_response_reason": reason,
	}
	// declining the interview does not reject the candidacy, the company
	// keeps the accept/reject decision
	return i.professionalResponse(professionalID, id, models.ApplicationStatusInterviewDeclined, updMap,
		func(project dbmodels.Project) notice {
			return notice{
				notifyType:      models.NotificationInterviewDeclined,
				title:           "Colloquio rifiutato",
				message:         fmt.Sprintf("Il professionista ha rifiutato il colloquio per il progetto \"%s\". Motivo: %s", project.Title, reason),
				responseMessage: reason,
			}
		})
}

func (i impl) RescheduleInterview(professionalID, id string, data applicationapimodels.InterviewRescheduleData) (applicationapimodels.ApplicationView, error) {
	var view applicationapimodels.ApplicationView
	if data.NewDate == nil || data.NewDate.IsZero() {
		return view, models.NewValidationError("a new interview date is required", "professional_new_date_proposal")
	}
	updMap := map[string]interface{}{
		"professional_new_date_proposal": *data.NewDate,
	}
	if data.Message != "" {
		updMap["professional_response_reason"] = data.Message
	}
	return i.professionalResponse(professionalID, id, models.ApplicationStatusInterviewRescheduled, updMap,
		func(project dbmodels.Project) notice {
			return notice{
				notifyType:      models.NotificationInterviewRescheduled,
				title:           "Colloquio da ripianificare",
				message:         fmt.Sprintf("Il professionista ha proposto una nuova data per il colloquio del progetto \"%s\": %s.", project.Title, data.NewDate.Format("02/01/2006 15:04")),
				responseMessage: data.Message,
				proposedDate:    data.NewDate,
			}
		})
}

func (i impl) GetByID(id string) (applicationapimodels.ApplicationView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if rec == nil {
		return applicationapimodels.ApplicationView{}, models.NewNotFoundError("application", id)
	}
	return applicationapimodels.Convert(*rec), nil
}

func (i impl) List(filter dbmodels.ApplicationFilter) ([]applicationapimodels.ApplicationView, error) {
	list, err := i.store.List(filter)
	if err != nil {
		return nil, err
	}
	result := make([]applicationapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.Convert(rec))
	}
	return result, nil
}

// companyTransition runs a company-driven status change: ownership check,
// transition-table lookup, guarded write, then notification to the
// professional.
func (i impl) companyTransition(companyID, id string, target models.ApplicationStatus,
	updMap map[string]interface{}, buildNotice func(project dbmodels.Project) notice) (applicationapimodels.ApplicationView, error) {
	var view applicationapimodels.ApplicationView
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, models.NewNotFoundError("application", id)
	}
	project, err := i.getProject(rec.ProjectID)
	if err != nil {
		return view, err
	}
	if project.CompanyID != companyID {
		return view, errors.New("application belongs to a project of another company")
	}
	rule, ok := findRule(rec.Status, target)
	if !ok || rule.actor != models.UserRoleCompany {
		return view, models.NewInvalidTransition(rec.Status, target)
	}
	if missing := rule.missingFields(updMap); len(missing) > 0 {
		return view, models.NewValidationError("transition payload is missing required fields", missing...)
	}
	updated, err := i.applyStatusWrite(*rec, target, updMap)
	if err != nil {
		return view, err
	}
	view = applicationapimodels.Convert(*updated)
	if dispatchErr := i.notifyProfessional(project, *updated, buildNotice(project)); dispatchErr != nil {
		return view, dispatchErr
	}
	return view, nil
}

// professionalResponse runs an interview response: the application must still
// be in "colloquio_proposto", otherwise the submission is acting on stale
// client state.
func (i impl) professionalResponse(professionalID, id string, target models.ApplicationStatus,
	updMap map[string]interface{}, buildNotice func(project dbmodels.Project) notice) (applicationapimodels.ApplicationView, error) {
	var view applicationapimodels.ApplicationView
	rec, err := i.getOwnApplication(professionalID, id)
	if err != nil {
		return view, err
	}
	if rec.Status != models.ApplicationStatusInterviewProposed {
		return view, models.NewStaleStateError(models.ApplicationStatusInterviewProposed, rec.Status)
	}
	project, err := i.getProject(rec.ProjectID)
	if err != nil {
		return view, err
	}
	rule, ok := findRule(rec.Status, target)
	if !ok || rule.actor != models.UserRoleProfessional {
		return view, models.NewInvalidTransition(rec.Status, target)
	}
	if missing := rule.missingFields(updMap); len(missing) > 0 {
		return view, models.NewValidationError("transition payload is missing required fields", missing...)
	}
	updated, err := i.applyStatusWrite(*rec, target, updMap)
	if err != nil {
		return view, err
	}
	view = applicationapimodels.Convert(*updated)
	if dispatchErr := i.notifyCompany(project, *updated, buildNotice(project)); dispatchErr != nil {
		return view, dispatchErr
	}
	return view, nil
}

// applyStatusWrite performs the compare-and-swap on status: the write only
// lands if the row still holds the status read above, otherwise the store
// reports the race as a stale-state failure.
func (i impl) applyStatusWrite(rec dbmodels.ProjectApplication, target models.ApplicationStatus,
	updMap map[string]interface{}) (*dbmodels.ProjectApplication, error) {
	if updMap == nil {
		updMap = map[string]interface{}{}
	}
	updMap["status"] = target
	if err := i.store.UpdateWithStatusGuard(rec.ID, rec.Status, updMap); err != nil {
		return nil, err
	}
	updated, err := i.store.GetByID(rec.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, models.NewNotFoundError("application", rec.ID)
	}
	log.
		WithField("application_id", rec.ID).
		WithField("from", rec.Status).
		WithField("to", target).
		Info("application status changed")
	return updated, nil
}

func (i impl) getOwnApplication(professionalID, id string) (*dbmodels.ProjectApplication, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("application", id)
	}
	if rec.ProfessionalID != professionalID {
		return nil, errors.New("application belongs to another professional")
	}
	return rec, nil
}

func (i impl) getProject(id string) (dbmodels.Project, error) {
	project, err := i.projectStore.GetByID(id)
	if err != nil {
		return dbmodels.Project{}, err
	}
	if project == nil {
		return dbmodels.Project{}, models.NewNotFoundError("project", id)
	}
	return *project, nil
}

// notifyProfessional dispatches the transition notice to the professional.
// A dispatch failure after a successful status write is a partial failure:
// the status change is kept and only the notice needs a retry.
func (i impl) notifyProfessional(project dbmodels.Project, rec dbmodels.ProjectApplication, n notice) error {
	professional, err := i.professionalStore.GetByID(rec.ProfessionalID)
	if err == nil && professional == nil {
		err = models.NewNotFoundError("professional profile", rec.ProfessionalID)
	}
	if err != nil {
		log.WithError(err).WithField("application_id", rec.ID).Error("failed to resolve notification recipient")
		return models.NewNotificationFailure(err)
	}
	return i.dispatch(professional.UserID, project, rec, n, fmt.Sprintf("/dashboard/professional/candidature/%s", rec.ID))
}

func (i impl) notifyCompany(project dbmodels.Project, rec dbmodels.ProjectApplication, n notice) error {
	company, err := i.companyStore.GetByID(project.CompanyID)
	if err == nil && company == nil {
		err = models.NewNotFoundError("company profile", project.CompanyID)
	}
	if err != nil {
		log.WithError(err).WithField("application_id", rec.ID).Error("failed to resolve notification recipient")
		return models.NewNotificationFailure(err)
	}
	return i.dispatch(company.UserID, project, rec, n, fmt.Sprintf("/dashboard/company/progetti/%s/candidati", rec.ProjectID))
}

func (i impl) dispatch(recipientUserID string, project dbmodels.Project, rec dbmodels.ProjectApplication, n notice, linkTo string) error {
	if n.linkTo != "" {
		linkTo = n.linkTo
	}
	err := i.notifier.Dispatch(notification.SendParams{
		RecipientID:     recipientUserID,
		Type:            n.notifyType,
		Title:           n.title,
		Message:         n.message,
		LinkTo:          linkTo,
		ApplicationID:   rec.ID,
		ProjectTitle:    project.Title,
		ResponseMessage: n.responseMessage,
		ProposedDate:    n.proposedDate,
	})
	if err != nil {
		log.WithError(err).
			WithField("application_id", rec.ID).
			WithField("recipient_id", recipientUserID).
			Error("notification dispatch failed after status write")
		return models.NewNotificationFailure(err)
	}
	return nil
}
