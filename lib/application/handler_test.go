package application

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"bim-collab-backend/lib/notification"
	"bim-collab-backend/models"
	applicationapimodels "bim-collab-backend/models/api/application"
	notificationapimodels "bim-collab-backend/models/api/notification"
	dbmodels "bim-collab-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeApplicationStore struct {
	seq  int
	recs map[string]*dbmodels.ProjectApplication
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{recs: map[string]*dbmodels.ProjectApplication{}}
}

func (s *fakeApplicationStore) Create(rec dbmodels.ProjectApplication) (string, error) {
	s.seq++
	rec.ID = fmt.Sprintf("application-%d", s.seq)
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()
	s.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (s *fakeApplicationStore) GetByID(id string) (*dbmodels.ProjectApplication, error) {
	rec, ok := s.recs[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *fakeApplicationStore) Update(id string, updMap map[string]interface{}) error {
	rec, ok := s.recs[id]
	if !ok {
		return models.NewNotFoundError("application", id)
	}
	s.apply(rec, updMap)
	return nil
}

func (s *fakeApplicationStore) UpdateWithStatusGuard(id string, expected models.ApplicationStatus, updMap map[string]interface{}) error {
	rec, ok := s.recs[id]
	if !ok {
		return models.NewNotFoundError("application", id)
	}
	if rec.Status != expected {
		return models.NewStaleStateError(expected, rec.Status)
	}
	s.apply(rec, updMap)
	return nil
}

func (s *fakeApplicationStore) apply(rec *dbmodels.ProjectApplication, updMap map[string]interface{}) {
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.ApplicationStatus)
		case "rejection_reason":
			rec.RejectionReason = value.(string)
		case "interview_proposal_message":
			rec.InterviewProposalMessage = value.(string)
		case "proposed_interview_date":
			date := value.(time.Time)
			rec.ProposedInterviewDate = &date
		case "professional_response_reason":
			rec.ProfessionalResponseReason = value.(string)
		case "professional_new_date_proposal":
			if value == nil {
				rec.ProfessionalNewDateProposal = nil
			} else {
				date := value.(time.Time)
				rec.ProfessionalNewDateProposal = &date
			}
		}
	}
	rec.UpdatedAt = time.Now()
}

func (s *fakeApplicationStore) DeleteWithStatusGuard(id string, expected models.ApplicationStatus) error {
	rec, ok := s.recs[id]
	if !ok {
		return models.NewNotFoundError("application", id)
	}
	if rec.Status != expected {
		return models.NewStaleStateError(expected, rec.Status)
	}
	delete(s.recs, id)
	return nil
}

func (s *fakeApplicationStore) IsExist(projectID, professionalID string) (bool, error) {
	for _, rec := range s.recs {
		if rec.ProjectID == projectID && rec.ProfessionalID == professionalID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeApplicationStore) List(filter dbmodels.ApplicationFilter) ([]dbmodels.ProjectApplication, error) {
	result := []dbmodels.ProjectApplication{}
	for _, rec := range s.recs {
		result = append(result, *rec)
	}
	return result, nil
}

// staleReadStore serves an outdated status on reads while writes and deletes
// hit the real rows, simulating a concurrent decision landing between the
// handler's read and its write.
type staleReadStore struct {
	*fakeApplicationStore
	staleStatus models.ApplicationStatus
}

func (s *staleReadStore) GetByID(id string) (*dbmodels.ProjectApplication, error) {
	rec, err := s.fakeApplicationStore.GetByID(id)
	if rec != nil {
		rec.Status = s.staleStatus
	}
	return rec, err
}

type fakeProjectStore struct {
	recs map[string]*dbmodels.Project
}

func (s *fakeProjectStore) GetByID(id string) (*dbmodels.Project, error) {
	rec, ok := s.recs[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *fakeProjectStore) ListByCompany(companyID string) ([]dbmodels.Project, error) {
	return nil, nil
}

type fakeProfessionalStore struct {
	recs map[string]*dbmodels.ProfessionalProfile
}

func (s *fakeProfessionalStore) GetByID(id string) (*dbmodels.ProfessionalProfile, error) {
	return s.recs[id], nil
}

func (s *fakeProfessionalStore) GetByUserID(userID string) (*dbmodels.ProfessionalProfile, error) {
	for _, rec := range s.recs {
		if rec.UserID == userID {
			return rec, nil
		}
	}
	return nil, nil
}

type fakeCompanyStore struct {
	recs map[string]*dbmodels.CompanyProfile
}

func (s *fakeCompanyStore) GetByID(id string) (*dbmodels.CompanyProfile, error) {
	return s.recs[id], nil
}

func (s *fakeCompanyStore) GetByUserID(userID string) (*dbmodels.CompanyProfile, error) {
	for _, rec := range s.recs {
		if rec.UserID == userID {
			return rec, nil
		}
	}
	return nil, nil
}

type fakeNotifier struct {
	failing bool
	sent    []notification.SendParams
}

func (n *fakeNotifier) Dispatch(params notification.SendParams) error {
	if n.failing {
		return errors.New("notification channel unavailable")
	}
	n.sent = append(n.sent, params)
	return nil
}

func (n *fakeNotifier) Feed(userID string) ([]notificationapimodels.FeedGroup, error) {
	return nil, nil
}

func (n *fakeNotifier) MarkRead(userID, id string) error { return nil }

func (n *fakeNotifier) UnreadCount(userID string) (int64, error) { return 0, nil }

const (
	testProjectID        = "project-1"
	testCompanyID        = "company-1"
	testCompanyUserID    = "user-company-1"
	testProfessionalID   = "professional-1"
	testProfessionalUser = "user-professional-1"
)

type env struct {
	handler  impl
	store    *fakeApplicationStore
	notifier *fakeNotifier
}

func newEnv() env {
	store := newFakeApplicationStore()
	notifier := &fakeNotifier{}
	handler := impl{
		store: store,
		projectStore: &fakeProjectStore{recs: map[string]*dbmodels.Project{
			testProjectID: {
				BaseModel: dbmodels.BaseModel{ID: testProjectID},
				CompanyID: testCompanyID,
				Title:     "Modellazione BIM sede direzionale",
				Status:    models.ProjectStatusOpen,
			},
		}},
		professionalStore: &fakeProfessionalStore{recs: map[string]*dbmodels.ProfessionalProfile{
			testProfessionalID: {
				BaseModel: dbmodels.BaseModel{ID: testProfessionalID},
				UserID:    testProfessionalUser,
				FirstName: "Laura",
				LastName:  "Bianchi",
			},
		}},
		companyStore: &fakeCompanyStore{recs: map[string]*dbmodels.CompanyProfile{
			testCompanyID: {
				BaseModel: dbmodels.BaseModel{ID: testCompanyID},
				UserID:    testCompanyUserID,
				Name:      "Studio Tecnico Rossi",
			},
		}},
		notifier: notifier,
	}
	return env{handler: handler, store: store, notifier: notifier}
}

func (e env) submit(t *testing.T) string {
	view, err := e.handler.Submit(testProfessionalID, applicationapimodels.SubmitData{
		ProjectID:          testProjectID,
		CoverLetterMessage: "Esperienza decennale su progetti BIM.",
		RelevantSkills:     []string{"Revit", "Navisworks"},
	})
	require.Nil(t, err)
	require.Equal(t, string(models.ApplicationStatusSubmitted), view.Status)
	return view.ID
}

func (e env) mustStatus(t *testing.T, id string, expected models.ApplicationStatus) {
	rec, err := e.store.GetByID(id)
	require.Nil(t, err)
	require.NotNil(t, rec)
	require.Equal(t, expected, rec.Status)
}

func (e env) lastNotice(t *testing.T) notification.SendParams {
	require.NotEmpty(t, e.notifier.sent)
	return e.notifier.sent[len(e.notifier.sent)-1]
}

func TestSubmit(t *testing.T) {
	t.Run(`submit notifies the company`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		require.Len(t, e.notifier.sent, 1)
		notice := e.lastNotice(t)
		require.Equal(t, testCompanyUserID, notice.RecipientID)
		require.Equal(t, models.NotificationApplicationSubmitted, notice.Type)
		require.Equal(t, id, notice.ApplicationID)
	})

	t.Run(`duplicate application is refused`, func(t *testing.T) {
		e := newEnv()
		e.submit(t)
		_, err := e.handler.Submit(testProfessionalID, applicationapimodels.SubmitData{
			ProjectID:          testProjectID,
			CoverLetterMessage: "Seconda candidatura.",
		})
		require.True(t, models.IsKind(err, models.KindValidation))
	})

	t.Run(`closed project refuses applications`, func(t *testing.T) {
		e := newEnv()
		e.handler.projectStore.(*fakeProjectStore).recs[testProjectID].Status = models.ProjectStatusClosed
		_, err := e.handler.Submit(testProfessionalID, applicationapimodels.SubmitData{
			ProjectID:          testProjectID,
			CoverLetterMessage: "Candidatura a progetto chiuso.",
		})
		require.True(t, models.IsKind(err, models.KindValidation))
	})
}

func TestCompanyDecisions(t *testing.T) {
	t.Run(`full acceptance path`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)

		view, err := e.handler.StartReview(testCompanyID, id)
		require.Nil(t, err)
		require.Equal(t, string(models.ApplicationStatusInReview), view.Status)

		view, err = e.handler.Preselect(testCompanyID, id)
		require.Nil(t, err)
		require.Equal(t, string(models.ApplicationStatusPreselected), view.Status)

		view, err = e.handler.Accept(testCompanyID, id)
		require.Nil(t, err)
		require.Equal(t, string(models.ApplicationStatusAccepted), view.Status)

		// submit + three decisions, one notice each, all to the professional
		require.Len(t, e.notifier.sent, 4)
		for _, notice := range e.notifier.sent[1:] {
			require.Equal(t, testProfessionalUser, notice.RecipientID)
		}
	})

	t.Run(`preselect straight from submitted`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		view, err := e.handler.Preselect(testCompanyID, id)
		require.Nil(t, err)
		require.Equal(t, string(models.ApplicationStatusPreselected), view.Status)
	})

	t.Run(`rejection is terminal`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		view, err := e.handler.Reject(testCompanyID, id, applicationapimodels.RejectData{
			Reason: "Profilo non in linea con il progetto.",
		})
		require.Nil(t, err)
		require.Equal(t, string(models.ApplicationStatusRejected), view.Status)

		_, err = e.handler.Accept(testCompanyID, id)
		require.True(t, models.IsKind(err, models.KindInvalidTransition))

		_, err = e.handler.StartReview(testCompanyID, id)
		require.True(t, models.IsKind(err, models.KindInvalidTransition))

		// the rejected document stays visible to the professional
		err = e.handler.Withdraw(testProfessionalID, id)
		require.True(t, models.IsKind(err, models.KindValidation))
		e.mustStatus(t, id, models.ApplicationStatusRejected)
	})

	t.Run(`short rejection reason is a no-op`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		sentBefore := len(e.notifier.sent)

		_, err := e.handler.Reject(testCompanyID, id, applicationapimodels.RejectData{Reason: "corto"})
		require.True(t, models.IsKind(err, models.KindValidation))
		e.mustStatus(t, id, models.ApplicationStatusSubmitted)
		require.Len(t, e.notifier.sent, sentBefore)
	})

	t.Run(`foreign company cannot act`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		_, err := e.handler.Accept("company-other", id)
		require.NotNil(t, err)
		e.mustStatus(t, id, models.ApplicationStatusSubmitted)
	})

	t.Run(`rejection reason reaches the professional`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		reason := "Abbiamo scelto un profilo con maggiore esperienza su Navisworks."
		_, err := e.handler.Reject(testCompanyID, id, applicationapimodels.RejectData{Reason: reason})
		require.Nil(t, err)
		notice := e.lastNotice(t)
		require.Equal(t, testProfessionalUser, notice.RecipientID)
		require.Equal(t, reason, notice.ResponseMessage)
	})
}

func TestInterviewNegotiation(t *testing.T) {
	proposalDate := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	propose := func(t *testing.T, e env, id string) {
		_, err := e.handler.Preselect(testCompanyID, id)
		require.Nil(t, err)
		view, err := e.handler.ProposeInterview(testCompanyID, id, applicationapimodels.InterviewProposalData{
			Message: "Colloquio conoscitivo",
			Date:    proposalDate,
		})
		require.Nil(t, err)
		require.Equal(t, string(models.ApplicationStatusInterviewProposed), view.Status)
	}

	t.Run(`proposal carries message and date to the professional`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		propose(t, e, id)

		notice := e.lastNotice(t)
		require.Equal(t, testProfessionalUser, notice.RecipientID)
		require.Equal(t, models.NotificationInterviewProposed, notice.Type)
		require.Contains(t, notice.Message, "Colloquio conoscitivo")
		require.NotNil(t, notice.ProposedDate)
		require.Equal(t, proposalDate, *notice.ProposedDate)
	})

	t.Run(`acceptance notifies the company with ACCETTATO`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		propose(t, e, id)

		view, err := e.handler.AcceptInterview(testProfessionalID, id, applicationapimodels.InterviewAcceptData{
			Message: "Confermo la disponibilità.",
		})
		require.Nil(t, err)
		require.Equal(t, string(models.ApplicationStatusInterviewAccepted), view.Status)

		notice := e.lastNotice(t)
		require.Equal(t, testCompanyUserID, notice.RecipientID)
		require.Equal(t, models.NotificationInterviewAccepted, notice.Type)
		require.Contains(t, notice.Message, "ACCETTATO")

		// the company can still close the deal
		view, err = e.handler.Accept(testCompanyID, id)
		require.Nil(t, err)
		require.Equal(t, string(models.ApplicationStatusAccepted), view.Status)
	})

	t.Run(`acceptance with counter date`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		propose(t, e, id)

		counterDate := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
		_, err := e.handler.AcceptInterview(testProfessionalID, id, applicationapimodels.InterviewAcceptData{
			CounterDate: &counterDate,
		})
		require.Nil(t, err)

		notice := e.lastNotice(t)
		require.NotNil(t, notice.ProposedDate)
		require.Equal(t, counterDate, *notice.ProposedDate)

		rec, err := e.store.GetByID(id)
		require.Nil(t, err)
		require.NotNil(t, rec.ProfessionalNewDateProposal)
		require.Equal(t, counterDate, *rec.ProfessionalNewDateProposal)
	})

	t.Run(`decline keeps the company decision open`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		propose(t, e, id)

		reason := "Ho accettato un'altra offerta."
		view, err := e.handler.DeclineInterview(testProfessionalID, id, applicationapimodels.InterviewDeclineData{Reason: reason})
		require.Nil(t, err)
		require.Equal(t, string(models.ApplicationStatusInterviewDeclined), view.Status)

		notice := e.lastNotice(t)
		require.Equal(t, testCompanyUserID, notice.RecipientID)
		require.Contains(t, notice.Message, reason)

		// the decline does not reject the candidacy by itself
		view, err = e.handler.Reject(testCompanyID, id, applicationapimodels.RejectData{
			Reason: "Il professionista non è più disponibile.",
		})
		require.Nil(t, err)
		require.Equal(t, string(models.ApplicationStatusRejected), view.Status)
	})

	t.Run(`short decline reason is a no-op`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		propose(t, e, id)
		sentBefore := len(e.notifier.sent)

		_, err := e.handler.DeclineInterview(testProfessionalID, id, applicationapimodels.InterviewDeclineData{Reason: "no"})
		require.True(t, models.IsKind(err, models.KindValidation))
		e.mustStatus(t, id, models.ApplicationStatusInterviewProposed)
		require.Len(t, e.notifier.sent, sentBefore)
	})

	t.Run(`reschedule loops back through a fresh proposal`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		propose(t, e, id)

		newDate := time.Date(2025, 3, 20, 9, 30, 0, 0, time.UTC)
		view, err := e.handler.RescheduleInterview(testProfessionalID, id, applicationapimodels.InterviewRescheduleData{
			Message: "La settimana prossima sono in cantiere.",
			NewDate: &newDate,
		})
		require.Nil(t, err)
		require.Equal(t, string(models.ApplicationStatusInterviewRescheduled), view.Status)

		// the company proposes again and the response fields reset
		secondDate := time.Date(2025, 3, 21, 9, 30, 0, 0, time.UTC)
		_, err = e.handler.ProposeInterview(testCompanyID, id, applicationapimodels.InterviewProposalData{
			Message: "Va bene, nuova proposta.",
			Date:    secondDate,
		})
		require.Nil(t, err)

		rec, err := e.store.GetByID(id)
		require.Nil(t, err)
		require.Equal(t, models.ApplicationStatusInterviewProposed, rec.Status)
		require.Empty(t, rec.ProfessionalResponseReason)
		require.Nil(t, rec.ProfessionalNewDateProposal)
	})

	t.Run(`response to a consumed proposal reports stale state`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		propose(t, e, id)

		_, err := e.handler.AcceptInterview(testProfessionalID, id, applicationapimodels.InterviewAcceptData{})
		require.Nil(t, err)

		_, err = e.handler.DeclineInterview(testProfessionalID, id, applicationapimodels.InterviewDeclineData{
			Reason: "Non sono più disponibile.",
		})
		require.True(t, models.IsKind(err, models.KindStaleState))
		e.mustStatus(t, id, models.ApplicationStatusInterviewAccepted)
	})
}

func TestPartialFailure(t *testing.T) {
	t.Run(`status survives a notification failure`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)

		e.notifier.failing = true
		view, err := e.handler.Preselect(testCompanyID, id)
		require.True(t, models.IsKind(err, models.KindNotificationFailure))
		require.Equal(t, string(models.ApplicationStatusPreselected), view.Status)
		e.mustStatus(t, id, models.ApplicationStatusPreselected)
	})
}

func TestTransitionTable(t *testing.T) {
	t.Run(`terminal statuses have no outgoing transitions`, func(t *testing.T) {
		for from := range transitionTable {
			require.False(t, from.IsTerminal(), "terminal status %q must not appear as a source", from)
		}
	})

	t.Run(`every rule names an actor`, func(t *testing.T) {
		for from, targets := range transitionTable {
			for to, rule := range targets {
				require.NotEmpty(t, rule.actor, "rule %s -> %s", from, to)
			}
		}
	})

	t.Run(`required payload fields are enforced at the transition entry point`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		sentBefore := len(e.notifier.sent)

		_, err := e.handler.companyTransition(testCompanyID, id, models.ApplicationStatusRejected, nil,
			func(project dbmodels.Project) notice { return notice{} })
		require.True(t, models.IsKind(err, models.KindValidation))
		require.Equal(t, []string{"rejection_reason"}, models.ErrorDetails(err))
		e.mustStatus(t, id, models.ApplicationStatusSubmitted)
		require.Len(t, e.notifier.sent, sentBefore)
	})

	t.Run(`blank required field counts as missing`, func(t *testing.T) {
		rule, ok := findRule(models.ApplicationStatusInterviewProposed, models.ApplicationStatusInterviewDeclined)
		require.True(t, ok)
		require.Equal(t, []string{"professional_response_reason"},
			rule.missingFields(map[string]interface{}{"professional_response_reason": "   "}))
		require.Empty(t, rule.missingFields(map[string]interface{}{
			"professional_response_reason": "Ho già accettato un'altra offerta.",
		}))
	})
}

func TestWithdraw(t *testing.T) {
	t.Run(`withdraw removes the document and notifies the company`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)

		err := e.handler.Withdraw(testProfessionalID, id)
		require.Nil(t, err)

		rec, err := e.store.GetByID(id)
		require.Nil(t, err)
		require.Nil(t, rec)

		notice := e.lastNotice(t)
		require.Equal(t, models.NotificationApplicationWithdrawn, notice.Type)
		require.Equal(t, testCompanyUserID, notice.RecipientID)
		require.True(t, strings.Contains(notice.Message, "ritirato"))
	})

	t.Run(`withdraw of a foreign application is refused`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)
		err := e.handler.Withdraw("professional-other", id)
		require.NotNil(t, err)
		e.mustStatus(t, id, models.ApplicationStatusSubmitted)
	})

	t.Run(`withdraw under a stale read does not delete a decided document`, func(t *testing.T) {
		e := newEnv()
		id := e.submit(t)

		// the professional's client still sees "inviata" while the company
		// already rejected the candidacy
		require.Nil(t, e.store.Update(id, map[string]interface{}{
			"status":           models.ApplicationStatusRejected,
			"rejection_reason": "Profilo non in linea con il progetto.",
		}))
		e.handler.store = &staleReadStore{
			fakeApplicationStore: e.store,
			staleStatus:          models.ApplicationStatusSubmitted,
		}

		err := e.handler.Withdraw(testProfessionalID, id)
		require.True(t, models.IsKind(err, models.KindStaleState))
		e.mustStatus(t, id, models.ApplicationStatusRejected)
	})
}
