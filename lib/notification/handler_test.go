package notification

import (
	"fmt"
	"testing"
	"time"

	"bim-collab-backend/lib/smtp"
	"bim-collab-backend/models"
	dbmodels "bim-collab-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeNotificationStore struct {
	seq  int
	recs []dbmodels.UserNotification
}

func (s *fakeNotificationStore) Create(rec dbmodels.UserNotification) (string, error) {
	s.seq++
	rec.ID = fmt.Sprintf("notification-%d", s.seq)
	rec.CreatedAt = time.Now()
	s.recs = append(s.recs, rec)
	return rec.ID, nil
}

func (s *fakeNotificationStore) List(userID string) ([]dbmodels.UserNotification, error) {
	result := []dbmodels.UserNotification{}
	for _, rec := range s.recs {
		if rec.UserID == userID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (s *fakeNotificationStore) MarkRead(userID, id string) error {
	for idx, rec := range s.recs {
		if rec.ID == id && rec.UserID == userID {
			s.recs[idx].IsRead = true
			return nil
		}
	}
	return models.NewNotFoundError("notification", id)
}

func (s *fakeNotificationStore) UnreadCount(userID string) (int64, error) {
	var count int64
	for _, rec := range s.recs {
		if rec.UserID == userID && !rec.IsRead {
			count++
		}
	}
	return count, nil
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

type fakeMailer struct {
	sent []string
}

func (m *fakeMailer) SendEMail(to, message, subject string) error {
	m.sent = append(m.sent, to)
	return nil
}

func newTestHandler(store *fakeNotificationStore) impl {
	return impl{
		store:             store,
		professionalStore: &fakeProfessionalStore{recs: map[string]*dbmodels.ProfessionalProfile{}},
		companyStore:      &fakeCompanyStore{recs: map[string]*dbmodels.CompanyProfile{}},
	}
}

func TestDispatch(t *testing.T) {
	t.Run(`dispatch creates exactly one unread row`, func(t *testing.T) {
		store := &fakeNotificationStore{}
		handler := newTestHandler(store)

		err := handler.Dispatch(SendParams{
			RecipientID: "user-1",
			Type:        models.NotificationApplicationSubmitted,
			Title:       "Nuova candidatura",
			Message:     "Hai ricevuto una nuova candidatura.",
		})
		require.Nil(t, err)
		require.Len(t, store.recs, 1)
		require.False(t, store.recs[0].IsRead)

		count, err := handler.UnreadCount("user-1")
		require.Nil(t, err)
		require.Equal(t, int64(1), count)
	})

	t.Run(`dispatch mirrors to email when the recipient has one`, func(t *testing.T) {
		store := &fakeNotificationStore{}
		handler := newTestHandler(store)
		handler.professionalStore.(*fakeProfessionalStore).recs["professional-1"] = &dbmodels.ProfessionalProfile{
			UserID: "user-1",
			Email:  "laura.bianchi@example.it",
		}

		mailer := &fakeMailer{}
		smtp.Instance = mailer
		defer func() { smtp.Instance = nil }()

		err := handler.Dispatch(SendParams{
			RecipientID: "user-1",
			Type:        models.NotificationInterviewProposed,
			Title:       "Proposta di colloquio",
			Message:     "L'azienda ti ha proposto un colloquio.",
		})
		require.Nil(t, err)
		require.Equal(t, []string{"laura.bianchi@example.it"}, mailer.sent)
	})
}

func TestFeed(t *testing.T) {
	t.Run(`feed groups by project title`, func(t *testing.T) {
		store := &fakeNotificationStore{}
		handler := newTestHandler(store)

		for _, projectTitle := range []string{"Progetto A", "Progetto B", "Progetto A", ""} {
			require.Nil(t, handler.Dispatch(SendParams{
				RecipientID:  "user-1",
				Type:         models.NotificationApplicationInReview,
				Title:        "Aggiornamento",
				ProjectTitle: projectTitle,
			}))
		}

		feed, err := handler.Feed("user-1")
		require.Nil(t, err)
		require.Len(t, feed, 3)

		byTitle := map[string]int{}
		for _, group := range feed {
			byTitle[group.ProjectTitle] = len(group.Notifications)
		}
		require.Equal(t, 2, byTitle["Progetto A"])
		require.Equal(t, 1, byTitle["Progetto B"])
		require.Equal(t, 1, byTitle["Altro"])
	})

	t.Run(`feed is scoped to the user`, func(t *testing.T) {
		store := &fakeNotificationStore{}
		handler := newTestHandler(store)
		require.Nil(t, handler.Dispatch(SendParams{RecipientID: "user-1", ProjectTitle: "Progetto A"}))
		require.Nil(t, handler.Dispatch(SendParams{RecipientID: "user-2", ProjectTitle: "Progetto A"}))

		feed, err := handler.Feed("user-2")
		require.Nil(t, err)
		require.Len(t, feed, 1)
		require.Len(t, feed[0].Notifications, 1)
	})
}

func TestMarkRead(t *testing.T) {
	t.Run(`mark read only touches own notifications`, func(t *testing.T) {
		store := &fakeNotificationStore{}
		handler := newTestHandler(store)
		require.Nil(t, handler.Dispatch(SendParams{RecipientID: "user-1"}))
		id := store.recs[0].ID

		err := handler.MarkRead("user-2", id)
		require.True(t, models.IsKind(err, models.KindNotFound))

		require.Nil(t, handler.MarkRead("user-1", id))
		count, err := handler.UnreadCount("user-1")
		require.Nil(t, err)
		require.Equal(t, int64(0), count)
	})
}
