package applicationapimodels

import (
	"strings"
	"time"

	"bim-collab-backend/models"
	dbmodels "bim-collab-backend/models/db"
)

type ApplicationView struct {
	ID                          string     `json:"id"`
	ProjectID                   string     `json:"project_id"`
	ProjectTitle                string     `json:"project_title,omitempty"`
	ProfessionalID              string     `json:"professional_id"`
	Status                      string     `json:"status"`
	StatusName                  string     `json:"status_name"`
	CoverLetterMessage          string     `json:"cover_letter_message"`
	RelevantSkills              []string   `json:"relevant_skills"`
	AvailabilityNotes           string     `json:"availability_notes"`
	InterviewProposalMessage    string     `json:"interview_proposal_message,omitempty"`
	ProposedInterviewDate       *time.Time `json:"proposed_interview_date,omitempty"`
	ProfessionalResponseReason  string     `json:"professional_response_reason,omitempty"`
	ProfessionalNewDateProposal *time.Time `json:"professional_new_date_proposal,omitempty"`
	RejectionReason             string     `json:"rejection_reason,omitempty"`
	ApplicationDate             time.Time  `json:"application_date"`
	UpdatedAt                   time.Time  `json:"updated_at"`
}

func Convert(rec dbmodels.ProjectApplication) ApplicationView {
	view := ApplicationView{
		ID:                          rec.ID,
		ProjectID:                   rec.ProjectID,
		ProfessionalID:              rec.ProfessionalID,
		Status:                      string(rec.Status),
		StatusName:                  rec.Status.ToHuman(),
		CoverLetterMessage:          rec.CoverLetterMessage,
		RelevantSkills:              []string(rec.RelevantSkills),
		AvailabilityNotes:           rec.AvailabilityNotes,
		InterviewProposalMessage:    rec.InterviewProposalMessage,
		ProposedInterviewDate:       rec.ProposedInterviewDate,
		ProfessionalResponseReason:  rec.ProfessionalResponseReason,
		ProfessionalNewDateProposal: rec.ProfessionalNewDateProposal,
		RejectionReason:             rec.RejectionReason,
		ApplicationDate:             rec.ApplicationDate,
		UpdatedAt:                   rec.UpdatedAt,
	}
	if rec.Project != nil {
		view.ProjectTitle = rec.Project.Title
	}
	return view
}

type SubmitData struct {
	ProjectID          string   `json:"project_id"`
	CoverLetterMessage string   `json:"cover_letter_message"`
	RelevantSkills     []string `json:"relevant_skills"`
	AvailabilityNotes  string   `json:"availability_notes"`
}

func (r SubmitData) Validate() error {
	if r.ProjectID == "" {
		return models.NewValidationError("project identifier is required", "project_id")
	}
	if strings.TrimSpace(r.CoverLetterMessage) == "" {
		return models.NewValidationError("cover letter message is required", "cover_letter_message")
	}
	return nil
}

type RejectData struct {
	Reason string `json:"reason"`
}

type InterviewProposalData struct {
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

func (r InterviewProposalData) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return models.NewValidationError("interview proposal message is required", "message")
	}
	if r.Date.IsZero() {
		return models.NewValidationError("interview date is required", "date")
	}
	return nil
}

type InterviewAcceptData struct {
	Message     string     `json:"message"`
	CounterDate *time.Time `json:"counter_date,omitempty"`
}

type InterviewDeclineData struct {
	Reason string `json:"reason"`
}

type InterviewRescheduleData struct {
	Message string     `json:"message"`
	NewDate *time.Time `json:"new_date"`
}
