package application

import (
	"strings"

	"bim-collab-backend/models"
)

// transitionRule describes one legal edge of the application state machine:
// who may drive it and which payload fields the transition requires.
type transitionRule struct {
	actor    models.UserRole
	requires []string
}

// transitionTable is the single source of truth for legal status changes.
// Acceptance is not reachable straight from "inviata"/"in_revisione": the
// company must preselect a candidate before hiring, since acceptance opens
// the contract pipeline. Terminal statuses have no entry.
var transitionTable = map[models.ApplicationStatus]map[models.ApplicationStatus]transitionRule{
	models.ApplicationStatusSubmitted: {
		models.ApplicationStatusInReview:    {actor: models.UserRoleCompany},
		models.ApplicationStatusPreselected: {actor: models.UserRoleCompany},
		models.ApplicationStatusRejected:    {actor: models.UserRoleCompany, requires: []string{"rejection_reason"}},
	},
	models.ApplicationStatusInReview: {
		models.ApplicationStatusPreselected: {actor: models.UserRoleCompany},
		models.ApplicationStatusRejected:    {actor: models.UserRoleCompany, requires: []string{"rejection_reason"}},
	},
	models.ApplicationStatusPreselected: {
		models.ApplicationStatusInterviewProposed: {actor: models.UserRoleCompany, requires: []string{"interview_proposal_message", "proposed_interview_date"}},
		models.ApplicationStatusAccepted:          {actor: models.UserRoleCompany},
		models.ApplicationStatusRejected:          {actor: models.UserRoleCompany, requires: []string{"rejection_reason"}},
	},
	models.ApplicationStatusInterviewProposed: {
		models.ApplicationStatusInterviewAccepted:    {actor: models.UserRoleProfessional},
		models.ApplicationStatusInterviewDeclined:    {actor: models.UserRoleProfessional, requires: []string{"professional_response_reason"}},
		models.ApplicationStatusInterviewRescheduled: {actor: models.UserRoleProfessional, requires: []string{"professional_new_date_proposal"}},
		models.ApplicationStatusAccepted:             {actor: models.UserRoleCompany},
		models.ApplicationStatusRejected:             {actor: models.UserRoleCompany, requires: []string{"rejection_reason"}},
	},
	// the interview sub-protocol signals intent but never finalizes the
	// candidacy, the company keeps the final decision from any outcome
	models.ApplicationStatusInterviewAccepted: {
		models.ApplicationStatusAccepted: {actor: models.UserRoleCompany},
		models.ApplicationStatusRejected: {actor: models.UserRoleCompany, requires: []string{"rejection_reason"}},
	},
	models.ApplicationStatusInterviewDeclined: {
		models.ApplicationStatusAccepted: {actor: models.UserRoleCompany},
		models.ApplicationStatusRejected: {actor: models.UserRoleCompany, requires: []string{"rejection_reason"}},
	},
	models.ApplicationStatusInterviewRescheduled: {
		models.ApplicationStatusInterviewProposed: {actor: models.UserRoleCompany, requires: []string{"interview_proposal_message", "proposed_interview_date"}},
		models.ApplicationStatusAccepted:          {actor: models.UserRoleCompany},
		models.ApplicationStatusRejected:          {actor: models.UserRoleCompany, requires: []string{"rejection_reason"}},
	},
}

func findRule(from, to models.ApplicationStatus) (transitionRule, bool) {
	targets, ok := transitionTable[from]
	if !ok {
		return transitionRule{}, false
	}
	rule, ok := targets[to]
	return rule, ok
}

// missingFields reports which of the rule's required payload fields the
// update leaves absent or empty. Checked at the transition entry points so
// the table stays the single authority on what each edge needs.
func (r transitionRule) missingFields(updMap map[string]interface{}) []string {
	var missing []string
	for _, field := range r.requires {
		value, ok := updMap[field]
		if !ok || value == nil {
			missing = append(missing, field)
			continue
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}
