package models

type ApplicationStatus string

const (
	ApplicationStatusSubmitted            ApplicationStatus = "inviata"
	ApplicationStatusInReview             ApplicationStatus = "in_revisione"
	ApplicationStatusPreselected          ApplicationStatus = "preselezionata"
	ApplicationStatusInterviewProposed    ApplicationStatus = "colloquio_proposto"
	ApplicationStatusInterviewAccepted    ApplicationStatus = "colloquio_accettato_prof"
	ApplicationStatusInterviewDeclined    ApplicationStatus = "colloquio_rifiutato_prof"
	ApplicationStatusInterviewRescheduled ApplicationStatus = "colloquio_ripianificato_prof"
	ApplicationStatusAccepted             ApplicationStatus = "accettata"
	ApplicationStatusRejected             ApplicationStatus = "rifiutata"
)

var applicationStatusHumanName = map[ApplicationStatus]string{
	ApplicationStatusSubmitted:            "Inviata",
	ApplicationStatusInReview:             "In revisione",
	ApplicationStatusPreselected:          "Preselezionata",
	ApplicationStatusInterviewProposed:    "Colloquio proposto",
	ApplicationStatusInterviewAccepted:    "Colloquio accettato dal professionista",
	ApplicationStatusInterviewDeclined:    "Colloquio rifiutato dal professionista",
	ApplicationStatusInterviewRescheduled: "Colloquio da ripianificare",
	ApplicationStatusAccepted:             "Accettata",
	ApplicationStatusRejected:             "Rifiutata",
}

func (s ApplicationStatus) ToHuman() string {
	if human, exist := applicationStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsTerminal reports whether the status admits no further transition.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

func (s ApplicationStatus) IsInterviewStage() bool {
	switch s {
	case ApplicationStatusInterviewProposed,
		ApplicationStatusInterviewAccepted,
		ApplicationStatusInterviewDeclined,
		ApplicationStatusInterviewRescheduled:
		return true
	}
	return false
}

type ContractStatus string

const (
	ContractStatusDraft         ContractStatus = "DRAFT"
	ContractStatusGenerated     ContractStatus = "GENERATED"
	ContractStatusPendingReview ContractStatus = "PENDING_REVIEW"
	ContractStatusApproved      ContractStatus = "APPROVED"
	ContractStatusRejected      ContractStatus = "REJECTED"
	ContractStatusArchived      ContractStatus = "ARCHIVED"
)

// IsEditable reports whether the contract text may still be modified.
func (s ContractStatus) IsEditable() bool {
	return s == ContractStatusDraft || s == ContractStatusGenerated
}

func (s ContractStatus) IsTerminal() bool {
	switch s {
	case ContractStatusApproved, ContractStatusRejected, ContractStatusArchived:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectStatusOpen   ProjectStatus = "aperto"
	ProjectStatusClosed ProjectStatus = "chiuso"
)

type UserRole string

const (
	UserRoleProfessional UserRole = "PROFESSIONAL"
	UserRoleCompany      UserRole = "COMPANY"
	UserRoleAdmin        UserRole = "ADMIN"
)

type NotificationType string

const (
	NotificationApplicationSubmitted  NotificationType = "APPLICATION_SUBMITTED"
	NotificationApplicationInReview   NotificationType = "APPLICATION_IN_REVIEW"
	NotificationApplicationPreselect  NotificationType = "APPLICATION_PRESELECTED"
	NotificationApplicationAccepted   NotificationType = "APPLICATION_ACCEPTED"
	NotificationApplicationRejected   NotificationType = "APPLICATION_REJECTED"
	NotificationApplicationWithdrawn  NotificationType = "APPLICATION_WITHDRAWN"
	NotificationInterviewProposed     NotificationType = "INTERVIEW_PROPOSED"
	NotificationInterviewAccepted     NotificationType = "INTERVIEW_ACCEPTED"
	NotificationInterviewDeclined     NotificationType = "INTERVIEW_DECLINED"
	NotificationInterviewRescheduled  NotificationType = "INTERVIEW_RESCHEDULED"
	NotificationContractPendingReview NotificationType = "CONTRACT_PENDING_REVIEW"
	NotificationContractApproved      NotificationType = "CONTRACT_APPROVED"
	NotificationContractRejected      NotificationType = "CONTRACT_REJECTED"
)

// MinReasonLength is the minimum length for rejection and interview-decline
// reasons.
const MinReasonLength = 10
