package models

type UserRole string
type GigStatus string
type ApplicationStatus string
type ContractStatus string
type VerificationType string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	GigStatusOpen       GigStatus = "open"
	GigStatusAssigned   GigStatus = "assigned"
	GigStatusInProgress GigStatus = "in_progress"
	GigStatusCompleted  GigStatus = "completed"
	GigStatusCancelled  GigStatus = "cancelled"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	ContractStatusPending   ContractStatus = "pending"
	ContractStatusSigned    ContractStatus = "signed"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusCancelled ContractStatus = "cancelled"

	VerificationTypeEmail         VerificationType = "email"
	VerificationTypePhone         VerificationType = "phone"
	VerificationTypePasswordReset VerificationType = "password_reset"
)

// HasSeeker - статусы, в которых у гига обязан быть назначенный исполнитель.
func (s GigStatus) HasSeeker() bool {
	switch s {
	case GigStatusAssigned, GigStatusInProgress, GigStatusCompleted:
		return true
	default:
		return false
	}
}

func (s GigStatus) Valid() bool {
	switch s {
	case GigStatusOpen, GigStatusAssigned, GigStatusInProgress, GigStatusCompleted, GigStatusCancelled:
		return true
	default:
		return false
	}
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

func (t VerificationType) Valid() bool {
	switch t {
	case VerificationTypeEmail, VerificationTypePhone, VerificationTypePasswordReset:
		return true
	default:
		return false
	}
}
