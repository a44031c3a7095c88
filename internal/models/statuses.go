package models

type UserStatus string
type UserRole string
type CaseStatus string
type VerificationStatus string
type DoctorVerificationStatus string
type ReportStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleStudent UserRole = "student"
	UserRoleDoctor  UserRole = "doctor"
	UserRoleAdmin   UserRole = "admin"

	CaseStatusDraft     CaseStatus = "draft"
	CaseStatusPublished CaseStatus = "published"
	CaseStatusRemoved   CaseStatus = "removed"

	// Lifecycle of a verification request: pending is the only initial
	// status, approved and rejected are terminal.
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"

	// Mirror of the latest request outcome on the user profile.
	DoctorVerificationNone     DoctorVerificationStatus = "none"
	DoctorVerificationPending  DoctorVerificationStatus = "pending"
	DoctorVerificationVerified DoctorVerificationStatus = "verified"
	DoctorVerificationRejected DoctorVerificationStatus = "rejected"

	ReportStatusOpen      ReportStatus = "open"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// IsTerminal reports whether the verification status can no longer change.
func (s VerificationStatus) IsTerminal() bool {
	return s == VerificationStatusApproved || s == VerificationStatusRejected
}
