package apperrors

import (
	"net/http"
)

// Factories and predefined variables for the domain errors shared across
// services.

// ErrNotFound converts a repository not-found error into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a repository duplicate error into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic conflict factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the current state forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 409 for illegal status transitions.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// --- auth & account ---

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

var ErrUserBanned = New(
	CodeForbidden,
	"auth",
	"Your account has been banned",
	http.StatusForbidden,
)

var ErrEmailNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your email address",
	http.StatusForbidden,
)

// --- doctor verification ---

// ErrDoctorNotVerified gates case publishing on a verified doctor account.
var ErrDoctorNotVerified = New(
	CodeForbidden,
	"verification",
	"Doctor account is not verified",
	http.StatusForbidden,
)

// ErrVerificationPending refuses a second request while one is pending.
var ErrVerificationPending = New(
	CodeConflict,
	"verification",
	"A verification request is already pending review",
	http.StatusConflict,
)

// ErrVerificationNotPending refuses review of a request that already
// reached a terminal status.
var ErrVerificationNotPending = New(
	CodeInvalidStatus,
	"verification",
	"Verification request is not pending",
	http.StatusConflict,
)

// ErrRejectionReasonRequired refuses a rejection without a reason, before
// any write happens.
var ErrRejectionReasonRequired = New(
	CodeValidationFailed,
	"verification",
	"A rejection reason is required",
	http.StatusBadRequest,
)

// --- cases & interactions ---

var ErrCaseNotPublished = New(
	CodeInvalidStatus,
	"case",
	"Operation not allowed for the current case status",
	http.StatusConflict,
)

var ErrNotCaseAuthor = New(
	CodeForbidden,
	"case",
	"You are not the author of this case",
	http.StatusForbidden,
)

// --- uploads & files ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

var ErrStorageLimitExceeded = New(
	CodeLimitExceeded,
	"storage",
	"User storage quota exceeded",
	http.StatusForbidden,
)
