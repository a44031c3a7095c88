package validator

import (
	"log"

	"medcase_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain enum rules on the validator
// instance. A registration failure is a startup error.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-case-status", validateCaseStatus)
	mustRegister("is-report-target", validateReportTarget)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty values are the job of 'required'
	}

	switch models.UserRole(value) {
	case models.UserRoleStudent, models.UserRoleDoctor, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateCaseStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	switch models.CaseStatus(value) {
	case models.CaseStatusDraft, models.CaseStatusPublished, models.CaseStatusRemoved:
		return true
	default:
		return false
	}
}

func validateReportTarget(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	return value == models.ReportTargetCase || value == models.ReportTargetComment
}
