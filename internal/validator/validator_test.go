package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationForm struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Role  string `json:"role" validate:"required,is-user-role"`
}

func TestValidatePasses(t *testing.T) {
	v := New()

	err := v.Validate(&registrationForm{
		Email: "doc@example.com",
		Name:  "Dr. Example",
		Role:  "doctor",
	})
	assert.NoError(t, err)
}

func TestValidateCollectsFieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(&registrationForm{
		Email: "not-an-email",
		Role:  "moderator",
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	// Field names come from the json tags.
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "name")
	assert.Contains(t, vErr.Errors, "role")
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "This field is required", vErr.Errors["name"])
	assert.Equal(t, "Must be a valid user role", vErr.Errors["role"])
}

func TestCustomEnumRules(t *testing.T) {
	v := New()

	type enums struct {
		Status string `json:"status" validate:"omitempty,is-case-status"`
		Target string `json:"target" validate:"omitempty,is-report-target"`
	}

	assert.NoError(t, v.Validate(&enums{Status: "published", Target: "comment"}))
	assert.NoError(t, v.Validate(&enums{})) // empty is left to 'required'

	err := v.Validate(&enums{Status: "archived", Target: "profile"})
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Must be a valid case status", vErr.Errors["status"])
	assert.Equal(t, "Must be 'case' or 'comment'", vErr.Errors["target"])
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Errors: map[string]string{"email": "Must be a valid email address"}}
	assert.Contains(t, err.Error(), "field 'email'")
}
