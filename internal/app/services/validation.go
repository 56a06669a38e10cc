package services

import (
	"fmt"
	"time"

	"github.com/davnat/scolaris/internal/pkg/apperrors"
	"github.com/davnat/scolaris/internal/pkg/validation"
)

// Field-level checks shared by the services. Binding tags reject the worst
// payloads at the edge; these run again here so that services stay safe when
// called from code that never went through gin.

func validateName(value, field string) error {
	if len(value) < validation.NameMinLength || len(value) > validation.NameMaxLength {
		return apperrors.NewValidationError(fmt.Sprintf(
			"%s must be between %d and %d characters", field, validation.NameMinLength, validation.NameMaxLength))
	}
	return nil
}

func validatePhone(phone string) error {
	if !validation.Phone.MatchString(phone) {
		return apperrors.NewValidationError("phone must be 10 to 15 digits, optionally prefixed with +")
	}
	return nil
}

func validateEmail(email string) error {
	if !validation.Email.MatchString(email) {
		return apperrors.NewValidationError("email address is not valid")
	}
	return nil
}

func validateFunctionStart(t time.Time) error {
	if t.After(time.Now()) {
		return apperrors.NewValidationError("function start date cannot be in the future")
	}
	return nil
}

func validateSubjectCode(code string) error {
	if len(code) < validation.SubjectCodeMin || len(code) > validation.SubjectCodeMax {
		return apperrors.NewValidationError(fmt.Sprintf(
			"subject code must be between %d and %d characters", validation.SubjectCodeMin, validation.SubjectCodeMax))
	}
	if !validation.SubjectCode.MatchString(code) {
		return apperrors.NewValidationError("subject code may only contain uppercase letters, digits and hyphens")
	}
	return nil
}

func validateEntryYear(year int) error {
	current := time.Now().Year()
	if year < validation.StudentEntryYearMin || year > current {
		return apperrors.NewValidationError(fmt.Sprintf(
			"entry year must be between %d and %d", validation.StudentEntryYearMin, current))
	}
	return nil
}

func validateCapacity(capacity int) error {
	if capacity < 1 || capacity > validation.ClassroomCapacityMax {
		return apperrors.NewValidationError(fmt.Sprintf(
			"capacity must be between 1 and %d", validation.ClassroomCapacityMax))
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < validation.PasswordMin {
		return apperrors.NewValidationError(fmt.Sprintf(
			"password must be at least %d characters", validation.PasswordMin))
	}
	return nil
}
