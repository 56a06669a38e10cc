package validation

import "regexp"

// Validation rule bounds shared by the services.
const (
	NameMinLength    = 2
	NameMaxLength    = 100
	SubjectCodeMin   = 2
	SubjectCodeMax   = 20
	PasswordMin      = 8
	StudentEntryYearMin = 2000
	ClassroomCapacityMax = 500
)

// Compiled patterns, cached once at startup.
var (
	// Email is deliberately loose; the authoritative check is delivery.
	Email = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// Phone allows an optional leading + followed by 10 to 15 digits.
	Phone = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

	// SubjectCode is uppercase letters, digits and hyphens.
	SubjectCode = regexp.MustCompile(`^[A-Z0-9-]+$`)
)
