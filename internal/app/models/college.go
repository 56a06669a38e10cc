package models

// College is the top of the organizational hierarchy.
type College struct {
	ID         int64   `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	WebsiteURL *string `json:"websiteUrl,omitempty" db:"website_url"`

	// DepartmentCount is populated on list reads only.
	DepartmentCount int64 `json:"departmentCount,omitempty"`
}
