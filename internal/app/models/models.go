package models

// RoleType defines the closed set of user roles.
type RoleType string

const (
	RoleAdmin          RoleType = "ADMIN"
	RoleDepartmentHead RoleType = "DEPARTMENT_HEAD"
	RoleTeacher        RoleType = "TEACHER"
	RoleStudent        RoleType = "STUDENT"
)

// Valid reports whether the role is one of the four known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleDepartmentHead, RoleTeacher, RoleStudent:
		return true
	}
	return false
}
