package models

// Subject belongs to a department and is taught in a classroom. Code is
// unique across all subjects.
type Subject struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Code         string `json:"code" db:"code"`
	ClassroomID  int64  `json:"classroomId" db:"classroom_id"`
	DepartmentID int64  `json:"departmentId" db:"department_id"`

	// Relations (populated when needed)
	Classroom  *Classroom  `json:"classroom,omitempty"`
	Department *Department `json:"department,omitempty"`
}
