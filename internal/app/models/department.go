package models

// Department belongs to a college and optionally designates one of its
// teachers as head.
type Department struct {
	ID            int64  `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	CollegeID     int64  `json:"collegeId" db:"college_id"`
	HeadTeacherID *int64 `json:"headTeacherId,omitempty" db:"head_teacher_id"`

	// Relations (populated when needed)
	College     *College `json:"college,omitempty"`
	HeadTeacher *Teacher `json:"headTeacher,omitempty"`

	// Counts populated on list reads only.
	TeacherCount int64 `json:"teacherCount,omitempty"`
	SubjectCount int64 `json:"subjectCount,omitempty"`
}
