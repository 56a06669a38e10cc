package services

import (
	"context"

	"github.com/davnat/scolaris/internal/app/auth"
	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/pkg/apperrors"
)

// In-memory fakes for the store interfaces. They mimic the repository
// contract: entity sentinels for missing rows, conflict errors for
// duplicate enrollments.

type stubAuthz struct {
	allow     bool
	lastKind  auth.ResourceKind
	lastScope int64
	called    bool
}

func (s *stubAuthz) CanManage(_ context.Context, _ *auth.Principal, kind auth.ResourceKind, departmentID int64) bool {
	s.called = true
	s.lastKind = kind
	s.lastScope = departmentID
	return s.allow
}

func adminPrincipal() *auth.Principal {
	return &auth.Principal{UserID: 1, Role: models.RoleAdmin}
}

type fakeColleges struct {
	byID   map[int64]*models.College
	nextID int64
}

func newFakeColleges() *fakeColleges {
	return &fakeColleges{byID: make(map[int64]*models.College)}
}

func (f *fakeColleges) Create(_ context.Context, college *models.College) error {
	f.nextID++
	college.ID = f.nextID
	f.byID[college.ID] = college
	return nil
}

func (f *fakeColleges) GetByID(_ context.Context, id int64) (*models.College, error) {
	college, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrCollegeNotFound
	}
	return college, nil
}

func (f *fakeColleges) Update(_ context.Context, college *models.College) error {
	if _, ok := f.byID[college.ID]; !ok {
		return apperrors.ErrCollegeNotFound
	}
	f.byID[college.ID] = college
	return nil
}

func (f *fakeColleges) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrCollegeNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeColleges) List(_ context.Context, _, _ int) ([]*models.College, int64, error) {
	var colleges []*models.College
	for _, college := range f.byID {
		colleges = append(colleges, college)
	}
	return colleges, int64(len(colleges)), nil
}

type fakeDepartments struct {
	byID   map[int64]*models.Department
	nextID int64
}

func newFakeDepartments() *fakeDepartments {
	return &fakeDepartments{byID: make(map[int64]*models.Department)}
}

func (f *fakeDepartments) add(department *models.Department) *models.Department {
	f.nextID++
	if department.ID == 0 {
		department.ID = f.nextID
	}
	f.byID[department.ID] = department
	return department
}

func (f *fakeDepartments) Create(_ context.Context, department *models.Department) error {
	f.add(department)
	return nil
}

func (f *fakeDepartments) GetByID(_ context.Context, id int64) (*models.Department, error) {
	department, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return department, nil
}

func (f *fakeDepartments) GetByHeadTeacherID(_ context.Context, teacherID int64) (*models.Department, error) {
	for _, department := range f.byID {
		if department.HeadTeacherID != nil && *department.HeadTeacherID == teacherID {
			return department, nil
		}
	}
	return nil, apperrors.ErrDepartmentNotFound
}

func (f *fakeDepartments) Update(_ context.Context, department *models.Department) error {
	if _, ok := f.byID[department.ID]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	f.byID[department.ID] = department
	return nil
}

func (f *fakeDepartments) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeDepartments) CountByCollege(_ context.Context, collegeID int64) (int64, error) {
	var count int64
	for _, department := range f.byID {
		if department.CollegeID == collegeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeDepartments) List(_ context.Context, collegeID *int64, _, _ int) ([]*models.Department, int64, error) {
	var departments []*models.Department
	for _, department := range f.byID {
		if collegeID == nil || department.CollegeID == *collegeID {
			departments = append(departments, department)
		}
	}
	return departments, int64(len(departments)), nil
}

type fakeTeachers struct {
	byID    map[int64]*models.Teacher
	nextID  int64
	created []*models.User
}

func newFakeTeachers() *fakeTeachers {
	return &fakeTeachers{byID: make(map[int64]*models.Teacher)}
}

func (f *fakeTeachers) add(teacher *models.Teacher) *models.Teacher {
	f.nextID++
	if teacher.ID == 0 {
		teacher.ID = f.nextID
	}
	f.byID[teacher.ID] = teacher
	return teacher
}

func (f *fakeTeachers) Create(_ context.Context, teacher *models.Teacher) error {
	f.add(teacher)
	return nil
}

func (f *fakeTeachers) CreateWithUser(_ context.Context, user *models.User, teacher *models.Teacher) error {
	user.ID = int64(len(f.created) + 1000)
	f.created = append(f.created, user)
	teacher.UserID = user.ID
	f.add(teacher)
	return nil
}

func (f *fakeTeachers) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	teacher, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	return teacher, nil
}

func (f *fakeTeachers) GetByUserID(_ context.Context, userID int64) (*models.Teacher, error) {
	for _, teacher := range f.byID {
		if teacher.UserID == userID {
			return teacher, nil
		}
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (f *fakeTeachers) Update(_ context.Context, teacher *models.Teacher) error {
	if _, ok := f.byID[teacher.ID]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	f.byID[teacher.ID] = teacher
	return nil
}

func (f *fakeTeachers) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTeachers) CountByDepartment(_ context.Context, departmentID int64) (int64, error) {
	var count int64
	for _, teacher := range f.byID {
		if teacher.DepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeTeachers) CountBySubject(_ context.Context, subjectID int64) (int64, error) {
	var count int64
	for _, teacher := range f.byID {
		if teacher.SubjectID == subjectID {
			count++
		}
	}
	return count, nil
}

func (f *fakeTeachers) List(_ context.Context, departmentID *int64, _, _ int) ([]*models.Teacher, int64, error) {
	var teachers []*models.Teacher
	for _, teacher := range f.byID {
		if departmentID == nil || teacher.DepartmentID == *departmentID {
			teachers = append(teachers, teacher)
		}
	}
	return teachers, int64(len(teachers)), nil
}

type fakeClassrooms struct {
	byID   map[int64]*models.Classroom
	nextID int64
}

func newFakeClassrooms() *fakeClassrooms {
	return &fakeClassrooms{byID: make(map[int64]*models.Classroom)}
}

func (f *fakeClassrooms) add(classroom *models.Classroom) *models.Classroom {
	f.nextID++
	if classroom.ID == 0 {
		classroom.ID = f.nextID
	}
	f.byID[classroom.ID] = classroom
	return classroom
}

func (f *fakeClassrooms) Create(_ context.Context, classroom *models.Classroom) error {
	f.add(classroom)
	return nil
}

func (f *fakeClassrooms) GetByID(_ context.Context, id int64) (*models.Classroom, error) {
	classroom, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrClassroomNotFound
	}
	return classroom, nil
}

func (f *fakeClassrooms) Update(_ context.Context, classroom *models.Classroom) error {
	if _, ok := f.byID[classroom.ID]; !ok {
		return apperrors.ErrClassroomNotFound
	}
	f.byID[classroom.ID] = classroom
	return nil
}

func (f *fakeClassrooms) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrClassroomNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeClassrooms) List(_ context.Context, _, _ int) ([]*models.Classroom, int64, error) {
	var classrooms []*models.Classroom
	for _, classroom := range f.byID {
		classrooms = append(classrooms, classroom)
	}
	return classrooms, int64(len(classrooms)), nil
}

type fakeSubjects struct {
	byID   map[int64]*models.Subject
	nextID int64
}

func newFakeSubjects() *fakeSubjects {
	return &fakeSubjects{byID: make(map[int64]*models.Subject)}
}

func (f *fakeSubjects) add(subject *models.Subject) *models.Subject {
	f.nextID++
	if subject.ID == 0 {
		subject.ID = f.nextID
	}
	f.byID[subject.ID] = subject
	return subject
}

func (f *fakeSubjects) Create(_ context.Context, subject *models.Subject) error {
	for _, existing := range f.byID {
		if existing.Code == subject.Code {
			return apperrors.NewConflictError("subject code already in use")
		}
	}
	f.add(subject)
	return nil
}

func (f *fakeSubjects) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	subject, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return subject, nil
}

func (f *fakeSubjects) GetByDepartment(_ context.Context, departmentID int64) ([]*models.Subject, error) {
	var subjects []*models.Subject
	for _, subject := range f.byID {
		if subject.DepartmentID == departmentID {
			subjects = append(subjects, subject)
		}
	}
	return subjects, nil
}

func (f *fakeSubjects) Update(_ context.Context, subject *models.Subject) error {
	if _, ok := f.byID[subject.ID]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	f.byID[subject.ID] = subject
	return nil
}

func (f *fakeSubjects) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeSubjects) CountByDepartment(_ context.Context, departmentID int64) (int64, error) {
	var count int64
	for _, subject := range f.byID {
		if subject.DepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSubjects) CountByClassroom(_ context.Context, classroomID int64) (int64, error) {
	var count int64
	for _, subject := range f.byID {
		if subject.ClassroomID == classroomID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSubjects) List(_ context.Context, departmentID *int64, _, _ int) ([]*models.Subject, int64, error) {
	var subjects []*models.Subject
	for _, subject := range f.byID {
		if departmentID == nil || subject.DepartmentID == *departmentID {
			subjects = append(subjects, subject)
		}
	}
	return subjects, int64(len(subjects)), nil
}

type fakeStudents struct {
	byID    map[int64]*models.Student
	nextID  int64
	created []*models.User
}

func newFakeStudents() *fakeStudents {
	return &fakeStudents{byID: make(map[int64]*models.Student)}
}

func (f *fakeStudents) add(student *models.Student) *models.Student {
	f.nextID++
	if student.ID == 0 {
		student.ID = f.nextID
	}
	f.byID[student.ID] = student
	return student
}

func (f *fakeStudents) Create(_ context.Context, student *models.Student) error {
	f.add(student)
	return nil
}

func (f *fakeStudents) CreateWithUser(_ context.Context, user *models.User, student *models.Student) error {
	user.ID = int64(len(f.created) + 2000)
	f.created = append(f.created, user)
	student.UserID = user.ID
	f.add(student)
	return nil
}

func (f *fakeStudents) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (f *fakeStudents) Update(_ context.Context, student *models.Student) error {
	if _, ok := f.byID[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	f.byID[student.ID] = student
	return nil
}

func (f *fakeStudents) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeStudents) List(_ context.Context, entryYear *int, _, _ int) ([]*models.Student, int64, error) {
	var students []*models.Student
	for _, student := range f.byID {
		if entryYear == nil || student.EntryYear == *entryYear {
			students = append(students, student)
		}
	}
	return students, int64(len(students)), nil
}

type fakeUsers struct {
	byID map[int64]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[int64]*models.User)}
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type pairKey struct {
	studentID int64
	subjectID int64
}

type fakeEnrollments struct {
	byPair map[pairKey]*models.Enrollment
	nextID int64
}

func newFakeEnrollments() *fakeEnrollments {
	return &fakeEnrollments{byPair: make(map[pairKey]*models.Enrollment)}
}

func (f *fakeEnrollments) add(studentID, subjectID int64) *models.Enrollment {
	f.nextID++
	enrollment := &models.Enrollment{ID: f.nextID, StudentID: studentID, SubjectID: subjectID}
	f.byPair[pairKey{studentID, subjectID}] = enrollment
	return enrollment
}

func (f *fakeEnrollments) Create(_ context.Context, enrollment *models.Enrollment) error {
	key := pairKey{enrollment.StudentID, enrollment.SubjectID}
	if _, ok := f.byPair[key]; ok {
		return apperrors.NewConflictError("student is already enrolled in this subject")
	}
	f.nextID++
	enrollment.ID = f.nextID
	f.byPair[key] = enrollment
	return nil
}

func (f *fakeEnrollments) GetByPair(_ context.Context, studentID, subjectID int64) (*models.Enrollment, error) {
	enrollment, ok := f.byPair[pairKey{studentID, subjectID}]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return enrollment, nil
}

func (f *fakeEnrollments) DeleteByPair(_ context.Context, studentID, subjectID int64) error {
	key := pairKey{studentID, subjectID}
	if _, ok := f.byPair[key]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(f.byPair, key)
	return nil
}

func (f *fakeEnrollments) GetByStudent(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	for _, enrollment := range f.byPair {
		if enrollment.StudentID == studentID {
			enrollments = append(enrollments, enrollment)
		}
	}
	return enrollments, nil
}

func (f *fakeEnrollments) GetBySubject(_ context.Context, subjectID int64) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	for _, enrollment := range f.byPair {
		if enrollment.SubjectID == subjectID {
			enrollments = append(enrollments, enrollment)
		}
	}
	return enrollments, nil
}

func (f *fakeEnrollments) CountBySubject(_ context.Context, subjectID int64) (int64, error) {
	var count int64
	for _, enrollment := range f.byPair {
		if enrollment.SubjectID == subjectID {
			count++
		}
	}
	return count, nil
}

type fakeGrades struct {
	byID   map[int64]*models.Grade
	nextID int64
}

func newFakeGrades() *fakeGrades {
	return &fakeGrades{byID: make(map[int64]*models.Grade)}
}

func (f *fakeGrades) add(grade *models.Grade) *models.Grade {
	f.nextID++
	if grade.ID == 0 {
		grade.ID = f.nextID
	}
	f.byID[grade.ID] = grade
	return grade
}

func (f *fakeGrades) Create(_ context.Context, grade *models.Grade) error {
	f.add(grade)
	return nil
}

func (f *fakeGrades) GetByID(_ context.Context, id int64) (*models.Grade, error) {
	grade, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrGradeNotFound
	}
	return grade, nil
}

func (f *fakeGrades) Update(_ context.Context, grade *models.Grade) error {
	if _, ok := f.byID[grade.ID]; !ok {
		return apperrors.ErrGradeNotFound
	}
	f.byID[grade.ID] = grade
	return nil
}

func (f *fakeGrades) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrGradeNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeGrades) GetBySubject(_ context.Context, subjectID int64) ([]*models.Grade, error) {
	var grades []*models.Grade
	for _, grade := range f.byID {
		if grade.SubjectID == subjectID {
			grades = append(grades, grade)
		}
	}
	return grades, nil
}

func (f *fakeGrades) GetByStudent(_ context.Context, studentID int64) ([]*models.Grade, error) {
	var grades []*models.Grade
	for _, grade := range f.byID {
		if grade.StudentID == studentID {
			grades = append(grades, grade)
		}
	}
	return grades, nil
}

func (f *fakeGrades) GetByPair(_ context.Context, studentID, subjectID int64) ([]*models.Grade, error) {
	var grades []*models.Grade
	for _, grade := range f.byID {
		if grade.StudentID == studentID && grade.SubjectID == subjectID {
			grades = append(grades, grade)
		}
	}
	return grades, nil
}

func (f *fakeGrades) CountBySubject(_ context.Context, subjectID int64) (int64, error) {
	grades, _ := f.GetBySubject(context.Background(), subjectID)
	return int64(len(grades)), nil
}

func (f *fakeGrades) CountByPair(_ context.Context, studentID, subjectID int64) (int64, error) {
	grades, _ := f.GetByPair(context.Background(), studentID, subjectID)
	return int64(len(grades)), nil
}

func (f *fakeGrades) List(_ context.Context, studentID, subjectID *int64, _, _ int) ([]*models.Grade, int64, error) {
	var grades []*models.Grade
	for _, grade := range f.byID {
		if studentID != nil && grade.StudentID != *studentID {
			continue
		}
		if subjectID != nil && grade.SubjectID != *subjectID {
			continue
		}
		grades = append(grades, grade)
	}
	return grades, int64(len(grades)), nil
}
