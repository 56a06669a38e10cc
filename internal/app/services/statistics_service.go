package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/davnat/scolaris/internal/app/models"
	"github.com/davnat/scolaris/internal/app/models/dto"
)

// Scores are expressed on a 0-20 scale regardless of the maximum a grade
// was recorded against.
var scoreScale = decimal.NewFromInt(20)

// StatsGradeStore is the grade surface the aggregation engine reads from.
type StatsGradeStore interface {
	GetBySubject(ctx context.Context, subjectID int64) ([]*models.Grade, error)
	GetByStudent(ctx context.Context, studentID int64) ([]*models.Grade, error)
	GetByPair(ctx context.Context, studentID, subjectID int64) ([]*models.Grade, error)
	CountByPair(ctx context.Context, studentID, subjectID int64) (int64, error)
}

// StatsSubjectStore resolves subjects for department-wide aggregates.
type StatsSubjectStore interface {
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	GetByDepartment(ctx context.Context, departmentID int64) ([]*models.Subject, error)
}

// StatsEnrollmentStore resolves enrollments for ranking and missing-grade
// reports.
type StatsEnrollmentStore interface {
	GetByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	GetBySubject(ctx context.Context, subjectID int64) ([]*models.Enrollment, error)
}

// StatisticsService computes grade aggregates. All reads, no mutation, so
// no principal is involved. Averages are normalized to a 0-20 scale and
// rounded to two decimal places; a zero average means "no usable data" and
// is excluded from department averages and rankings.
type StatisticsService struct {
	grades      StatsGradeStore
	subjects    StatsSubjectStore
	enrollments StatsEnrollmentStore
	logger      zerolog.Logger
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(grades StatsGradeStore, subjects StatsSubjectStore, enrollments StatsEnrollmentStore, logger zerolog.Logger) *StatisticsService {
	return &StatisticsService{
		grades:      grades,
		subjects:    subjects,
		enrollments: enrollments,
		logger:      logger,
	}
}

// normalizeScore maps a grade onto the 0-20 scale. A zero maximum cannot be
// scaled and yields zero rather than an error.
func normalizeScore(grade *models.Grade) decimal.Decimal {
	if grade.MaxValue.IsZero() {
		return decimal.Zero
	}
	return grade.Value.Div(grade.MaxValue).Mul(scoreScale)
}

// meanOf averages a set of normalized scores, rounded to two decimals.
// An empty set averages to zero.
func meanOf(scores []decimal.Decimal) decimal.Decimal {
	if len(scores) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, score := range scores {
		sum = sum.Add(score)
	}
	return sum.Div(decimal.NewFromInt(int64(len(scores)))).Round(2)
}

func normalizeAll(grades []*models.Grade) []decimal.Decimal {
	scores := make([]decimal.Decimal, 0, len(grades))
	for _, grade := range grades {
		scores = append(scores, normalizeScore(grade))
	}
	return scores
}

// SubjectAverage computes the average normalized score across every grade
// of a subject.
func (s *StatisticsService) SubjectAverage(ctx context.Context, subjectID int64) (decimal.Decimal, error) {
	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return decimal.Zero, err
	}

	grades, err := s.grades.GetBySubject(ctx, subjectID)
	if err != nil {
		return decimal.Zero, err
	}
	return meanOf(normalizeAll(grades)), nil
}

// StudentSubjectAverage computes a student's average normalized score in
// one subject.
func (s *StatisticsService) StudentSubjectAverage(ctx context.Context, studentID, subjectID int64) (decimal.Decimal, error) {
	grades, err := s.grades.GetByPair(ctx, studentID, subjectID)
	if err != nil {
		return decimal.Zero, err
	}
	return meanOf(normalizeAll(grades)), nil
}

// StudentGeneralAverage computes a student's average normalized score
// across every subject they have grades in.
func (s *StatisticsService) StudentGeneralAverage(ctx context.Context, studentID int64) (decimal.Decimal, error) {
	grades, err := s.grades.GetByStudent(ctx, studentID)
	if err != nil {
		return decimal.Zero, err
	}
	return meanOf(normalizeAll(grades)), nil
}

// DepartmentAverage averages the subject averages of a department.
// Subjects without grades carry a zero average and are excluded, so an
// ungraded subject never drags the department down.
func (s *StatisticsService) DepartmentAverage(ctx context.Context, departmentID int64) (decimal.Decimal, error) {
	subjects, err := s.subjects.GetByDepartment(ctx, departmentID)
	if err != nil {
		return decimal.Zero, err
	}

	var averages []decimal.Decimal
	for _, subject := range subjects {
		grades, err := s.grades.GetBySubject(ctx, subject.ID)
		if err != nil {
			return decimal.Zero, err
		}
		average := meanOf(normalizeAll(grades))
		if average.IsPositive() {
			averages = append(averages, average)
		}
	}
	return meanOf(averages), nil
}

// SubjectStatistics summarizes the normalized scores of one subject.
func (s *StatisticsService) SubjectStatistics(ctx context.Context, subjectID int64) (*dto.SubjectStatistics, error) {
	if _, err := s.subjects.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	grades, err := s.grades.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if len(grades) == 0 {
		return &dto.SubjectStatistics{
			Average: decimal.Zero,
			Min:     decimal.Zero,
			Max:     decimal.Zero,
		}, nil
	}

	scores := normalizeAll(grades)
	minScore, maxScore := scores[0], scores[0]
	for _, score := range scores[1:] {
		if score.LessThan(minScore) {
			minScore = score
		}
		if score.GreaterThan(maxScore) {
			maxScore = score
		}
	}

	return &dto.SubjectStatistics{
		Average: meanOf(scores),
		Min:     minScore.Round(2),
		Max:     maxScore.Round(2),
		Count:   len(scores),
	}, nil
}

// StudentRank returns the student's 1-based position among the enrolled
// students of a subject, ranked by average descending. Students with a
// zero average are excluded; when the target student is excluded the rank
// is nil. Equal averages are ordered by ascending student ID so the
// ranking is stable across calls.
func (s *StatisticsService) StudentRank(ctx context.Context, studentID, subjectID int64) (*dto.StudentRank, error) {
	enrollments, err := s.enrollments.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	type entry struct {
		studentID int64
		average   decimal.Decimal
	}
	var entries []entry
	for _, enrollment := range enrollments {
		average, err := s.StudentSubjectAverage(ctx, enrollment.StudentID, subjectID)
		if err != nil {
			return nil, err
		}
		if average.IsPositive() {
			entries = append(entries, entry{studentID: enrollment.StudentID, average: average})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].average.Equal(entries[j].average) {
			return entries[i].average.GreaterThan(entries[j].average)
		}
		return entries[i].studentID < entries[j].studentID
	})

	for i, e := range entries {
		if e.studentID == studentID {
			return &dto.StudentRank{Rank: i + 1, Total: len(entries)}, nil
		}
	}
	return nil, nil
}

// MissingGrades lists the subjects a student is enrolled in without having
// received any grade yet.
func (s *StatisticsService) MissingGrades(ctx context.Context, studentID int64) (*dto.MissingGradesResponse, error) {
	enrollments, err := s.enrollments.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	missing := make([]*models.Subject, 0)
	for _, enrollment := range enrollments {
		count, err := s.grades.CountByPair(ctx, studentID, enrollment.SubjectID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}
		subject, err := s.subjects.GetByID(ctx, enrollment.SubjectID)
		if err != nil {
			return nil, err
		}
		missing = append(missing, subject)
	}

	return &dto.MissingGradesResponse{Subjects: missing}, nil
}
