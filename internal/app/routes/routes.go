package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/davnat/scolaris/internal/app/controllers"
	"github.com/davnat/scolaris/internal/middleware"
)

// SetupRouter configures all application routes. Reads are open to any
// authenticated user; mutations are authorized inside the services, so no
// role middleware sits in front of them.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	collegeController *controllers.CollegeController,
	departmentController *controllers.DepartmentController,
	classroomController *controllers.ClassroomController,
	subjectController *controllers.SubjectController,
	teacherController *controllers.TeacherController,
	studentController *controllers.StudentController,
	gradeController *controllers.GradeController,
	statisticsController *controllers.StatisticsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// Everything else requires a valid token.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	colleges := authenticated.Group("/colleges")
	{
		colleges.GET("", collegeController.ListColleges)
		colleges.GET("/:id", collegeController.GetCollege)
		colleges.POST("", collegeController.CreateCollege)
		colleges.PUT("/:id", collegeController.UpdateCollege)
		colleges.DELETE("/:id", collegeController.DeleteCollege)
	}

	departments := authenticated.Group("/departments")
	{
		departments.GET("", departmentController.ListDepartments)
		departments.GET("/:id", departmentController.GetDepartment)
		departments.POST("", departmentController.CreateDepartment)
		departments.PUT("/:id", departmentController.UpdateDepartment)
		departments.PUT("/:id/head", departmentController.AssignHeadTeacher)
		departments.DELETE("/:id", departmentController.DeleteDepartment)
	}

	classrooms := authenticated.Group("/classrooms")
	{
		classrooms.GET("", classroomController.ListClassrooms)
		classrooms.GET("/:id", classroomController.GetClassroom)
		classrooms.POST("", classroomController.CreateClassroom)
		classrooms.PUT("/:id", classroomController.UpdateClassroom)
		classrooms.DELETE("/:id", classroomController.DeleteClassroom)
	}

	subjects := authenticated.Group("/subjects")
	{
		subjects.GET("", subjectController.ListSubjects)
		subjects.GET("/:id", subjectController.GetSubject)
		subjects.POST("", subjectController.CreateSubject)
		subjects.PUT("/:id", subjectController.UpdateSubject)
		subjects.DELETE("/:id", subjectController.DeleteSubject)
	}

	teachers := authenticated.Group("/teachers")
	{
		teachers.GET("", teacherController.ListTeachers)
		teachers.GET("/:id", teacherController.GetTeacher)
		teachers.POST("", teacherController.CreateTeacher)
		teachers.PUT("/:id", teacherController.UpdateTeacher)
		teachers.DELETE("/:id", teacherController.DeleteTeacher)
	}

	students := authenticated.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.GET("/:id", studentController.GetStudent)
		students.POST("", studentController.CreateStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)

		students.GET("/:id/enrollments", studentController.ListEnrollments)
		students.POST("/:id/enrollments", studentController.Enroll)
		students.DELETE("/:id/enrollments/:subjectId", studentController.Unenroll)
	}

	grades := authenticated.Group("/grades")
	{
		grades.GET("", gradeController.ListGrades)
		grades.GET("/:id", gradeController.GetGrade)
		grades.POST("", gradeController.CreateGrade)
		grades.PUT("/:id", gradeController.UpdateGrade)
		grades.DELETE("/:id", gradeController.DeleteGrade)
	}

	statistics := authenticated.Group("/statistics")
	{
		statistics.GET("/subjects/:id", statisticsController.GetSubjectStatistics)
		statistics.GET("/subjects/:id/average", statisticsController.GetSubjectAverage)
		statistics.GET("/departments/:id/average", statisticsController.GetDepartmentAverage)
		statistics.GET("/students/:id/average", statisticsController.GetStudentGeneralAverage)
		statistics.GET("/students/:id/subjects/:subjectId/average", statisticsController.GetStudentSubjectAverage)
		statistics.GET("/students/:id/subjects/:subjectId/rank", statisticsController.GetStudentRank)
		statistics.GET("/students/:id/missing-grades", statisticsController.GetMissingGrades)
	}
}
