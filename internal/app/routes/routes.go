package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lcarvalho/academico/internal/app/controllers"
	"github.com/lcarvalho/academico/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")
	api.Use(authMiddleware.BasicAuth())

	students := api.Group("/alunos")
	{
		students.GET("", studentController.ListStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.POST("", studentController.CreateStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)

		// Enrollment relationship between a student and a course.
		// The student segment reuses :id so gin accepts both route shapes.
		students.POST("/:id/cursos/:cursoId", studentController.Enroll)
		students.DELETE("/:id/cursos/:cursoId", studentController.Unenroll)
	}

	courses := api.Group("/cursos")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.POST("", courseController.CreateCourse)
		courses.PUT("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
	}
}
