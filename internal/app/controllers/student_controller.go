package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/app/models/dto"
	"github.com/lcarvalho/academico/internal/app/services"
	"github.com/lcarvalho/academico/internal/middleware"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// parseIDParam parses a path parameter as an entity ID
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid identifier")
		errorDetail = errorDetail.WithDetails(name + " must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// ListStudents lists all students
// @Summary List all students
// @Description Retrieves every student with its enrolled courses
// @Tags students
// @Produce json
// @Security BasicAuth
// @Success 200 {array} models.Student "Students retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /alunos [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	students, err := c.studentService.ListStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// GetStudentByID retrieves a student by ID
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BasicAuth
// @Param id path int true "Student ID"
// @Success 200 {object} models.Student "Student retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /alunos/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// CreateStudent creates a new student
// @Summary Create a new student
// @Tags students
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body models.Student true "Student information"
// @Success 201 {object} models.Student "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student data"
// @Failure 409 {object} dto.ErrorResponse "Registration code or email already exists"
// @Router /alunos [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var student models.Student
	if err := ctx.ShouldBindJSON(&student); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.studentService.CreateStudent(ctx, &student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// UpdateStudent updates an existing student
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path int true "Student ID"
// @Param request body models.Student true "Updated student information"
// @Success 200 {object} models.Student "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /alunos/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var student models.Student
	if err := ctx.ShouldBindJSON(&student); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student.ID = id

	if err := c.studentService.UpdateStudent(ctx, &student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DeleteStudent deletes a student
// @Summary Delete a student
// @Tags students
// @Security BasicAuth
// @Param id path int true "Student ID"
// @Success 204 "Student deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /alunos/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Enroll enrolls a student in a course
// @Summary Enroll a student in a course
// @Tags students
// @Produce json
// @Security BasicAuth
// @Param id path int true "Student ID"
// @Param cursoId path int true "Course ID"
// @Success 200 {object} models.Student "Student with updated enrollments"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Student already enrolled"
// @Router /alunos/{id}/cursos/{cursoId} [post]
func (c *StudentController) Enroll(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "cursoId")
	if !ok {
		return
	}

	student, err := c.studentService.Enroll(ctx, studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// Unenroll removes a student from a course
// @Summary Unenroll a student from a course
// @Tags students
// @Produce json
// @Security BasicAuth
// @Param id path int true "Student ID"
// @Param cursoId path int true "Course ID"
// @Success 200 {object} models.Student "Student with updated enrollments"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Router /alunos/{id}/cursos/{cursoId} [delete]
func (c *StudentController) Unenroll(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "cursoId")
	if !ok {
		return
	}

	student, err := c.studentService.Unenroll(ctx, studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}
