package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/app/models/dto"
	"github.com/lcarvalho/academico/internal/app/services"
	"github.com/lcarvalho/academico/internal/middleware"
)

// CourseController handles course-related operations
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// ListCourses lists all courses
// @Summary List all courses
// @Description Retrieves every course with its enrolled students
// @Tags courses
// @Produce json
// @Security BasicAuth
// @Success 200 {array} models.Course "Courses retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /cursos [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

// GetCourseByID retrieves a course by ID
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Security BasicAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course "Course retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /cursos/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// CreateCourse creates a new course
// @Summary Create a new course
// @Tags courses
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body models.Course true "Course information"
// @Success 201 {object} models.Course "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course data"
// @Router /cursos [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var course models.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.courseService.CreateCourse(ctx, &course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, course)
}

// UpdateCourse updates an existing course
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path int true "Course ID"
// @Param request body models.Course true "Updated course information"
// @Success 200 {object} models.Course "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /cursos/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var course models.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course.ID = id

	if err := c.courseService.UpdateCourse(ctx, &course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Tags courses
// @Security BasicAuth
// @Param id path int true "Course ID"
// @Success 204 "Course deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /cursos/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
