package services

import (
	"context"
	"fmt"

	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/pkg/apperrors"
	"github.com/lcarvalho/academico/internal/pkg/validation"
)

// CourseRepository is the storage contract the course service depends on.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// CourseService handles course CRUD
type CourseService struct {
	courseRepo CourseRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo CourseRepository) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
	}
}

// validateCourse validates course data before database operations
func (s *CourseService) validateCourse(course *models.Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", apperrors.ErrValidationFailed)
	}

	if validation.IsBlank(course.Name) {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	if course.WorkloadHours <= 0 {
		return fmt.Errorf("%w: workload hours must be positive", apperrors.ErrValidationFailed)
	}

	return nil
}

// ListCourses retrieves all courses with their enrolled students
func (s *CourseService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// GetCourseByID retrieves a course by ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.ErrCourseNotFound
	}
	return s.courseRepo.GetByID(ctx, id)
}

// CreateCourse creates a new course
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(course); err != nil {
		return err
	}
	return s.courseRepo.Create(ctx, course)
}

// UpdateCourse updates an existing course
func (s *CourseService) UpdateCourse(ctx context.Context, course *models.Course) error {
	if course.ID <= 0 {
		return apperrors.ErrCourseNotFound
	}
	if err := s.validateCourse(course); err != nil {
		return err
	}
	return s.courseRepo.Update(ctx, course)
}

// DeleteCourse deletes a course by ID
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrCourseNotFound
	}
	return s.courseRepo.Delete(ctx, id)
}
