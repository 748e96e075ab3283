package services

import (
	"context"
	"fmt"

	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/pkg/apperrors"
	"github.com/lcarvalho/academico/internal/pkg/validation"
)

// StudentRepository is the storage contract the student service depends on.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	Enroll(ctx context.Context, studentID, courseID int64) error
	Unenroll(ctx context.Context, studentID, courseID int64) error
}

// CourseLookup is the slice of course storage the student service needs to
// validate enrollment targets.
type CourseLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// StudentService handles student CRUD and the enrollment relationship
type StudentService struct {
	studentRepo StudentRepository
	courseRepo  CourseLookup
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentRepository, courseRepo CourseLookup) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
	}
}

// validateStudent validates student data before database operations
func (s *StudentService) validateStudent(student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}

	if validation.IsBlank(student.Name) {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	if validation.IsBlank(student.Registration) {
		return fmt.Errorf("%w: registration code cannot be empty", apperrors.ErrValidationFailed)
	}

	if !validation.IsValidEmail(student.Email) {
		return fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, apperrors.ErrInvalidEmail)
	}

	return nil
}

// ListStudents retrieves all students with their enrolled courses
func (s *StudentService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// GetStudentByID retrieves a student by ID
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.ErrStudentNotFound
	}
	return s.studentRepo.GetByID(ctx, id)
}

// CreateStudent creates a new student
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) error {
	if err := s.validateStudent(student); err != nil {
		return err
	}
	return s.studentRepo.Create(ctx, student)
}

// UpdateStudent updates an existing student. The enrollment set is not
// touched here, it only changes through Enroll and Unenroll.
func (s *StudentService) UpdateStudent(ctx context.Context, student *models.Student) error {
	if student.ID <= 0 {
		return apperrors.ErrStudentNotFound
	}
	if err := s.validateStudent(student); err != nil {
		return err
	}
	return s.studentRepo.Update(ctx, student)
}

// DeleteStudent deletes a student by ID
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.ErrStudentNotFound
	}
	return s.studentRepo.Delete(ctx, id)
}

// Enroll enrolls a student in a course and returns the refreshed student.
// Enrolling an already-enrolled pair is rejected with ErrAlreadyEnrolled.
func (s *StudentService) Enroll(ctx context.Context, studentID, courseID int64) (*models.Student, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Enroll(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, studentID)
}

// Unenroll removes a student from a course and returns the refreshed student.
// Removing a pair that is not enrolled is a no-op, not an error.
func (s *StudentService) Unenroll(ctx context.Context, studentID, courseID int64) (*models.Student, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Unenroll(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, studentID)
}
