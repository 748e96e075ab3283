package enrollment

import (
	"context"
	"fmt"

	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/pkg/logger"
)

// API is the slice of the remote client the coordinator depends on.
type API interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	Enroll(ctx context.Context, studentID, courseID int64) (*models.Student, error)
	Unenroll(ctx context.Context, studentID, courseID int64) (*models.Student, error)
}

// Confirmer asks the user a yes/no question before destructive operations.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Coordinator manages the enrollment relationship between the student view
// and the API. Its collection is a cache: after every mutation it reloads the
// full student list instead of patching locally, trading latency for
// consistency.
type Coordinator struct {
	api       API
	confirmer Confirmer
	selector  Selector
	students  []models.Student
}

// NewCoordinator creates an enrollment coordinator.
func NewCoordinator(api API, confirmer Confirmer) *Coordinator {
	return &Coordinator{
		api:       api,
		confirmer: confirmer,
	}
}

// Students returns the cached student collection.
func (c *Coordinator) Students() []models.Student {
	return c.students
}

// Student finds a student in the cached collection by ID.
func (c *Coordinator) Student(id int64) (*models.Student, bool) {
	for i := range c.students {
		if c.students[i].ID == id {
			return &c.students[i], true
		}
	}
	return nil, false
}

// Reload replaces the cached student collection with a fresh fetch.
func (c *Coordinator) Reload(ctx context.Context) error {
	students, err := c.api.ListStudents(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load students")
		return fmt.Errorf("failed to load students: %w", err)
	}

	c.students = students
	return nil
}

// Eligible returns the courses the given student can still enroll in,
// computed against the cached student collection.
func (c *Coordinator) Eligible(all []models.Course, studentID int64) []models.Course {
	student, _ := c.Student(studentID)
	return EligibleCourses(all, student)
}

// OpenSelector opens the add-enrollment selector for a student, implicitly
// closing it for any other student.
func (c *Coordinator) OpenSelector(studentID int64) {
	c.selector.Open(studentID)
}

// CloseSelector closes the add-enrollment selector.
func (c *Coordinator) CloseSelector() {
	c.selector.Close()
}

// SelectorOpenFor returns the student the selector is open for, if any.
func (c *Coordinator) SelectorOpenFor() (int64, bool) {
	return c.selector.OpenFor()
}

// Enroll enrolls a student in a course. On success it closes the selector and
// reloads the student collection. An already-enrolled pair is rejected by the
// server and comes back as a handled error; the cache is left untouched.
func (c *Coordinator) Enroll(ctx context.Context, studentID, courseID int64) error {
	if _, err := c.api.Enroll(ctx, studentID, courseID); err != nil {
		logger.Error().Err(err).
			Int64("studentId", studentID).
			Int64("courseId", courseID).
			Msg("Failed to enroll student")
		return fmt.Errorf("failed to enroll student: %w", err)
	}

	c.selector.Close()
	return c.Reload(ctx)
}

// Unenroll removes a student from a course after user confirmation. A
// declined confirmation makes no call and changes no state. The call is
// always delegated to the server, even for a pair that is not enrolled, and
// is followed by a full reload either way.
func (c *Coordinator) Unenroll(ctx context.Context, studentID, courseID int64) error {
	if !c.confirmer.Confirm("Deseja realmente desmatricular este aluno do curso?") {
		return nil
	}

	if _, err := c.api.Unenroll(ctx, studentID, courseID); err != nil {
		logger.Error().Err(err).
			Int64("studentId", studentID).
			Int64("courseId", courseID).
			Msg("Failed to unenroll student")
		return fmt.Errorf("failed to unenroll student: %w", err)
	}

	return c.Reload(ctx)
}
