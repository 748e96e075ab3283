package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/pkg/apperrors"
	"github.com/lcarvalho/academico/internal/pkg/dberrors"
)

// StudentRepository handles database operations for students and their enrollments
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create creates a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO alunos (nome, email, matricula)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, student.Name, student.Email, student.Registration).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "alunos_matricula_key") {
			return apperrors.ErrRegistrationExists
		}
		if dberrors.IsDuplicateConstraintError(err, "alunos_email_key") {
			return apperrors.ErrStudentEmailExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	student.Courses = []models.CourseSummary{}
	return nil
}

// GetByID retrieves a student by ID, with the enrolled courses attached
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, nome, email, matricula
		FROM alunos
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Registration,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	courses, err := r.coursesByStudent(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	student.Courses = courses[id]
	if student.Courses == nil {
		student.Courses = []models.CourseSummary{}
	}

	return &student, nil
}

// GetAll retrieves all students with their enrolled courses
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT id, nome, email, matricula
		FROM alunos
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	var ids []int64
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Registration,
		); err != nil {
			return nil, err
		}
		student.Courses = []models.CourseSummary{}
		students = append(students, &student)
		ids = append(ids, student.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return students, nil
	}

	courses, err := r.coursesByStudent(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, student := range students {
		if c, ok := courses[student.ID]; ok {
			student.Courses = c
		}
	}

	return students, nil
}

// Update updates an existing student's own fields. Enrollments are left untouched.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE alunos
		SET nome = $1, email = $2, matricula = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.Name, student.Email, student.Registration, student.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "alunos_matricula_key") {
			return apperrors.ErrRegistrationExists
		}
		if dberrors.IsDuplicateConstraintError(err, "alunos_email_key") {
			return apperrors.ErrStudentEmailExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete deletes a student by ID together with its enrollments
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM alunos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Enroll adds a (student, course) pair to the enrollment table.
// A duplicate pair violates the primary key and maps to ErrAlreadyEnrolled.
func (r *StudentRepository) Enroll(ctx context.Context, studentID, courseID int64) error {
	query := `
		INSERT INTO matriculas (aluno_id, curso_id)
		VALUES ($1, $2)
	`

	_, err := r.db.Exec(ctx, query, studentID, courseID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error enrolling student: %w", err)
	}

	return nil
}

// Unenroll removes a (student, course) pair. Removing a pair that does not
// exist affects no rows and is not an error.
func (r *StudentRepository) Unenroll(ctx context.Context, studentID, courseID int64) error {
	query := `
		DELETE FROM matriculas
		WHERE aluno_id = $1 AND curso_id = $2
	`

	if _, err := r.db.Exec(ctx, query, studentID, courseID); err != nil {
		return fmt.Errorf("error unenrolling student: %w", err)
	}

	return nil
}

// coursesByStudent loads the enrolled course summaries for a set of students,
// keyed by student ID. Enrollment order follows the course listing order.
func (r *StudentRepository) coursesByStudent(ctx context.Context, studentIDs []int64) (map[int64][]models.CourseSummary, error) {
	query := `
		SELECT m.aluno_id, c.id, c.nome, c.carga_horaria
		FROM matriculas m
		JOIN cursos c ON c.id = m.curso_id
		WHERE m.aluno_id = ANY($1)
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.CourseSummary)
	for rows.Next() {
		var studentID int64
		var course models.CourseSummary
		if err := rows.Scan(&studentID, &course.ID, &course.Name, &course.WorkloadHours); err != nil {
			return nil, err
		}
		result[studentID] = append(result[studentID], course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
