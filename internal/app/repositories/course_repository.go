package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/pkg/apperrors"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO cursos (nome, carga_horaria)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, course.Name, course.WorkloadHours).Scan(&course.ID)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	course.Students = []models.StudentSummary{}
	return nil
}

// GetByID retrieves a course by ID, with the enrolled students attached
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, nome, carga_horaria
		FROM cursos
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.WorkloadHours,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	students, err := r.studentsByCourse(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	course.Students = students[id]
	if course.Students == nil {
		course.Students = []models.StudentSummary{}
	}

	return &course, nil
}

// GetAll retrieves all courses with their enrolled students
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT id, nome, carga_horaria
		FROM cursos
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	var ids []int64
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.WorkloadHours,
		); err != nil {
			return nil, err
		}
		course.Students = []models.StudentSummary{}
		courses = append(courses, &course)
		ids = append(ids, course.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return courses, nil
	}

	students, err := r.studentsByCourse(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, course := range courses {
		if s, ok := students[course.ID]; ok {
			course.Students = s
		}
	}

	return courses, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE cursos
		SET nome = $1, carga_horaria = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, course.Name, course.WorkloadHours, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID together with its enrollments
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cursos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// studentsByCourse loads the enrolled student summaries for a set of courses,
// keyed by course ID.
func (r *CourseRepository) studentsByCourse(ctx context.Context, courseIDs []int64) (map[int64][]models.StudentSummary, error) {
	query := `
		SELECT m.curso_id, a.id, a.nome, a.email, a.matricula
		FROM matriculas m
		JOIN alunos a ON a.id = m.aluno_id
		WHERE m.curso_id = ANY($1)
		ORDER BY a.id
	`

	rows, err := r.db.Query(ctx, query, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.StudentSummary)
	for rows.Next() {
		var courseID int64
		var student models.StudentSummary
		if err := rows.Scan(&courseID, &student.ID, &student.Name, &student.Email, &student.Registration); err != nil {
			return nil, err
		}
		result[courseID] = append(result[courseID], student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
