package models

// Student defines the student model based on the 'alunos' table.
// JSON field names follow the wire format consumed by the existing clients.
type Student struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"nome" db:"nome" binding:"required"`
	Email        string `json:"email" db:"email" binding:"required,email"`
	Registration string `json:"matricula" db:"matricula" binding:"required"`

	// Courses the student is enrolled in. Mutated only through the
	// enroll/unenroll operations, never through a plain update.
	Courses []CourseSummary `json:"cursos"`
}

// CourseSummary is the embedded course shape inside a student payload.
type CourseSummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"nome"`
	WorkloadHours int    `json:"cargaHoraria"`
}

// IsEnrolledIn reports whether the student is enrolled in the given course.
func (s *Student) IsEnrolledIn(courseID int64) bool {
	for _, c := range s.Courses {
		if c.ID == courseID {
			return true
		}
	}
	return false
}
