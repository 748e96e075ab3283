package models

// Course represents a course offering from the 'cursos' table.
type Course struct {
	ID            int64  `json:"id" db:"id"`
	Name          string `json:"nome" db:"nome" binding:"required"`
	WorkloadHours int    `json:"cargaHoraria" db:"carga_horaria" binding:"required,gt=0"`

	// Students enrolled in the course. Inverse side of the enrollment
	// relation, not independently mutable.
	Students []StudentSummary `json:"alunos"`
}

// StudentSummary is the embedded student shape inside a course payload.
type StudentSummary struct {
	ID           int64  `json:"id"`
	Name         string `json:"nome"`
	Email        string `json:"email"`
	Registration string `json:"matricula"`
}
