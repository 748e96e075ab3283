package views

import (
	"context"
	"strconv"
	"strings"

	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/client"
	"github.com/lcarvalho/academico/internal/client/enrollment"
)

// StudentForm holds the entered field values. They survive a failed submit so
// the user does not retype everything.
type StudentForm struct {
	Name         string
	Email        string
	Registration string
}

// StudentsView renders the student table and dispatches CRUD and enrollment
// operations. All business rules live in the coordinator and the API; the
// view only renders and dispatches.
type StudentsView struct {
	api     *client.Client
	coord   *enrollment.Coordinator
	prompts *Prompter

	form    FormState
	fields  StudentForm
	courses []models.Course
}

// NewStudentsView creates the students view.
func NewStudentsView(api *client.Client, coord *enrollment.Coordinator, prompts *Prompter) *StudentsView {
	return &StudentsView{
		api:     api,
		coord:   coord,
		prompts: prompts,
	}
}

// Form exposes the current form state for inspection.
func (v *StudentsView) Form() *FormState {
	return &v.form
}

// Fields exposes the entered field values for inspection.
func (v *StudentsView) Fields() StudentForm {
	return v.fields
}

// StartCreate opens the create form with empty fields.
func (v *StudentsView) StartCreate() {
	v.form.StartCreate()
	v.fields = StudentForm{}
}

// StartEdit opens the edit form pre-populated from the student.
func (v *StudentsView) StartEdit(student *models.Student) {
	v.form.StartEdit(student.ID)
	v.fields = StudentForm{
		Name:         student.Name,
		Email:        student.Email,
		Registration: student.Registration,
	}
}

// SetFields replaces the entered field values.
func (v *StudentsView) SetFields(fields StudentForm) {
	v.fields = fields
}

// Submit dispatches the form. On success the view returns to the list and the
// collection is reloaded in full; on failure the form stays open with the
// entered values intact. A submit already in flight drops the duplicate.
func (v *StudentsView) Submit(ctx context.Context) error {
	if !v.form.BeginSubmit() {
		return nil
	}

	student := &models.Student{
		Name:         v.fields.Name,
		Email:        v.fields.Email,
		Registration: v.fields.Registration,
	}

	var err error
	if v.form.Mode() == ModeEdit {
		_, err = v.api.UpdateStudent(ctx, v.form.EditingID(), student)
	} else {
		_, err = v.api.CreateStudent(ctx, student)
	}

	v.form.EndSubmit(err == nil)
	if err != nil {
		return err
	}

	v.fields = StudentForm{}
	return v.coord.Reload(ctx)
}

// Run drives the view loop until the user goes back.
func (v *StudentsView) Run(ctx context.Context) {
	for {
		if err := v.reload(ctx); err != nil {
			v.prompts.Printf("Erro ao carregar alunos.\n")
		}

		v.renderTable()

		cmd := v.prompts.ReadLine("[n]ovo  [e]ditar <id>  [x]excluir <id>  [m]atricular <id>  [d]esmatricular <id> <curso>  [v]oltar")
		action, args := splitCommand(cmd)

		switch action {
		case "n":
			v.StartCreate()
			v.fillAndSubmit(ctx)
		case "e":
			id, ok := parseID(args, 0)
			if !ok {
				continue
			}
			student, found := v.coord.Student(id)
			if !found {
				v.prompts.Printf("Aluno não encontrado.\n")
				continue
			}
			v.StartEdit(student)
			v.fillAndSubmit(ctx)
		case "x":
			id, ok := parseID(args, 0)
			if !ok {
				continue
			}
			v.deleteStudent(ctx, id)
		case "m":
			id, ok := parseID(args, 0)
			if !ok {
				continue
			}
			v.enrollFlow(ctx, id)
		case "d":
			studentID, ok := parseID(args, 0)
			if !ok {
				continue
			}
			courseID, ok := parseID(args, 1)
			if !ok {
				continue
			}
			if err := v.coord.Unenroll(ctx, studentID, courseID); err != nil {
				v.prompts.Printf("Erro ao desmatricular aluno.\n")
			}
		case "v":
			return
		}
	}
}

// reload fetches both collections the view renders from. They are independent
// requests, which is why eligibility is always recomputed instead of cached.
func (v *StudentsView) reload(ctx context.Context) error {
	if err := v.coord.Reload(ctx); err != nil {
		return err
	}

	courses, err := v.api.ListCourses(ctx)
	if err != nil {
		return err
	}
	v.courses = courses

	return nil
}

func (v *StudentsView) renderTable() {
	v.prompts.Printf("\n--- Alunos ---\n")
	v.prompts.Printf("%-4s %-25s %-30s %-12s %s\n", "ID", "Nome", "Email", "Matrícula", "Cursos")
	for _, s := range v.coord.Students() {
		names := make([]string, 0, len(s.Courses))
		for _, c := range s.Courses {
			names = append(names, c.Name)
		}
		v.prompts.Printf("%-4d %-25s %-30s %-12s %s\n",
			s.ID, s.Name, s.Email, s.Registration, strings.Join(names, ", "))
	}
}

// fillAndSubmit collects the field values and dispatches the form, keeping it
// open with the entered values when the server rejects the submission.
func (v *StudentsView) fillAndSubmit(ctx context.Context) {
	for v.form.Mode() != ModeList {
		v.fields.Name = v.prompts.ReadRequired("Nome", v.fields.Name)
		v.fields.Email = v.prompts.ReadRequired("Email", v.fields.Email)
		v.fields.Registration = v.prompts.ReadRequired("Matrícula", v.fields.Registration)

		if err := v.Submit(ctx); err != nil {
			v.prompts.Printf("Erro ao salvar aluno. Verifique os dados.\n")
			if !v.prompts.Confirm("Tentar novamente?") {
				v.form.Cancel()
			}
		}
	}
}

func (v *StudentsView) deleteStudent(ctx context.Context, id int64) {
	if !v.prompts.Confirm("Deseja realmente excluir este aluno?") {
		return
	}

	if err := v.api.DeleteStudent(ctx, id); err != nil {
		v.prompts.Printf("Erro ao deletar aluno.\n")
		return
	}

	if err := v.coord.Reload(ctx); err != nil {
		v.prompts.Printf("Erro ao carregar alunos.\n")
	}
}

// enrollFlow opens the course selector for a student and enrolls the chosen
// course. Only courses the student is not enrolled in are offered.
func (v *StudentsView) enrollFlow(ctx context.Context, studentID int64) {
	if _, found := v.coord.Student(studentID); !found {
		v.prompts.Printf("Aluno não encontrado.\n")
		return
	}

	v.coord.OpenSelector(studentID)

	eligible := v.coord.Eligible(v.courses, studentID)
	if len(eligible) == 0 {
		v.prompts.Printf("Nenhum curso disponível.\n")
		v.coord.CloseSelector()
		return
	}

	v.prompts.Printf("Cursos disponíveis:\n")
	for _, c := range eligible {
		v.prompts.Printf("  %d - %s (%dh)\n", c.ID, c.Name, c.WorkloadHours)
	}

	answer := v.prompts.ReadLine("Curso (id, vazio cancela)")
	if answer == "" {
		v.coord.CloseSelector()
		return
	}

	courseID, err := strconv.ParseInt(answer, 10, 64)
	if err != nil {
		v.prompts.Printf("Identificador inválido.\n")
		v.coord.CloseSelector()
		return
	}

	if err := v.coord.Enroll(ctx, studentID, courseID); err != nil {
		v.prompts.Printf("Erro ao matricular aluno.\n")
	}
}

// splitCommand separates the action letter from its arguments.
func splitCommand(cmd string) (string, []string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return "", nil
	}
	return strings.ToLower(parts[0]), parts[1:]
}

// parseID parses the nth argument as an entity ID.
func parseID(args []string, n int) (int64, bool) {
	if n >= len(args) {
		return 0, false
	}
	id, err := strconv.ParseInt(args[n], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
