package views

import (
	"context"
	"strconv"

	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/client"
)

// CourseForm holds the entered field values for the course form.
type CourseForm struct {
	Name          string
	WorkloadHours string
}

// CoursesView renders the course table and dispatches CRUD operations.
type CoursesView struct {
	api     *client.Client
	prompts *Prompter

	form    FormState
	fields  CourseForm
	courses []models.Course
}

// NewCoursesView creates the courses view.
func NewCoursesView(api *client.Client, prompts *Prompter) *CoursesView {
	return &CoursesView{
		api:     api,
		prompts: prompts,
	}
}

// Form exposes the current form state for inspection.
func (v *CoursesView) Form() *FormState {
	return &v.form
}

// Fields exposes the entered field values for inspection.
func (v *CoursesView) Fields() CourseForm {
	return v.fields
}

// StartCreate opens the create form with empty fields.
func (v *CoursesView) StartCreate() {
	v.form.StartCreate()
	v.fields = CourseForm{}
}

// StartEdit opens the edit form pre-populated from the course.
func (v *CoursesView) StartEdit(course *models.Course) {
	v.form.StartEdit(course.ID)
	v.fields = CourseForm{
		Name:          course.Name,
		WorkloadHours: strconv.Itoa(course.WorkloadHours),
	}
}

// SetFields replaces the entered field values.
func (v *CoursesView) SetFields(fields CourseForm) {
	v.fields = fields
}

// Submit dispatches the form, keeping the entered values on failure.
func (v *CoursesView) Submit(ctx context.Context) error {
	if !v.form.BeginSubmit() {
		return nil
	}

	hours, err := strconv.Atoi(v.fields.WorkloadHours)
	if err != nil {
		// Surfaced like a server rejection: form stays open, values kept
		v.form.EndSubmit(false)
		return err
	}

	course := &models.Course{
		Name:          v.fields.Name,
		WorkloadHours: hours,
	}

	if v.form.Mode() == ModeEdit {
		_, err = v.api.UpdateCourse(ctx, v.form.EditingID(), course)
	} else {
		_, err = v.api.CreateCourse(ctx, course)
	}

	v.form.EndSubmit(err == nil)
	if err != nil {
		return err
	}

	v.fields = CourseForm{}
	return nil
}

// Run drives the view loop until the user goes back.
func (v *CoursesView) Run(ctx context.Context) {
	for {
		if err := v.reload(ctx); err != nil {
			v.prompts.Printf("Erro ao carregar cursos.\n")
		}

		v.renderTable()

		cmd := v.prompts.ReadLine("[n]ovo  [e]ditar <id>  [x]excluir <id>  [v]oltar")
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
			course, found := v.course(id)
			if !found {
				v.prompts.Printf("Curso não encontrado.\n")
				continue
			}
			v.StartEdit(course)
			v.fillAndSubmit(ctx)
		case "x":
			id, ok := parseID(args, 0)
			if !ok {
				continue
			}
			v.deleteCourse(ctx, id)
		case "v":
			return
		}
	}
}

func (v *CoursesView) reload(ctx context.Context) error {
	courses, err := v.api.ListCourses(ctx)
	if err != nil {
		return err
	}
	v.courses = courses
	return nil
}

func (v *CoursesView) course(id int64) (*models.Course, bool) {
	for i := range v.courses {
		if v.courses[i].ID == id {
			return &v.courses[i], true
		}
	}
	return nil, false
}

func (v *CoursesView) renderTable() {
	v.prompts.Printf("\n--- Cursos ---\n")
	v.prompts.Printf("%-4s %-30s %-14s %s\n", "ID", "Nome", "Carga Horária", "Alunos Matriculados")
	for _, c := range v.courses {
		v.prompts.Printf("%-4d %-30s %-14s %d\n",
			c.ID, c.Name, strconv.Itoa(c.WorkloadHours)+"h", len(c.Students))
	}
}

func (v *CoursesView) fillAndSubmit(ctx context.Context) {
	for v.form.Mode() != ModeList {
		v.fields.Name = v.prompts.ReadRequired("Nome do Curso", v.fields.Name)
		v.fields.WorkloadHours = v.prompts.ReadRequired("Carga Horária (horas)", v.fields.WorkloadHours)

		if err := v.Submit(ctx); err != nil {
			v.prompts.Printf("Erro ao salvar curso. Verifique os dados.\n")
			if !v.prompts.Confirm("Tentar novamente?") {
				v.form.Cancel()
			}
		}
	}
}

func (v *CoursesView) deleteCourse(ctx context.Context, id int64) {
	if !v.prompts.Confirm("Deseja realmente excluir este curso?") {
		return
	}

	if err := v.api.DeleteCourse(ctx, id); err != nil {
		v.prompts.Printf("Erro ao deletar curso.\n")
	}
}
