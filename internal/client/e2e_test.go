package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/app/models/dto"
	"github.com/lcarvalho/academico/internal/client"
	"github.com/lcarvalho/academico/internal/client/enrollment"
	"github.com/lcarvalho/academico/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer is an in-memory rendition of the records API with the same
// semantics as the real one: Basic auth on every route, duplicate enrollments
// rejected with 409, unenroll of an absent pair silently successful.
type fakeServer struct {
	token    string
	students map[int64]*models.Student
	courses  map[int64]*models.Course
	nextID   int64
}

func newFakeServer(token string) *fakeServer {
	return &fakeServer{
		token:    token,
		students: map[int64]*models.Student{},
		courses:  map[int64]*models.Course{},
		nextID:   1,
	}
}

func (s *fakeServer) fail(w http.ResponseWriter, status int, code dto.ErrorCode, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

func (s *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Basic "+s.token {
		s.fail(w, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "alunos":
		s.serveStudents(w, r)
	case len(parts) == 2 && parts[0] == "alunos":
		s.serveStudent(w, r, parts[1])
	case len(parts) == 4 && parts[0] == "alunos" && parts[2] == "cursos":
		s.serveEnrollment(w, r, parts[1], parts[3])
	case len(parts) == 1 && parts[0] == "cursos":
		s.serveCourses(w, r)
	default:
		s.fail(w, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")
	}
}

func (s *fakeServer) serveStudents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		out := make([]models.Student, 0, len(s.students))
		for id := int64(1); id < s.nextID; id++ {
			if student, ok := s.students[id]; ok {
				out = append(out, *student)
			}
		}
		json.NewEncoder(w).Encode(out)
	case http.MethodPost:
		var student models.Student
		json.NewDecoder(r.Body).Decode(&student)
		student.ID = s.nextID
		s.nextID++
		s.students[student.ID] = &student
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(student)
	}
}

func (s *fakeServer) serveStudent(w http.ResponseWriter, r *http.Request, rawID string) {
	id, _ := strconv.ParseInt(rawID, 10, 64)
	student, ok := s.students[id]
	if !ok {
		s.fail(w, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		json.NewEncoder(w).Encode(student)
	case http.MethodPut:
		var updated models.Student
		json.NewDecoder(r.Body).Decode(&updated)
		student.Name = updated.Name
		student.Email = updated.Email
		student.Registration = updated.Registration
		json.NewEncoder(w).Encode(student)
	case http.MethodDelete:
		delete(s.students, id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *fakeServer) serveEnrollment(w http.ResponseWriter, r *http.Request, rawStudentID, rawCourseID string) {
	studentID, _ := strconv.ParseInt(rawStudentID, 10, 64)
	courseID, _ := strconv.ParseInt(rawCourseID, 10, 64)

	student, ok := s.students[studentID]
	if !ok {
		s.fail(w, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found")
		return
	}
	course, ok := s.courses[courseID]
	if !ok {
		s.fail(w, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
		return
	}

	switch r.Method {
	case http.MethodPost:
		if student.IsEnrolledIn(courseID) {
			s.fail(w, http.StatusConflict, dto.ErrorCodeResourceConflict, "Student is already enrolled in this course")
			return
		}
		student.Courses = append(student.Courses, models.CourseSummary{
			ID: course.ID, Name: course.Name, WorkloadHours: course.WorkloadHours,
		})
		json.NewEncoder(w).Encode(student)
	case http.MethodDelete:
		kept := student.Courses[:0]
		for _, c := range student.Courses {
			if c.ID != courseID {
				kept = append(kept, c)
			}
		}
		student.Courses = kept
		json.NewEncoder(w).Encode(student)
	}
}

func (s *fakeServer) serveCourses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		out := make([]models.Course, 0, len(s.courses))
		for id := int64(1); id < s.nextID; id++ {
			if course, ok := s.courses[id]; ok {
				out = append(out, *course)
			}
		}
		json.NewEncoder(w).Encode(out)
	case http.MethodPost:
		var course models.Course
		json.NewDecoder(r.Body).Decode(&course)
		course.ID = s.nextID
		s.nextID++
		s.courses[course.ID] = &course
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(course)
	}
}

type yesConfirmer struct{ asked int }

func (y *yesConfirmer) Confirm(string) bool {
	y.asked++
	return true
}

type e2eFixture struct {
	store   *session.Store
	api     *client.Client
	coord   *enrollment.Coordinator
	server  *fakeServer
	confirm *yesConfirmer
}

func newE2EFixture(t *testing.T) *e2eFixture {
	t.Helper()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	token, err := store.Login("admin", "admin123")
	require.NoError(t, err)

	server := newFakeServer(token)
	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)

	api := client.NewClient(ts.URL, store)
	confirm := &yesConfirmer{}
	return &e2eFixture{
		store:   store,
		api:     api,
		coord:   enrollment.NewCoordinator(api, confirm),
		server:  server,
		confirm: confirm,
	}
}

func TestSessionLifecycle(t *testing.T) {
	f := newE2EFixture(t)
	ctx := context.Background()

	students, err := f.api.ListStudents(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)

	require.NoError(t, f.store.Logout())
	assert.False(t, f.store.IsAuthenticated())

	_, err = f.api.ListStudents(ctx)
	require.Error(t, err)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsUnauthorized())
}

func TestEnrollmentLifecycle(t *testing.T) {
	f := newE2EFixture(t)
	ctx := context.Background()

	student, err := f.api.CreateStudent(ctx, &models.Student{
		Name: "Ana", Email: "ana@example.com", Registration: "2024001",
	})
	require.NoError(t, err)

	algoritmos, err := f.api.CreateCourse(ctx, &models.Course{Name: "Algoritmos", WorkloadHours: 40})
	require.NoError(t, err)
	redes, err := f.api.CreateCourse(ctx, &models.Course{Name: "Redes", WorkloadHours: 60})
	require.NoError(t, err)

	require.NoError(t, f.coord.Reload(ctx))
	all, err := f.api.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, f.coord.Eligible(all, student.ID), 2)

	f.coord.OpenSelector(student.ID)
	require.NoError(t, f.coord.Enroll(ctx, student.ID, algoritmos.ID))

	_, open := f.coord.SelectorOpenFor()
	assert.False(t, open)

	eligible := f.coord.Eligible(all, student.ID)
	require.Len(t, eligible, 1)
	assert.Equal(t, redes.ID, eligible[0].ID)

	refreshed, ok := f.coord.Student(student.ID)
	require.True(t, ok)
	assert.True(t, refreshed.IsEnrolledIn(algoritmos.ID))
}

func TestDuplicateEnrollmentRejected(t *testing.T) {
	f := newE2EFixture(t)
	ctx := context.Background()

	student, err := f.api.CreateStudent(ctx, &models.Student{
		Name: "Ana", Email: "ana@example.com", Registration: "2024001",
	})
	require.NoError(t, err)
	course, err := f.api.CreateCourse(ctx, &models.Course{Name: "Algoritmos", WorkloadHours: 40})
	require.NoError(t, err)

	require.NoError(t, f.coord.Reload(ctx))
	require.NoError(t, f.coord.Enroll(ctx, student.ID, course.ID))

	err = f.coord.Enroll(ctx, student.ID, course.ID)

	require.Error(t, err)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsConflict())

	refreshed, _ := f.coord.Student(student.ID)
	assert.Len(t, refreshed.Courses, 1)
}

func TestUnenrollIdempotence(t *testing.T) {
	f := newE2EFixture(t)
	ctx := context.Background()

	student, err := f.api.CreateStudent(ctx, &models.Student{
		Name: "Ana", Email: "ana@example.com", Registration: "2024001",
	})
	require.NoError(t, err)
	course, err := f.api.CreateCourse(ctx, &models.Course{Name: "Algoritmos", WorkloadHours: 40})
	require.NoError(t, err)

	require.NoError(t, f.coord.Reload(ctx))
	require.NoError(t, f.coord.Enroll(ctx, student.ID, course.ID))

	require.NoError(t, f.coord.Unenroll(ctx, student.ID, course.ID))
	assert.Equal(t, 1, f.confirm.asked)

	refreshed, _ := f.coord.Student(student.ID)
	assert.False(t, refreshed.IsEnrolledIn(course.ID))

	// Removing the same pair again succeeds without error
	require.NoError(t, f.coord.Unenroll(ctx, student.ID, course.ID))
	refreshed, _ = f.coord.Student(student.ID)
	assert.Empty(t, refreshed.Courses)
}
