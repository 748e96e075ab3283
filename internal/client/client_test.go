package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/app/models/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClientAttachesAuthorizationHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Student{})
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("YWRtaW46YWRtaW4xMjM="))
	_, err := c.ListStudents(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Basic YWRtaW46YWRtaW4xMjM=", gotAuth)
}

func TestClientOmitsAuthorizationWhenLoggedOut(t *testing.T) {
	var gotAuth string
	var authPresent bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, authPresent = r.Header["Authorization"]
		json.NewEncoder(w).Encode([]models.Student{})
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken(""))
	_, err := c.ListStudents(context.Background())

	require.NoError(t, err)
	assert.False(t, authPresent)
	assert.Empty(t, gotAuth)
}

func TestClientDecodesStudents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/alunos", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Student{
			{
				ID:           1,
				Name:         "Ana",
				Email:        "ana@example.com",
				Registration: "2024001",
				Courses:      []models.CourseSummary{{ID: 10, Name: "Algoritmos", WorkloadHours: 40}},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("tok"))
	students, err := c.ListStudents(context.Background())

	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Ana", students[0].Name)
	assert.True(t, students[0].IsEnrolledIn(10))
}

func TestClientCreateStudent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/alunos", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body models.Student
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		body.ID = 42

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("tok"))
	created, err := c.CreateStudent(context.Background(), &models.Student{
		Name:         "Ana",
		Email:        "ana@example.com",
		Registration: "2024001",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, "Ana", created.Name)
}

func TestClientEnrollUsesNestedPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/alunos/1/cursos/10", r.URL.Path)
		json.NewEncoder(w).Encode(models.Student{ID: 1, Courses: []models.CourseSummary{{ID: 10}}})
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("tok"))
	student, err := c.Enroll(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.True(t, student.IsEnrolledIn(10))
}

func TestClientDeleteStudent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/alunos/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("tok"))

	assert.NoError(t, c.DeleteStudent(context.Background(), 7))
}

func TestClientPropagatesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceConflict, "Student is already enrolled in this course"),
		))
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("tok"))
	_, err := c.Enroll(context.Background(), 1, 10)

	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsConflict())
	assert.Equal(t, "Student is already enrolled in this course", apiErr.Message)
}

func TestClientFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("tok"))
	_, err := c.ListCourses(context.Background())

	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
}

func TestClientUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		))
	}))
	defer server.Close()

	c := NewClient(server.URL, staticToken("stale"))
	_, err := c.ListStudents(context.Background())

	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsUnauthorized())
}
