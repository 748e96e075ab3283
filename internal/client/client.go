package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lcarvalho/academico/internal/app/models"
	"github.com/lcarvalho/academico/internal/app/models/dto"
)

// TokenSource supplies the current credential token, or "" when no session exists.
type TokenSource interface {
	Token() string
}

// APIError carries the HTTP status and server-provided message of a failed call.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the error is a 404 response.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsConflict reports whether the error is a 409 response.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// IsUnauthorized reports whether the error is a 401 response.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Client is a thin wrapper over the remote API. Every call attaches the
// session credential when one exists and decodes the response body. Calls are
// never retried, cached or deduplicated.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates an API client for the given base URL.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		tokens: tokens,
	}
}

// do runs one request against the API. A non-2xx response is turned into an
// *APIError carrying the status and the server message when one is present.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Basic "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// decodeAPIError extracts the server error message from a failed response.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	var errResp dto.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil &&
		errResp.Error != nil && errResp.Error.Message != "" {
		apiErr.Message = errResp.Error.Message
	}

	return apiErr
}

// ListStudents retrieves all students with their enrolled courses.
func (c *Client) ListStudents(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := c.do(ctx, http.MethodGet, "/alunos", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudent retrieves a single student by ID.
func (c *Client) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/alunos/%d", id), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// CreateStudent creates a new student.
func (c *Client) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	var created models.Student
	if err := c.do(ctx, http.MethodPost, "/alunos", student, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStudent updates an existing student.
func (c *Client) UpdateStudent(ctx context.Context, id int64, student *models.Student) (*models.Student, error) {
	var updated models.Student
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/alunos/%d", id), student, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStudent deletes a student by ID.
func (c *Client) DeleteStudent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/alunos/%d", id), nil, nil)
}

// Enroll enrolls a student in a course and returns the refreshed student.
func (c *Client) Enroll(ctx context.Context, studentID, courseID int64) (*models.Student, error) {
	var student models.Student
	path := fmt.Sprintf("/alunos/%d/cursos/%d", studentID, courseID)
	if err := c.do(ctx, http.MethodPost, path, nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Unenroll removes a student from a course and returns the refreshed student.
func (c *Client) Unenroll(ctx context.Context, studentID, courseID int64) (*models.Student, error) {
	var student models.Student
	path := fmt.Sprintf("/alunos/%d/cursos/%d", studentID, courseID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListCourses retrieves all courses with their enrolled students.
func (c *Client) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := c.do(ctx, http.MethodGet, "/cursos", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetCourse retrieves a single course by ID.
func (c *Client) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cursos/%d", id), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// CreateCourse creates a new course.
func (c *Client) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	var created models.Course
	if err := c.do(ctx, http.MethodPost, "/cursos", course, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCourse updates an existing course.
func (c *Client) UpdateCourse(ctx context.Context, id int64, course *models.Course) (*models.Course, error) {
	var updated models.Course
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/cursos/%d", id), course, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCourse deletes a course by ID.
func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cursos/%d", id), nil, nil)
}
