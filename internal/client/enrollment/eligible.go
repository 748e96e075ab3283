package enrollment

import "github.com/lcarvalho/academico/internal/app/models"

// EligibleCourses returns the courses the student is not yet enrolled in,
// preserving the order of the course listing. The result is recomputed on
// every call: the two collections are fetched independently and can be
// transiently inconsistent, so nothing here may be cached.
func EligibleCourses(all []models.Course, student *models.Student) []models.Course {
	if student == nil {
		return all
	}

	enrolled := make(map[int64]struct{}, len(student.Courses))
	for _, c := range student.Courses {
		enrolled[c.ID] = struct{}{}
	}

	eligible := make([]models.Course, 0, len(all))
	for _, course := range all {
		if _, ok := enrolled[course.ID]; !ok {
			eligible = append(eligible, course)
		}
	}

	return eligible
}
