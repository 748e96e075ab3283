package enrollment

// Selector tracks which student's "add enrollment" picker is open. It is a
// single slot: opening it for one student implicitly closes it for any other.
type Selector struct {
	studentID int64
	open      bool
}

// Open opens the selector for the given student, closing any other.
func (s *Selector) Open(studentID int64) {
	s.studentID = studentID
	s.open = true
}

// Close closes the selector.
func (s *Selector) Close() {
	s.studentID = 0
	s.open = false
}

// OpenFor returns the student the selector is open for, if any.
func (s *Selector) OpenFor() (int64, bool) {
	if !s.open {
		return 0, false
	}
	return s.studentID, true
}

// IsOpenFor reports whether the selector is open for the given student.
func (s *Selector) IsOpenFor(studentID int64) bool {
	return s.open && s.studentID == studentID
}
