package views

// FormMode is the state of an entity view: showing the list, creating a new
// entity, or editing an existing one.
type FormMode int

const (
	// ModeList shows the entity table
	ModeList FormMode = iota
	// ModeCreate shows an empty form
	ModeCreate
	// ModeEdit shows a form pre-populated from the selected entity
	ModeEdit
)

// FormState drives the list/create/edit state machine shared by the entity
// views. Submission is guarded so a form cannot be dispatched twice while a
// request is in flight.
type FormState struct {
	mode       FormMode
	editingID  int64
	submitting bool
}

// Mode returns the current form mode.
func (f *FormState) Mode() FormMode {
	return f.mode
}

// EditingID returns the ID of the entity being edited, 0 outside ModeEdit.
func (f *FormState) EditingID() int64 {
	return f.editingID
}

// StartCreate switches to the empty create form.
func (f *FormState) StartCreate() {
	f.mode = ModeCreate
	f.editingID = 0
}

// StartEdit switches to the edit form for the given entity.
func (f *FormState) StartEdit(id int64) {
	f.mode = ModeEdit
	f.editingID = id
}

// Cancel returns to the list without submitting.
func (f *FormState) Cancel() {
	f.mode = ModeList
	f.editingID = 0
	f.submitting = false
}

// BeginSubmit marks the form as in flight. It returns false when a submit is
// already in progress, so the caller must drop the duplicate dispatch.
func (f *FormState) BeginSubmit() bool {
	if f.submitting {
		return false
	}
	f.submitting = true
	return true
}

// EndSubmit finishes a submission. On success the view returns to the list;
// on failure it stays on the form so the entered values are not lost.
func (f *FormState) EndSubmit(success bool) {
	f.submitting = false
	if success {
		f.mode = ModeList
		f.editingID = 0
	}
}
