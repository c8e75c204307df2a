package model

// Action is a discrete event that may transition State. The set is closed;
// Reduce handles every variant.
type Action interface {
	isAction()
}

// Add submits the current draft to the top of the list and resets the draft.
type Add struct{}

// Complete marks every entry matching Todo's identifier as completed. The
// replacement row is built from the payload, not from the stored row.
type Complete struct {
	Todo Todo
}

// Uncomplete is the symmetric counterpart of Complete.
type Uncomplete struct {
	Todo Todo
}

// Delete removes every entry matching Todo's identifier.
type Delete struct {
	Todo Todo
}

// UpdateField replaces the draft's title with the field's current text.
type UpdateField struct {
	Title string
}

// SetFilter switches the active display filter.
type SetFilter struct {
	Filter Filter
}

// ClearCompleted drops every completed entry.
type ClearCompleted struct{}

// SetModel replaces the whole State, used when a persisted value arrives
// from storage. Dispatching it must not write back to storage.
type SetModel struct {
	State State
}

// NoOp leaves State untouched.
type NoOp struct{}

func (Add) isAction()            {}
func (Complete) isAction()       {}
func (Uncomplete) isAction()     {}
func (Delete) isAction()         {}
func (UpdateField) isAction()    {}
func (SetFilter) isAction()      {}
func (ClearCompleted) isAction() {}
func (SetModel) isAction()       {}
func (NoOp) isAction()           {}
