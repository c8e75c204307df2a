// Package codec converts State to and from its persisted JSON form.
//
// The layout is the storage contract: exactly one object with "todos",
// "todo", "filter" and "nextIdentifier" keys. Decoding is strict — a missing
// or mistyped key, or an unknown filter tag, fails the whole decode rather
// than reconstructing a partial state.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/idilsaglam/tidy/internal/model"
)

// DecodeError is the only error class the codec produces: the payload is not
// a well-formed State.
type DecodeError struct {
	msg string
	err error
}

func (e *DecodeError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("decode state: %s: %v", e.msg, e.err)
	}
	return "decode state: " + e.msg
}

func (e *DecodeError) Unwrap() error { return e.err }

type todoJSON struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	Editing   *bool   `json:"editing"`
	ID        *int    `json:"identifier"`
}

type stateJSON struct {
	Todos  *[]todoJSON `json:"todos"`
	Todo   *todoJSON   `json:"todo"`
	Filter *string     `json:"filter"`
	NextID *int        `json:"nextIdentifier"`
}

// Encode renders s in the persisted layout, indented for a human-readable
// file.
func Encode(s model.State) ([]byte, error) {
	out := stateJSON{
		Todos:  ptr(make([]todoJSON, 0, len(s.Todos))),
		Todo:   ptr(todoToJSON(s.Draft)),
		Filter: ptr(s.Filter.String()),
		NextID: ptr(s.NextID),
	}
	for _, t := range s.Todos {
		*out.Todos = append(*out.Todos, todoToJSON(t))
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses data back into a State. Failures are always *DecodeError.
func Decode(data []byte) (model.State, error) {
	var in stateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return model.State{}, &DecodeError{msg: "not a valid state object", err: err}
	}
	switch {
	case in.Todos == nil:
		return model.State{}, &DecodeError{msg: `missing key "todos"`}
	case in.Todo == nil:
		return model.State{}, &DecodeError{msg: `missing key "todo"`}
	case in.Filter == nil:
		return model.State{}, &DecodeError{msg: `missing key "filter"`}
	case in.NextID == nil:
		return model.State{}, &DecodeError{msg: `missing key "nextIdentifier"`}
	}

	todos := make([]model.Todo, 0, len(*in.Todos))
	for i, tj := range *in.Todos {
		t, err := todoFromJSON(tj, fmt.Sprintf("todos[%d]", i))
		if err != nil {
			return model.State{}, err
		}
		todos = append(todos, t)
	}
	draft, err := todoFromJSON(*in.Todo, "todo")
	if err != nil {
		return model.State{}, err
	}
	filter, err := filterFromTag(*in.Filter)
	if err != nil {
		return model.State{}, err
	}

	return model.State{
		Todos:  todos,
		Draft:  draft,
		Filter: filter,
		NextID: *in.NextID,
	}, nil
}

func todoToJSON(t model.Todo) todoJSON {
	return todoJSON{
		Title:     ptr(t.Title),
		Completed: ptr(t.Completed),
		Editing:   ptr(t.Editing),
		ID:        ptr(t.ID),
	}
}

func todoFromJSON(t todoJSON, where string) (model.Todo, error) {
	switch {
	case t.Title == nil:
		return model.Todo{}, &DecodeError{msg: where + `: missing key "title"`}
	case t.Completed == nil:
		return model.Todo{}, &DecodeError{msg: where + `: missing key "completed"`}
	case t.Editing == nil:
		return model.Todo{}, &DecodeError{msg: where + `: missing key "editing"`}
	case t.ID == nil:
		return model.Todo{}, &DecodeError{msg: where + `: missing key "identifier"`}
	}
	return model.Todo{
		Title:     *t.Title,
		Completed: *t.Completed,
		Editing:   *t.Editing,
		ID:        *t.ID,
	}, nil
}

// filterFromTag accepts exactly the three persisted tags. Anything else is
// rejected rather than coerced to All, so corrupt storage fails loud.
func filterFromTag(tag string) (model.Filter, error) {
	switch tag {
	case "All":
		return model.FilterAll, nil
	case "Active":
		return model.FilterActive, nil
	case "Completed":
		return model.FilterCompleted, nil
	}
	return 0, &DecodeError{msg: fmt.Sprintf("unknown filter tag %q", tag)}
}

func ptr[T any](v T) *T { return &v }
