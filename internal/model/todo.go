package model

// Todo is the domain model for a single list entry.
type Todo struct {
	Title     string
	Completed bool
	// Editing is reserved for an in-place edit mode. It is carried through
	// persistence but no transition sets it.
	Editing bool
	ID      int
}

// Filter narrows which todos are visible. It never changes the list itself.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

func (f Filter) String() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// State is the whole application state: the list (newest first), the draft
// being composed, the active filter, and the identifier counter.
type State struct {
	Todos  []Todo
	Draft  Todo
	Filter Filter
	NextID int
}

// InitialState seeds a fresh session: one example entry, an empty draft,
// counter past both.
func InitialState() State {
	return State{
		Todos:  []Todo{{Title: "The first todo", ID: 1}},
		Draft:  Todo{ID: 2},
		Filter: FilterAll,
		NextID: 3,
	}
}

// VisibleTodos returns the todos the given filter lets through. The input
// slice is never modified.
func VisibleTodos(todos []Todo, f Filter) []Todo {
	if f == FilterAll {
		out := make([]Todo, len(todos))
		copy(out, todos)
		return out
	}
	want := f == FilterCompleted
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if t.Completed == want {
			out = append(out, t)
		}
	}
	return out
}

// RemainingCount counts incomplete entries.
func RemainingCount(todos []Todo) int {
	n := 0
	for _, t := range todos {
		if !t.Completed {
			n++
		}
	}
	return n
}
