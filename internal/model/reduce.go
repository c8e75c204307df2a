package model

// Reduce maps an action and the current state to the next state. It is pure
// and total: no I/O, no mutation of the input, every action handled.
// Persistence happens in the caller, after the fact.
func Reduce(a Action, s State) State {
	switch a := a.(type) {
	case Add:
		todos := make([]Todo, 0, len(s.Todos)+1)
		todos = append(todos, s.Draft)
		todos = append(todos, s.Todos...)
		return State{
			Todos:  todos,
			Draft:  Todo{ID: s.NextID},
			Filter: s.Filter,
			NextID: s.NextID + 1,
		}

	case Complete:
		return withTodos(s, setCompleted(s.Todos, a.Todo, true))

	case Uncomplete:
		return withTodos(s, setCompleted(s.Todos, a.Todo, false))

	case Delete:
		out := make([]Todo, 0, len(s.Todos))
		for _, t := range s.Todos {
			if t.ID != a.Todo.ID {
				out = append(out, t)
			}
		}
		return withTodos(s, out)

	case UpdateField:
		draft := s.Draft
		draft.Title = a.Title
		next := s
		next.Draft = draft
		return next

	case SetFilter:
		next := s
		next.Filter = a.Filter
		return next

	case ClearCompleted:
		out := make([]Todo, 0, len(s.Todos))
		for _, t := range s.Todos {
			if !t.Completed {
				out = append(out, t)
			}
		}
		return withTodos(s, out)

	case SetModel:
		return a.State

	case NoOp:
		return s
	}
	return s
}

// setCompleted replaces every row matching target's identifier with the
// target itself, completion flag forced. Relative order is preserved.
func setCompleted(todos []Todo, target Todo, done bool) []Todo {
	out := make([]Todo, len(todos))
	for i, t := range todos {
		if t.ID == target.ID {
			r := target
			r.Completed = done
			out[i] = r
			continue
		}
		out[i] = t
	}
	return out
}

func withTodos(s State, todos []Todo) State {
	next := s
	next.Todos = todos
	return next
}

// Persists reports whether dispatching a should be followed by a storage
// write. SetModel already came from storage and NoOp changed nothing, so
// both are excluded.
func Persists(a Action) bool {
	switch a.(type) {
	case SetModel, NoOp:
		return false
	}
	return true
}
