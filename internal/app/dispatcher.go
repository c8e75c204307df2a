// Package app owns the live State. Everything else either reads snapshots or
// goes through Dispatch.
package app

import (
	"log/slog"

	"github.com/idilsaglam/tidy/internal/model"
)

// Saver is the outbound half of the storage channel.
type Saver interface {
	Save(model.State) error
}

// Dispatcher is the single ownership point for State: one mutation entry,
// the pure reducer inside, the persistence side effect after.
type Dispatcher struct {
	state model.State
	store Saver
}

func New(initial model.State, store Saver) *Dispatcher {
	return &Dispatcher{state: initial, store: store}
}

// State returns the current snapshot.
func (d *Dispatcher) State() model.State { return d.state }

// Dispatch runs the reducer and persists the result. SetModel and NoOp are
// exempt from the write: the former's value already came from storage,
// the latter changed nothing. The write is fire-and-forget — a failure is
// logged and the new state stands.
func (d *Dispatcher) Dispatch(a model.Action) model.State {
	d.state = model.Reduce(a, d.state)
	if model.Persists(a) {
		if err := d.store.Save(d.state); err != nil {
			slog.Warn("state not persisted", "err", err)
		}
	}
	return d.state
}
