package msgfsm

import (
	"encoding/json"

	"github.com/enetx/g"
)

// Status is a serializable report of where an FSM currently is.
// It is meant for diagnostics; there is no way to restore an FSM from it.
type Status struct {
	Router  RouterID `json:"router"`
	State   StateID  `json:"state"`
	Label   g.String `json:"label"`
	Started bool     `json:"started"`
}

// Status returns the FSM's current status.
func (f *FSM[C]) Status() Status {
	return Status{
		Router:  f.id,
		State:   f.current,
		Label:   f.Label(f.current),
		Started: f.started,
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (f *FSM[C]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Status())
}
