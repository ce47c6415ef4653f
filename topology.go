package msgfsm

import (
	"encoding/json"
	"fmt"

	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
	"gopkg.in/yaml.v3"
)

// Topology describes an FSM's state table: every state with the message kinds
// it accepts, plus the transitions observed so far.
type Topology struct {
	Router      RouterID         `json:"router"                yaml:"router"`
	Initial     StateID          `json:"initial"               yaml:"initial"`
	Current     StateID          `json:"current"               yaml:"current"`
	Started     bool             `json:"started"               yaml:"started"`
	States      []StateInfo      `json:"states"                yaml:"states"`
	Transitions []TransitionInfo `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// StateInfo describes one registered state.
type StateInfo struct {
	ID      StateID       `json:"id"                yaml:"id"`
	Label   g.String      `json:"label"             yaml:"label"`
	Accepts []MessageKind `json:"accepts,omitempty" yaml:"accepts,omitempty"`
	OnEnter bool          `json:"on_enter"          yaml:"on_enter"`
	OnExit  bool          `json:"on_exit"           yaml:"on_exit"`
	Unknown bool          `json:"on_unknown"        yaml:"on_unknown"`
}

// TransitionInfo counts how often the FSM moved from one state to another.
type TransitionInfo struct {
	From  StateID `json:"from"  yaml:"from"`
	To    StateID `json:"to"    yaml:"to"`
	Count int     `json:"count" yaml:"count"`
}

// Topology returns the FSM's topology. Message labels come from the message
// table given with WithMessages.
func (f *FSM[C]) Topology() Topology {
	t := Topology{
		Router:  f.id,
		Initial: f.states[0].id,
		Current: f.current,
		Started: f.started,
		States:  make([]StateInfo, 0, len(f.states)),
	}

	for _, s := range f.states {
		info := StateInfo{
			ID:      s.id,
			Label:   s.label,
			OnEnter: s.enter != nil,
			OnExit:  s.exit != nil,
			Unknown: s.unknown != nil,
		}

		for id := range s.accepted.Iter() {
			info.Accepts = append(info.Accepts, Kind(id, f.messages.Label(id)))
		}

		t.States = append(t.States, info)
	}

	t.Transitions = f.transitions()

	return t
}

func (f *FSM[C]) transitions() g.Slice[TransitionInfo] {
	out := make(g.Slice[TransitionInfo], 0, len(f.edges))
	for e, n := range f.edges.Iter() {
		out.Push(TransitionInfo{From: e.from, To: e.to, Count: n})
	}

	out.SortBy(func(a, b TransitionInfo) cmp.Ordering {
		if a.From != b.From {
			return cmp.Cmp(a.From, b.From)
		}
		return cmp.Cmp(a.To, b.To)
	})

	return out
}

// JSON renders the topology as indented JSON.
func (t Topology) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}

	return data, nil
}

// YAML renders the topology as YAML.
func (t Topology) YAML() ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}

	return data, nil
}
