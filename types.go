package msgfsm

import (
	"log/slog"
	"sync"

	"github.com/enetx/g"
)

type (
	// MessageID identifies a message kind. Identifiers are small and dense so
	// they can index dispatch tables directly.
	MessageID uint8
	// StateID identifies a state within one FSM. It is also the state's index
	// in the FSM's state table.
	StateID uint8
	// RouterID addresses a Router.
	RouterID uint8

	// Handler reacts to a message delivered to a state and returns the state
	// to transition into. Returning the state's own id means "stay".
	Handler[C any] func(c *C, sender Router, msg Message) StateID
	// EnterFunc runs right after a state becomes current. A result other than
	// the state's own id requests an immediate chained transition.
	EnterFunc[C any] func(c *C) StateID
	// ExitFunc runs right before the FSM switches away from a state.
	ExitFunc[C any] func(c *C)

	// State is a named mode of behavior bound to a StateID. It declares the
	// message kinds it accepts and owns the handlers for them.
	State[C any] struct {
		id       StateID
		label    g.String
		accepted g.Slice[MessageID]
		handlers g.Slice[Handler[C]] // indexed by MessageID
		unknown  Handler[C]
		enter    EnterFunc[C]
		exit     ExitFunc[C]
		err      error
	}

	// edge is an observed transition between two states.
	edge struct {
		from, to StateID
	}

	// FSM is the dispatch engine. It owns its states, tracks the current one
	// and routes each received message to it.
	FSM[C any] struct {
		id       RouterID
		common   *C
		states   g.Slice[*State[C]]
		accepted g.Set[MessageID]
		current  StateID
		started  bool
		edges    g.Map[edge, int]

		// hook tracks the callback being run so a recovered panic can be
		// attributed to it.
		hook      string
		hookState StateID

		messages       *MessageTable
		logger         *slog.Logger
		observer       Observer
		maxTransitions int
		startEntry     bool
	}

	// SyncFSM is a thread-safe wrapper around an FSM.
	// The FSM itself performs no locking; SyncFSM serialises every call so
	// several goroutines may deliver messages into the same engine.
	SyncFSM[C any] struct {
		fsm *FSM[C]
		mu  sync.Mutex
	}
)
