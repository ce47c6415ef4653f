package msgfsm

import (
	"fmt"

	"github.com/enetx/g"
)

// ErrNotStarted is returned when a message is delivered to an FSM that has not
// been started. No handler runs.
type ErrNotStarted struct {
	Router RouterID
}

func (e *ErrNotStarted) Error() string {
	return fmt.Sprintf("fsm: router %d received a message before Start", e.Router)
}

// ErrUnknownState is returned when a handler or an entry hook asks for a state
// that is not part of the state table. The FSM stays in the last valid state.
type ErrUnknownState struct {
	From  StateID
	State StateID
}

func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("fsm: transition from state %d to unregistered state %d", e.From, e.State)
}

// ErrChainLimit is returned when a single Receive or Start performs more
// transitions than the configured limit. This almost always means entry hooks
// redirect to each other in a cycle.
type ErrChainLimit struct {
	Limit int
	State StateID
}

func (e *ErrChainLimit) Error() string {
	return fmt.Sprintf("fsm: more than %d chained transitions, stopped in state %d", e.Limit, e.State)
}

// ErrCallback is returned when a handler or hook panics. It wraps the
// recovered value, allowing it to be inspected using errors.Is and errors.As.
type ErrCallback struct {
	// HookType is the callback that panicked: "OnEvent", "OnUnknown", "OnEnter" or "OnExit".
	HookType string
	// State is the state the callback belongs to.
	State StateID
	// Err is the error created after recovering from the panic.
	Err error
}

func (e *ErrCallback) Error() string {
	return fmt.Sprintf("fsm: error in %s callback for state %d: %v", e.HookType, e.State, e.Err)
}

// Unwrap provides compatibility with the standard library's errors package.
func (e *ErrCallback) Unwrap() error { return e.Err }

// ErrMessageMismatch is raised when a typed handler receives a message of an
// unexpected type under its id: two message kinds share one MessageID.
type ErrMessageMismatch struct {
	State   StateID
	Message MessageID
	Got     Message
}

func (e *ErrMessageMismatch) Error() string {
	return fmt.Sprintf("fsm: state %d handler for message %d received %T; message ids collide",
		e.State, e.Message, e.Got)
}

// ErrDuplicateMessage is returned by NewMessageTable when two kinds share an id.
type ErrDuplicateMessage struct {
	ID     MessageID
	First  g.String
	Second g.String
}

func (e *ErrDuplicateMessage) Error() string {
	return fmt.Sprintf("fsm: message id %d declared twice (%q and %q)", e.ID, e.First, e.Second)
}

// ErrDuplicateHandler is returned by New when a state registers two handlers
// for the same message id.
type ErrDuplicateHandler struct {
	State   StateID
	Message MessageID
}

func (e *ErrDuplicateHandler) Error() string {
	return fmt.Sprintf("fsm: state %d registers message %d twice", e.State, e.Message)
}

// ErrUndeclaredMessage is returned by New when a state accepts a message id
// missing from the configured MessageTable.
type ErrUndeclaredMessage struct {
	State   StateID
	Message MessageID
}

func (e *ErrUndeclaredMessage) Error() string {
	return fmt.Sprintf("fsm: state %d accepts message %d which is not declared", e.State, e.Message)
}

// ErrInvalidStateTable is returned by New when the states cannot form a dense
// table indexed by StateID.
type ErrInvalidStateTable struct {
	Index  int
	Reason string
}

func (e *ErrInvalidStateTable) Error() string {
	return fmt.Sprintf("fsm: invalid state table at index %d: %s", e.Index, e.Reason)
}
