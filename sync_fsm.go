package msgfsm

import "github.com/enetx/g"

// NewSync wraps f so it can be shared between goroutines. f must not be used
// directly afterwards.
func NewSync[C any](f *FSM[C]) *SyncFSM[C] { return &SyncFSM[C]{fsm: f} }

// Receive is the thread-safe version of FSM.Receive.
// The whole dispatch, chained transitions included, runs under the lock.
func (sf *SyncFSM[C]) Receive(sender Router, msg Message) error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	return sf.fsm.Receive(sender, msg)
}

// Accepts is the thread-safe version of FSM.Accepts.
// The accepted set is fixed at construction, so no lock is taken.
func (sf *SyncFSM[C]) Accepts(id MessageID) bool { return sf.fsm.Accepts(id) }

// AcceptsMessage is the thread-safe version of FSM.AcceptsMessage.
func (sf *SyncFSM[C]) AcceptsMessage(msg Message) bool { return sf.fsm.AcceptsMessage(msg) }

// RouterID returns the wrapped FSM's router id.
func (sf *SyncFSM[C]) RouterID() RouterID { return sf.fsm.RouterID() }

// Start is the thread-safe version of FSM.Start.
func (sf *SyncFSM[C]) Start() error {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	return sf.fsm.Start()
}

// Reset is the thread-safe version of FSM.Reset.
func (sf *SyncFSM[C]) Reset() {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	sf.fsm.Reset()
}

// IsStarted is the thread-safe version of FSM.IsStarted.
func (sf *SyncFSM[C]) IsStarted() bool {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	return sf.fsm.IsStarted()
}

// StateID is the thread-safe version of FSM.StateID.
func (sf *SyncFSM[C]) StateID() StateID {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	return sf.fsm.StateID()
}

// States returns the ids of all registered states.
func (sf *SyncFSM[C]) States() g.Slice[StateID] { return sf.fsm.States() }

// Do runs fn with exclusive access to the wrapped FSM, for reading the shared
// context consistently between dispatches.
func (sf *SyncFSM[C]) Do(fn func(f *FSM[C])) {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	fn(sf.fsm)
}

// Topology is the thread-safe version of FSM.Topology.
func (sf *SyncFSM[C]) Topology() Topology {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	return sf.fsm.Topology()
}

// ToDOT is the thread-safe version of FSM.ToDOT.
func (sf *SyncFSM[C]) ToDOT() g.String {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	return sf.fsm.ToDOT()
}

// MarshalJSON implements the json.Marshaler interface for thread-safe
// serialization of the FSM's status.
func (sf *SyncFSM[C]) MarshalJSON() ([]byte, error) {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	return sf.fsm.MarshalJSON()
}
