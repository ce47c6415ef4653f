package msgfsm

import "github.com/enetx/g"

// Router is the addressable delivery contract. An FSM is a Router, and so is
// the discarding NullRouter, so event sources never need to tell them apart.
type Router interface {
	Receive(sender Router, msg Message) error
	Accepts(id MessageID) bool
	AcceptsMessage(msg Message) bool
	RouterID() RouterID
}

// StateMachine is the engine surface shared by FSM and SyncFSM.
type StateMachine interface {
	Router
	Start() error
	Reset()
	IsStarted() bool
	StateID() StateID
	States() g.Slice[StateID]
	Topology() Topology
	ToDOT() g.String
	MarshalJSON() ([]byte, error)
}

// Interface compliance checks.
var (
	_ Router       = NullRouter{}
	_ StateMachine = (*FSM[struct{}])(nil)
	_ StateMachine = (*SyncFSM[struct{}])(nil)
)
