// Package msgfsm provides a finite state machine whose states react to typed
// messages identified by small integer ids. States are registered once, each
// declaring the message kinds it accepts; the engine routes every received
// message to the current state, applies the returned transition and follows
// any transitions requested by entry hooks until the machine settles.
//
// Dispatch is synchronous and the FSM performs no locking. Use SyncFSM when
// several goroutines deliver into the same engine.
package msgfsm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/enetx/g"
)

const (
	hookEvent   = "OnEvent"
	hookUnknown = "OnUnknown"
	hookEnter   = "OnEnter"
	hookExit    = "OnExit"
)

// New assembles an FSM addressed by id. states[i] must carry StateID(i); the
// first state is the initial one. common is the shared context handed to
// every handler and hook.
func New[C any](id RouterID, common *C, states []*State[C], opts ...Option) (*FSM[C], error) {
	if len(states) == 0 {
		return nil, &ErrInvalidStateTable{Reason: "no states"}
	}

	if len(states) > int(^StateID(0))+1 {
		return nil, &ErrInvalidStateTable{Index: len(states) - 1, Reason: "too many states"}
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	f := &FSM[C]{
		id:             id,
		common:         common,
		states:         make(g.Slice[*State[C]], 0, len(states)),
		accepted:       g.NewSet[MessageID](),
		edges:          make(g.Map[edge, int]),
		messages:       o.messages,
		logger:         o.logger,
		observer:       o.observer,
		maxTransitions: o.maxTransitions,
		startEntry:     o.startEntry,
	}

	for i, s := range states {
		if s == nil {
			return nil, &ErrInvalidStateTable{Index: i, Reason: "nil state"}
		}

		if int(s.id) != i {
			return nil, &ErrInvalidStateTable{
				Index:  i,
				Reason: fmt.Sprintf("state %q has id %d", s.label, s.id),
			}
		}

		if s.err != nil {
			return nil, s.err
		}

		for msg := range s.accepted.Iter() {
			if o.messages != nil && !o.messages.Contains(msg) {
				return nil, &ErrUndeclaredMessage{State: s.id, Message: msg}
			}

			f.accepted.Insert(msg)
		}

		f.states.Push(s)
	}

	return f, nil
}

// Start enters the initial state and runs its entry hook, following any
// chained transitions it requests. Start on a running FSM does nothing.
//
// If the entry chain fails the FSM is still started and stays in the last
// state it reached.
func (f *FSM[C]) Start() (err error) {
	if f.started {
		return nil
	}

	f.started = true

	if f.debugEnabled() {
		f.logger.Debug("fsm started", "router", f.id, "state", f.Label(f.current).Std())
	}

	if !f.startEntry {
		return nil
	}

	defer f.settle(&err)

	f.setHook(hookEnter, f.current)

	return f.transition(f.states[f.current].onEnter(f.common))
}

// Reset returns the FSM to the unstarted condition in its initial state.
// No hooks run.
func (f *FSM[C]) Reset() {
	f.started = false
	f.current = 0

	if f.debugEnabled() {
		f.logger.Debug("fsm reset", "router", f.id)
	}
}

// IsStarted reports whether Start has been called since New or Reset.
func (f *FSM[C]) IsStarted() bool { return f.started }

// Receive dispatches msg to the current state. An accepted message goes to the
// state's handler for its kind, anything else to the state's unknown handler.
// The returned state is then entered, and so is every state an entry hook
// redirects to, before Receive returns.
//
// Receive fails with ErrNotStarted before Start.
func (f *FSM[C]) Receive(sender Router, msg Message) (err error) {
	if !f.started {
		return &ErrNotStarted{Router: f.id}
	}

	if sender == nil {
		sender = NullRouter{}
	}

	id := msg.MessageID()
	state := f.states[f.current]
	accepted := state.Accepts(id)

	f.observer.DispatchStarted(f.id, f.current, id, accepted)

	defer func() { f.observer.DispatchFinished(f.id, f.current, err) }()
	defer f.settle(&err)

	if accepted {
		f.setHook(hookEvent, f.current)
	} else {
		f.setHook(hookUnknown, f.current)

		if f.debugEnabled() {
			f.logger.Debug("fsm unknown message",
				"router", f.id,
				"state", f.Label(f.current).Std(),
				"message", f.messages.Label(id).Std(),
			)
		}
	}

	return f.transition(state.handle(f.common, sender, msg, accepted))
}

// transition moves to next and keeps following entry hooks until one of them
// returns its own state.
func (f *FSM[C]) transition(next StateID) error {
	for hops := 0; next != f.current; hops++ {
		if int(next) >= len(f.states) {
			return &ErrUnknownState{From: f.current, State: next}
		}

		if f.maxTransitions > 0 && hops >= f.maxTransitions {
			return &ErrChainLimit{Limit: f.maxTransitions, State: f.current}
		}

		from := f.current

		f.setHook(hookExit, from)
		f.states[from].onExit(f.common)

		f.current = next
		f.edges[edge{from: from, to: next}]++
		f.observer.Transitioned(f.id, from, next)

		if f.debugEnabled() {
			f.logger.Debug("fsm transition", "router", f.id, "from", f.Label(from).Std(), "to", f.Label(next).Std())
		}

		f.setHook(hookEnter, next)
		next = f.states[next].onEnter(f.common)
	}

	return nil
}

func (f *FSM[C]) setHook(hook string, state StateID) {
	f.hook = hook
	f.hookState = state
}

// settle converts a panic raised by a callback into ErrCallback.
func (f *FSM[C]) settle(err *error) {
	if r := recover(); r != nil {
		var cause error
		if e, ok := r.(error); ok {
			cause = fmt.Errorf("panic: %w", e)
		} else {
			cause = fmt.Errorf("panic: %v", r)
		}

		*err = &ErrCallback{HookType: f.hook, State: f.hookState, Err: cause}
	}

	f.hook = ""
}

func (f *FSM[C]) debugEnabled() bool {
	return f.logger.Enabled(context.Background(), slog.LevelDebug)
}

// StateID returns the current state's id.
func (f *FSM[C]) StateID() StateID { return f.current }

// State returns the current state.
func (f *FSM[C]) State() *State[C] { return f.states[f.current] }

// Accepts reports whether any registered state accepts id, regardless of the
// current state.
func (f *FSM[C]) Accepts(id MessageID) bool { return f.accepted.Contains(id) }

// AcceptsMessage reports whether any registered state accepts msg's kind.
func (f *FSM[C]) AcceptsMessage(msg Message) bool { return f.Accepts(msg.MessageID()) }

// RouterID returns the id the FSM is addressed by.
func (f *FSM[C]) RouterID() RouterID { return f.id }

// Common returns the shared context.
func (f *FSM[C]) Common() *C { return f.common }

// Messages returns the configured message table, which may be nil.
func (f *FSM[C]) Messages() *MessageTable { return f.messages }

// States returns the ids of all registered states in table order.
func (f *FSM[C]) States() g.Slice[StateID] {
	ids := make(g.Slice[StateID], 0, len(f.states))
	for _, s := range f.states {
		ids.Push(s.id)
	}

	return ids
}

// Label returns the label of state id, or "state#<id>" when id is not
// registered.
func (f *FSM[C]) Label(id StateID) g.String {
	if int(id) < len(f.states) {
		return f.states[id].label
	}

	return g.Format("state#{}", id)
}
