package msgfsm

import "github.com/enetx/g"

// NewState creates a state bound to id. C is the shared context type every
// handler of the FSM receives.
func NewState[C any](id StateID, label g.String) *State[C] {
	return &State[C]{id: id, label: label}
}

// ID returns the state's identity.
func (s *State[C]) ID() StateID { return s.id }

// Label returns the state's human-readable name.
func (s *State[C]) Label() g.String { return s.label }

// Accepted returns the accepted message kinds in declaration order.
func (s *State[C]) Accepted() g.Slice[MessageID] { return s.accepted.Clone() }

// Accepts reports whether the state has a handler for id.
func (s *State[C]) Accepts(id MessageID) bool {
	return int(id) < len(s.handlers) && s.handlers[id] != nil
}

// On declares id as accepted and registers its handler.
// Registering the same id twice is reported by New as ErrDuplicateHandler.
func (s *State[C]) On(id MessageID, h Handler[C]) *State[C] {
	if h == nil {
		return s
	}

	if s.Accepts(id) {
		if s.err == nil {
			s.err = &ErrDuplicateHandler{State: s.id, Message: id}
		}
		return s
	}

	if need := int(id) + 1; need > len(s.handlers) {
		grown := make(g.Slice[Handler[C]], need)
		copy(grown, s.handlers)
		s.handlers = grown
	}

	s.handlers[id] = h
	s.accepted.Push(id)

	return s
}

// OnUnknown registers the handler for messages the state does not accept.
// Without one the state stays where it is.
func (s *State[C]) OnUnknown(h Handler[C]) *State[C] {
	s.unknown = h
	return s
}

// OnEnter registers the entry hook.
func (s *State[C]) OnEnter(fn EnterFunc[C]) *State[C] {
	s.enter = fn
	return s
}

// OnExit registers the exit hook.
func (s *State[C]) OnExit(fn ExitFunc[C]) *State[C] {
	s.exit = fn
	return s
}

// On registers a typed handler on s. The message id is read from the zero
// value of M, so M must be a value type whose MessageID method does not
// depend on its fields.
//
// A delivered message carrying M's id but of another type means two kinds
// share an id; the dispatch fails with ErrMessageMismatch.
func On[C any, M Message](s *State[C], fn func(c *C, sender Router, msg M) StateID) *State[C] {
	var zero M
	id := zero.MessageID()

	return s.On(id, func(c *C, sender Router, msg Message) StateID {
		m, ok := msg.(M)
		if !ok {
			panic(&ErrMessageMismatch{State: s.id, Message: id, Got: msg})
		}
		return fn(c, sender, m)
	})
}

func (s *State[C]) handle(c *C, sender Router, msg Message, accepted bool) StateID {
	if accepted {
		return s.handlers[msg.MessageID()](c, sender, msg)
	}

	if s.unknown != nil {
		return s.unknown(c, sender, msg)
	}

	return s.id
}

func (s *State[C]) onEnter(c *C) StateID {
	if s.enter == nil {
		return s.id
	}

	return s.enter(c)
}

func (s *State[C]) onExit(c *C) {
	if s.exit != nil {
		s.exit(c)
	}
}
