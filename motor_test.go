package msgfsm_test

import (
	"testing"

	. "github.com/enetx/msgfsm"
)

const motorControl RouterID = 0

const (
	EventStart MessageID = iota
	EventStop
	EventStopped
	EventSetSpeed
	EventUnsupported
)

type (
	Start       struct{}
	Stop        struct{ Emergency bool }
	Stopped     struct{}
	SetSpeed    struct{ Speed int }
	Unsupported struct{}
)

func (Start) MessageID() MessageID       { return EventStart }
func (Stop) MessageID() MessageID        { return EventStop }
func (Stopped) MessageID() MessageID     { return EventStopped }
func (SetSpeed) MessageID() MessageID    { return EventSetSpeed }
func (Unsupported) MessageID() MessageID { return EventUnsupported }

const (
	StateIdle StateID = iota
	StateRunning
	StateWindingDown
	StateLocked
)

// Common is the motor controller's shared context.
type Common struct {
	StartCount    int
	StopCount     int
	SetSpeedCount int
	UnknownCount  int
	StoppedCount  int
	LampOn        bool
	Speed         int
}

func motorMessages(t *testing.T) *MessageTable {
	t.Helper()

	table, err := NewMessageTable(
		Kind(EventStart, "Start"),
		Kind(EventStop, "Stop"),
		Kind(EventStopped, "Stopped"),
		Kind(EventSetSpeed, "Set Speed"),
		Kind(EventUnsupported, "Unsupported"),
	)
	assertNoError(t, err)

	return table
}

func countUnknown(id StateID) Handler[Common] {
	return func(c *Common, _ Router, _ Message) StateID {
		c.UnknownCount++
		return id
	}
}

func newMotorControl(t *testing.T, opts ...Option) *FSM[Common] {
	t.Helper()

	idle := NewState[Common](StateIdle, "Idle").
		OnUnknown(countUnknown(StateIdle)).
		OnEnter(func(c *Common) StateID {
			c.LampOn = false
			return StateLocked
		})
	On(idle, func(c *Common, _ Router, _ Start) StateID {
		c.StartCount++
		return StateRunning
	})

	running := NewState[Common](StateRunning, "Running").
		OnUnknown(countUnknown(StateRunning)).
		OnEnter(func(c *Common) StateID {
			c.LampOn = true
			return StateRunning
		})
	On(running, func(c *Common, _ Router, m Stop) StateID {
		c.StopCount++
		if m.Emergency {
			return StateIdle
		}
		return StateWindingDown
	})
	On(running, func(c *Common, _ Router, m SetSpeed) StateID {
		c.SetSpeedCount++
		c.Speed = m.Speed
		return StateRunning
	})

	windingDown := NewState[Common](StateWindingDown, "Winding Down").
		OnUnknown(countUnknown(StateWindingDown))
	On(windingDown, func(c *Common, _ Router, _ Stopped) StateID {
		c.StoppedCount++
		return StateIdle
	})

	locked := NewState[Common](StateLocked, "Locked").
		OnUnknown(countUnknown(StateLocked))

	opts = append([]Option{WithMessages(motorMessages(t))}, opts...)

	fsm, err := New(motorControl, &Common{}, []*State[Common]{idle, running, windingDown, locked}, opts...)
	assertNoError(t, err)

	return fsm
}

func assertCommon(t *testing.T, got *Common, want Common) {
	t.Helper()
	if *got != want {
		t.Fatalf("expected common %+v, got %+v", want, *got)
	}
}

func assertState[C any](t *testing.T, fsm *FSM[C], want StateID) {
	t.Helper()
	assertEqual(t, fsm.StateID(), want)
	assertEqual(t, fsm.State().ID(), want)
}
