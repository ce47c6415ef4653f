package msgfsm

// Observer is notified synchronously while an FSM dispatches. Calls happen on
// the goroutine running Receive or Start and must not call back into the FSM.
type Observer interface {
	// DispatchStarted is called before the current state's handler runs.
	// accepted reports whether the state accepts the message kind.
	DispatchStarted(router RouterID, state StateID, msg MessageID, accepted bool)
	// Transitioned is called after the current state changed.
	Transitioned(router RouterID, from, to StateID)
	// DispatchFinished is called once the dispatch settled or failed.
	DispatchFinished(router RouterID, state StateID, err error)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) DispatchStarted(RouterID, StateID, MessageID, bool) {}
func (NopObserver) Transitioned(RouterID, StateID, StateID)            {}
func (NopObserver) DispatchFinished(RouterID, StateID, error)          {}
