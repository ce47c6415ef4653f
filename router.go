package msgfsm

// NullRouterID is the RouterID reported by NullRouter.
const NullRouterID RouterID = 255

// NullRouter discards everything delivered to it. It serves as the sender
// when no reply destination exists.
type NullRouter struct{}

// Receive drops msg.
func (NullRouter) Receive(Router, Message) error { return nil }

// Accepts is always false.
func (NullRouter) Accepts(MessageID) bool { return false }

// AcceptsMessage is always false.
func (NullRouter) AcceptsMessage(Message) bool { return false }

// RouterID returns NullRouterID.
func (NullRouter) RouterID() RouterID { return NullRouterID }

// Send delivers msg to r with a NullRouter as the sender.
func Send(r Router, msg Message) error {
	return r.Receive(NullRouter{}, msg)
}
