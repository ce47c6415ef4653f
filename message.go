package msgfsm

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// Message is an immutable event delivered through a Router.
// Concrete messages are value types whose MessageID method returns a constant,
// so the id can be read from the zero value.
type Message interface {
	MessageID() MessageID
}

// MessageKind pairs a MessageID with a human-readable label.
type MessageKind struct {
	ID    MessageID `json:"id"    yaml:"id"`
	Label g.String  `json:"label" yaml:"label"`
}

// Kind is shorthand for building a MessageKind.
func Kind(id MessageID, label g.String) MessageKind { return MessageKind{ID: id, Label: label} }

// MessageTable is the declared vocabulary of message kinds of an application.
// Each id appears at most once.
type MessageTable struct {
	kinds  g.Slice[MessageKind]
	labels g.Map[MessageID, g.String]
}

// NewMessageTable builds a MessageTable. Two kinds sharing an id would alias
// each other's handlers, so that is rejected with ErrDuplicateMessage.
func NewMessageTable(kinds ...MessageKind) (*MessageTable, error) {
	t := &MessageTable{
		kinds:  make(g.Slice[MessageKind], 0, len(kinds)),
		labels: make(g.Map[MessageID, g.String], len(kinds)),
	}

	for _, k := range kinds {
		if prev := t.labels.Get(k.ID); prev.IsSome() {
			return nil, &ErrDuplicateMessage{ID: k.ID, First: prev.Some(), Second: k.Label}
		}

		t.labels[k.ID] = k.Label
		t.kinds.Push(k)
	}

	t.kinds.SortBy(func(a, b MessageKind) cmp.Ordering { return cmp.Cmp(a.ID, b.ID) })

	return t, nil
}

// Label returns the label declared for id, or "message#<id>" when the id is
// not part of the table. A nil table labels every id that way.
func (t *MessageTable) Label(id MessageID) g.String {
	if t != nil {
		if label := t.labels.Get(id); label.IsSome() {
			return label.Some()
		}
	}

	return g.Format("message#{}", id)
}

// Contains reports whether id is declared in the table.
func (t *MessageTable) Contains(id MessageID) bool {
	return t != nil && t.labels.Contains(id)
}

// Kinds returns the declared kinds ordered by id.
func (t *MessageTable) Kinds() g.Slice[MessageKind] {
	if t == nil {
		return nil
	}

	return t.kinds.Clone()
}
