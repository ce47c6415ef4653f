// Package otelfsm traces msgfsm dispatches with OpenTelemetry.
//
// Every Receive becomes one "fsm.dispatch" span carrying the router, state and
// message ids; each transition it causes is recorded as a span event. A
// failed dispatch ends its span with an error status.
package otelfsm

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/enetx/msgfsm"
)

const (
	spanDispatch    = "fsm.dispatch"
	spanTransition  = "fsm.transition"
	eventTransition = "fsm.transition"

	attrRouter   = attribute.Key("fsm.router")
	attrState    = attribute.Key("fsm.state")
	attrMessage  = attribute.Key("fsm.message")
	attrAccepted = attribute.Key("fsm.accepted")
	attrFrom     = attribute.Key("fsm.from")
	attrTo       = attribute.Key("fsm.to")
	attrFinal    = attribute.Key("fsm.final_state")
)

// Option configures an Observer.
type Option func(*Observer)

// WithParent sets the context dispatch spans are started under.
func WithParent(ctx context.Context) Option {
	return func(o *Observer) {
		if ctx != nil {
			o.parent = ctx
		}
	}
}

// Observer implements msgfsm.Observer on top of a trace.Tracer.
// Like the FSM it observes, it is not safe for concurrent dispatches; give
// each FSM its own Observer.
type Observer struct {
	tracer trace.Tracer
	parent context.Context
	span   trace.Span
}

var _ msgfsm.Observer = (*Observer)(nil)

// New returns an Observer that creates spans with tracer.
func New(tracer trace.Tracer, opts ...Option) *Observer {
	o := &Observer{tracer: tracer, parent: context.Background()}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// DispatchStarted opens the dispatch span.
func (o *Observer) DispatchStarted(router msgfsm.RouterID, state msgfsm.StateID, msg msgfsm.MessageID, accepted bool) {
	_, o.span = o.tracer.Start(o.parent, spanDispatch,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attrRouter.Int(int(router)),
			attrState.Int(int(state)),
			attrMessage.Int(int(msg)),
			attrAccepted.Bool(accepted),
		),
	)
}

// Transitioned records a transition on the open dispatch span. Transitions
// outside a dispatch, made by Start, get a span of their own.
func (o *Observer) Transitioned(router msgfsm.RouterID, from, to msgfsm.StateID) {
	attrs := []attribute.KeyValue{attrFrom.Int(int(from)), attrTo.Int(int(to))}

	if o.span != nil {
		o.span.AddEvent(eventTransition, trace.WithAttributes(attrs...))
		return
	}

	_, span := o.tracer.Start(o.parent, spanTransition,
		trace.WithAttributes(append(attrs, attrRouter.Int(int(router)))...),
	)
	span.End()
}

// DispatchFinished closes the dispatch span.
func (o *Observer) DispatchFinished(_ msgfsm.RouterID, state msgfsm.StateID, err error) {
	if o.span == nil {
		return
	}

	o.span.SetAttributes(attrFinal.Int(int(state)))

	if err != nil {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
	}

	o.span.End()
	o.span = nil
}
