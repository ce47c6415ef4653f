package otelfsm_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/enetx/msgfsm"
	"github.com/enetx/msgfsm/otelfsm"
)

type ping struct{}

func (ping) MessageID() msgfsm.MessageID { return 1 }

type noise struct{}

func (noise) MessageID() msgfsm.MessageID { return 2 }

type counter struct{ pings int }

func newTraced(t *testing.T, opts ...otelfsm.Option) (*msgfsm.FSM[counter], *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	off := msgfsm.NewState[counter](0, "off").
		OnEnter(func(*counter) msgfsm.StateID { return 1 })
	on := msgfsm.NewState[counter](1, "on")
	msgfsm.On(on, func(c *counter, _ msgfsm.Router, _ ping) msgfsm.StateID {
		c.pings++
		return 2
	})
	done := msgfsm.NewState[counter](2, "done").
		OnEnter(func(*counter) msgfsm.StateID { panic("boom") })

	obs := otelfsm.New(provider.Tracer("otelfsm_test"), opts...)

	fsm, err := msgfsm.New(4, &counter{}, []*msgfsm.State[counter]{off, on, done}, msgfsm.WithObserver(obs))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return fsm, recorder
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestObserver_StartTransitionSpan(t *testing.T) {
	fsm, recorder := newTraced(t)

	if err := fsm.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	if spans[0].Name() != "fsm.transition" {
		t.Fatalf("expected fsm.transition span, got %q", spans[0].Name())
	}

	if v, ok := attr(spans[0].Attributes(), "fsm.to"); !ok || v.AsInt64() != 1 {
		t.Fatalf("expected fsm.to=1, got %v", v)
	}
}

func TestObserver_DispatchSpans(t *testing.T) {
	fsm, recorder := newTraced(t)

	if err := fsm.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := msgfsm.Send(fsm, noise{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// on -> done panics while entering done.
	if err := msgfsm.Send(fsm, ping{}); err == nil {
		t.Fatal("expected error, got nil")
	}

	spans := recorder.Ended()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}

	unknown := spans[1]
	if unknown.Name() != "fsm.dispatch" {
		t.Fatalf("expected fsm.dispatch span, got %q", unknown.Name())
	}

	if v, ok := attr(unknown.Attributes(), "fsm.accepted"); !ok || v.AsBool() {
		t.Fatalf("expected fsm.accepted=false, got %v", v)
	}

	if unknown.Status().Code == codes.Error {
		t.Fatal("unknown message must not fail the span")
	}

	failed := spans[2]
	if v, ok := attr(failed.Attributes(), "fsm.message"); !ok || v.AsInt64() != 1 {
		t.Fatalf("expected fsm.message=1, got %v", v)
	}

	if len(failed.Events()) < 2 {
		t.Fatalf("expected transition and exception events, got %d", len(failed.Events()))
	}

	if failed.Events()[0].Name != "fsm.transition" {
		t.Fatalf("expected fsm.transition event, got %q", failed.Events()[0].Name)
	}

	if failed.Status().Code != codes.Error {
		t.Fatalf("expected error status, got %v", failed.Status().Code)
	}

	if v, ok := attr(failed.Attributes(), "fsm.final_state"); !ok || v.AsInt64() != 2 {
		t.Fatalf("expected fsm.final_state=2, got %v", v)
	}

	if fsm.Common().pings != 1 {
		t.Fatalf("expected 1 ping, got %d", fsm.Common().pings)
	}
}

func TestObserver_WithParent(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := provider.Tracer("otelfsm_test")

	ctx, parent := tracer.Start(context.Background(), "controller")

	obs := otelfsm.New(tracer, otelfsm.WithParent(ctx))
	obs.DispatchStarted(1, 0, 1, true)
	obs.Transitioned(1, 0, 1)
	obs.DispatchFinished(1, 1, nil)
	parent.End()

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	if spans[0].Parent().SpanID() != parent.SpanContext().SpanID() {
		t.Fatal("dispatch span is not a child of the parent span")
	}
}
