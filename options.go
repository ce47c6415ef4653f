package msgfsm

import "log/slog"

// Logger is the default logger used when none is provided.
var Logger = slog.Default()

// DefaultMaxTransitions bounds the transitions a single Receive or Start may
// perform before ErrChainLimit is reported.
const DefaultMaxTransitions = 64

// Option is a functional option for configuring an FSM.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	messages       *MessageTable
	observer       Observer
	maxTransitions int
	startEntry     bool
}

func defaultOptions() options {
	return options{
		logger:         Logger,
		observer:       NopObserver{},
		maxTransitions: DefaultMaxTransitions,
		startEntry:     true,
	}
}

// WithLogger sets the logger for the FSM.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMessages sets the message vocabulary. Labels from the table are used in
// logs and exports, and New rejects states accepting undeclared ids.
func WithMessages(t *MessageTable) Option {
	return func(o *options) {
		o.messages = t
	}
}

// WithObserver sets the observer notified about every dispatch and transition.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithMaxTransitions limits the transitions one Receive or Start may chain.
// Zero removes the limit; a cycle among entry hooks then never returns.
func WithMaxTransitions(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxTransitions = n
		}
	}
}

// WithoutStartEntry makes Start enter the initial state without running its
// entry hook.
func WithoutStartEntry() Option {
	return func(o *options) {
		o.startEntry = false
	}
}
