// Package event provides a named, multi-subscriber event dispatcher.
// Subscribers run in registration order and a failing subscriber never keeps
// the ones after it from running.
package event

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

// Handler is a subscriber callback for payloads of type T.
type Handler[T any] func(T) error

// Dispatcher keeps an ordered subscriber list per event name.
type Dispatcher[T any] struct {
	handlers map[string][]Handler[T]
	mux      sync.RWMutex
}

// AggregateError carries every subscriber failure of one Dispatch call,
// in the order the subscribers were invoked.
type AggregateError struct {
	Event  string
	Errors []error
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("event %q: %d handler(s) failed: %v", e.Event, len(e.Errors), multierr.Combine(e.Errors...))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// New creates an empty dispatcher.
func New[T any]() *Dispatcher[T] {
	return &Dispatcher[T]{
		handlers: make(map[string][]Handler[T]),
	}
}

// Register appends handler to the subscriber list of event.
func (d *Dispatcher[T]) Register(event string, handler Handler[T]) {
	if handler == nil {
		return
	}
	d.mux.Lock()
	defer d.mux.Unlock()
	d.handlers[event] = append(d.handlers[event], handler)
}

// Subscribers returns the number of handlers registered for event.
func (d *Dispatcher[T]) Subscribers(event string) int {
	d.mux.RLock()
	defer d.mux.RUnlock()
	return len(d.handlers[event])
}

// Dispatch invokes every subscriber of event with payload on the calling
// goroutine. It returns nil when all of them succeed and an *AggregateError
// otherwise. Events without subscribers are a no-op.
func (d *Dispatcher[T]) Dispatch(event string, payload T) error {
	d.mux.RLock()
	handlers := make([]Handler[T], len(d.handlers[event]))
	copy(handlers, d.handlers[event])
	d.mux.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := invoke(handler, payload); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Event: event, Errors: errs}
	}
	return nil
}

// invoke runs a single subscriber, turning a panic into an error so that it
// is reported like any other failure.
func invoke[T any](handler Handler[T], payload T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler(payload)
}
