// Package editor implements the edit/cancel/submit lifecycle shared by
// the profile editor and the hoax composer: a committed value, a draft
// being edited, per-field validation errors, and at most one in-flight
// submission per controller.
package editor

import (
	"context"
	"errors"
	"sync"
)

// State is the controller's lifecycle position.
type State int

const (
	// Viewing shows the committed value; no draft exists.
	Viewing State = iota
	// Editing holds a draft that can be changed, cancelled, or submitted.
	Editing
	// Submitting has a submission in flight; cancel and further submits
	// are rejected until it resolves.
	Submitting
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

var (
	// ErrNotEditing rejects draft operations outside the Editing state.
	ErrNotEditing = errors.New("not editing")
	// ErrNotViewing rejects BeginEdit while an edit is already underway.
	ErrNotViewing = errors.New("edit already in progress")
	// ErrSubmitInFlight rejects a second submit (and cancel) while one
	// submission is pending.
	ErrSubmitInFlight = errors.New("submission already in flight")
)

// SubmitFunc sends the draft and returns the committed value the server
// acknowledged. A *api.ValidationError (or any error exposing
// FieldErrors) routes its field map back into the controller.
type SubmitFunc[T any] func(ctx context.Context, draft T) (T, error)

// fieldErrorer matches validation errors carrying a field→message map.
type fieldErrorer interface {
	FieldErrors() map[string]string
}

// Controller is the generic editable-entity state machine. The zero
// value is not usable; construct with New.
type Controller[T any] struct {
	mu       sync.Mutex
	state    State
	original T
	draft    T
	errs     map[string]string
	submit   SubmitFunc[T]
	onCommit func(T)
}

// Option configures a Controller.
type Option[T any] func(*Controller[T])

// WithCommitHook runs fn with the committed value after every
// successful submit, outside the controller lock.
func WithCommitHook[T any](fn func(T)) Option[T] {
	return func(c *Controller[T]) { c.onCommit = fn }
}

// New builds a controller in the Viewing state over the given value.
func New[T any](value T, submit SubmitFunc[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		state:    Viewing,
		original: value,
		draft:    value,
		errs:     map[string]string{},
		submit:   submit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Value returns the committed value: the last successfully submitted
// one, or the value the controller was created with.
func (c *Controller[T]) Value() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.original
}

// Draft returns the in-progress value. Outside Editing/Submitting it
// equals Value.
func (c *Controller[T]) Draft() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// FieldError returns the validation message attached to field, or "".
func (c *Controller[T]) FieldError(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs[field]
}

// Errors returns a copy of the current field→message map.
func (c *Controller[T]) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.errs))
	for k, v := range c.errs {
		out[k] = v
	}
	return out
}

// BeginEdit snapshots the committed value into a fresh draft and enters
// Editing.
func (c *Controller[T]) BeginEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Viewing {
		return ErrNotViewing
	}
	c.state = Editing
	c.draft = c.original
	c.errs = map[string]string{}
	return nil
}

// Change applies mutate to the draft and clears the validation error of
// the named field only; unrelated field errors survive.
func (c *Controller[T]) Change(field string, mutate func(*T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Editing {
		if c.state == Submitting {
			return ErrSubmitInFlight
		}
		return ErrNotEditing
	}
	mutate(&c.draft)
	delete(c.errs, field)
	return nil
}

// Cancel discards the draft and returns to Viewing. The restored value
// is the last committed one, not the value at construction time.
// Rejected while a submission is in flight.
func (c *Controller[T]) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case Submitting:
		return ErrSubmitInFlight
	case Viewing:
		return ErrNotEditing
	}
	c.state = Viewing
	c.draft = c.original
	c.errs = map[string]string{}
	return nil
}

// Submit sends the current draft. On success the server-returned value
// becomes the committed value and the controller returns to Viewing; a
// validation failure installs the server's field map and re-enters
// Editing with the draft intact, so the user can correct in place. Any
// other failure also re-enters Editing, leaving existing field errors
// untouched. A submit while one is already in flight is rejected with
// ErrSubmitInFlight.
func (c *Controller[T]) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case Submitting:
		c.mu.Unlock()
		return ErrSubmitInFlight
	case Viewing:
		c.mu.Unlock()
		return ErrNotEditing
	}
	draft := c.draft
	c.state = Submitting
	c.mu.Unlock()

	committed, err := c.submit(ctx, draft)

	c.mu.Lock()
	if err != nil {
		c.state = Editing
		var fe fieldErrorer
		if errors.As(err, &fe) {
			fields := fe.FieldErrors()
			c.errs = make(map[string]string, len(fields))
			for k, v := range fields {
				c.errs[k] = v
			}
		}
		c.mu.Unlock()
		return err
	}

	c.original = committed
	c.draft = committed
	c.errs = map[string]string{}
	c.state = Viewing
	hook := c.onCommit
	c.mu.Unlock()

	if hook != nil {
		hook(committed)
	}
	return nil
}
