// Package dispatch turns tab and shift-tab input into focus changes for one
// scene. It asks the focus engine for the target, tells the toolkit to move
// focus, and records the new owner.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"focusnav/internal/focus"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNotEligible = errors.New("node is not focus eligible")
	ErrNotInScene  = errors.New("node is not in this scene")
)

// Focuser is the toolkit side of a focus change.
type Focuser interface {
	RequestFocus(n focus.Node)
	ReleaseFocus(n focus.Node)
}

// Dispatcher is the per-scene focus context. Not safe for concurrent use;
// calls are expected from a single UI event loop.
type Dispatcher struct {
	root     focus.Node
	manager  *focus.Manager
	focuser  Focuser
	onChange func(from, to focus.Node)
	logger   *slog.Logger
	tracer   trace.Tracer
	wrap     bool

	hasFocus bool
	restore  focus.Node // owner at the last FocusLost
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

func WithFocuser(f Focuser) Option {
	return func(d *Dispatcher) { d.focuser = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) { d.tracer = t }
}

// WithOnChange registers a callback fired after every owner change.
// Either argument may be nil.
func WithOnChange(fn func(from, to focus.Node)) Option {
	return func(d *Dispatcher) { d.onChange = fn }
}

// WithWrap makes Forward and Backward wrap around when the ordering is
// exhausted instead of keeping the current owner.
func WithWrap(wrap bool) Option {
	return func(d *Dispatcher) { d.wrap = wrap }
}

// New creates a dispatcher for the scene rooted at root.
func New(root focus.Node, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		root:    root,
		manager: focus.NewManager(),
	}
	for _, o := range opts {
		o(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if d.tracer == nil {
		d.tracer = otel.Tracer("focusnav/dispatch")
	}
	return d
}

// Owner returns the current focus owner, or nil.
func (d *Dispatcher) Owner() focus.Node { return d.manager.CurrentFocusOwner() }

// Root returns the scene root.
func (d *Dispatcher) Root() focus.Node { return d.root }

// HasFocus reports whether the scene currently holds focus.
func (d *Dispatcher) HasFocus() bool { return d.hasFocus }

// Forward handles a tab event. It returns the new owner and true, or the
// unchanged owner and false when there is nowhere to go.
func (d *Dispatcher) Forward(ctx context.Context) (focus.Node, bool) {
	ctx, span := d.tracer.Start(ctx, "focus.forward")
	defer span.End()

	from := d.manager.CurrentFocusOwner()
	to := d.manager.Next(d.root, from)
	if to == nil && d.wrap {
		to = d.manager.Next(d.root, nil)
		span.SetAttributes(attribute.Bool("focus.wrapped", true))
	}
	if to == nil {
		d.logger.DebugContext(ctx, "forward traversal exhausted", "owner", label(from))
		span.SetAttributes(attribute.Bool("focus.exhausted", true))
		return from, false
	}
	d.transfer(ctx, from, to)
	return to, true
}

// Backward handles a shift-tab event. Return values match Forward.
func (d *Dispatcher) Backward(ctx context.Context) (focus.Node, bool) {
	ctx, span := d.tracer.Start(ctx, "focus.backward")
	defer span.End()

	from := d.manager.CurrentFocusOwner()
	to := d.manager.Previous(d.root, from)
	if to == nil && d.wrap {
		if order := focus.Order(d.root); len(order) > 0 {
			to = order[len(order)-1]
		}
		span.SetAttributes(attribute.Bool("focus.wrapped", true))
	}
	if to == nil {
		d.logger.DebugContext(ctx, "backward traversal exhausted", "owner", label(from))
		span.SetAttributes(attribute.Bool("focus.exhausted", true))
		return from, false
	}
	d.transfer(ctx, from, to)
	return to, true
}

// FocusGained is called when the scene receives focus. Focus returns to the
// node that held it when the scene last lost focus. On first gain, or when
// that node is gone or no longer eligible, the first eligible node is used.
func (d *Dispatcher) FocusGained(ctx context.Context) (focus.Node, bool) {
	ctx, span := d.tracer.Start(ctx, "focus.gained")
	defer span.End()

	d.hasFocus = true
	if owner := d.manager.CurrentFocusOwner(); owner != nil {
		return owner, true
	}
	target := d.restore
	if !focus.Eligible(target) || !d.contains(target) {
		target = d.manager.Next(d.root, nil)
	} else {
		span.SetAttributes(attribute.Bool("focus.restored", true))
	}
	d.restore = nil
	if target == nil {
		d.logger.DebugContext(ctx, "scene gained focus with no eligible node")
		return nil, false
	}
	d.transfer(ctx, nil, target)
	return target, true
}

// FocusLost is called when the scene loses focus entirely. The owner is
// remembered for the next FocusGained and then cleared.
func (d *Dispatcher) FocusLost(ctx context.Context) {
	ctx, span := d.tracer.Start(ctx, "focus.lost")
	defer span.End()

	d.hasFocus = false
	owner := d.manager.CurrentFocusOwner()
	if owner == nil {
		return
	}
	d.restore = owner
	if d.focuser != nil {
		d.focuser.ReleaseFocus(owner)
	}
	d.manager.SetCurrentFocusOwner(nil)
	if d.onChange != nil {
		d.onChange(owner, nil)
	}
	d.logger.DebugContext(ctx, "scene lost focus", "owner", label(owner))
	span.SetAttributes(attribute.String("focus.from", label(owner)))
}

// Focus moves focus straight to n, as a mouse click would.
func (d *Dispatcher) Focus(ctx context.Context, n focus.Node) error {
	ctx, span := d.tracer.Start(ctx, "focus.set")
	defer span.End()

	if !focus.Eligible(n) {
		return fmt.Errorf("focus %s: %w", label(n), ErrNotEligible)
	}
	if !d.contains(n) {
		return fmt.Errorf("focus %s: %w", label(n), ErrNotInScene)
	}
	d.transfer(ctx, d.manager.CurrentFocusOwner(), n)
	return nil
}

func (d *Dispatcher) transfer(ctx context.Context, from, to focus.Node) {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("focus.from", label(from)),
		attribute.String("focus.to", label(to)),
	)
	if from == to {
		return
	}
	if d.focuser != nil {
		if from != nil {
			d.focuser.ReleaseFocus(from)
		}
		d.focuser.RequestFocus(to)
	}
	d.manager.SetCurrentFocusOwner(to)
	if d.onChange != nil {
		d.onChange(from, to)
	}
	d.logger.DebugContext(ctx, "focus moved", "from", label(from), "to", label(to))
}

// contains reports whether n is the root or one of its descendants.
func (d *Dispatcher) contains(n focus.Node) bool {
	for c := n; c != nil; c = c.Parent() {
		if c == d.root {
			return true
		}
	}
	return false
}

func label(n focus.Node) string {
	if n == nil {
		return "<none>"
	}
	if s, ok := n.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", n)
}
