package footprint

import (
	"io"
	"log/slog"
	"reflect"

	"memfootprint/introspect"
	"memfootprint/node"
	"memfootprint/primitive"
)

// Estimator computes footprints with a fixed width table and introspection
// provider. It holds no per-call state, so one Estimator may serve concurrent
// calls on disjoint graphs.
type Estimator struct {
	provider introspect.Provider
	widths   primitive.Widths
	logger   *slog.Logger
}

type Option func(*Estimator)

// WithProvider replaces the reflect based provider, e.g. to register properties.
func WithProvider(p introspect.Provider) Option {
	return func(e *Estimator) {
		if p != nil {
			e.provider = p
		}
	}
}

func WithWidths(w primitive.Widths) Option {
	return func(e *Estimator) {
		e.widths = w
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Estimator) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(opts ...Option) *Estimator {
	e := &Estimator{
		provider: introspect.NewReflect(),
		widths:   primitive.DefaultWidths(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

var std = New()

// Of returns the footprint of v in bytes using the default width table.
func Of(v any) (uint64, error) {
	return std.Of(v)
}

// Widths returns the width table the estimator charges with.
func (e *Estimator) Widths() primitive.Widths {
	return e.widths
}

// Of returns the footprint of v in bytes. A nil v is 0. If v reaches itself
// the whole call fails with a *CycleError and no partial total.
func (e *Estimator) Of(v any) (uint64, error) {
	return e.run(v, nil)
}

// Report is Of with a breakdown of the total by type.
func (e *Estimator) Report(v any) (*Report, error) {
	r := &Report{ByType: make(map[reflect.Type]*TypeSize)}

	total, err := e.run(v, r)
	if err != nil {
		return nil, err
	}

	r.Total = total
	return r, nil
}

func (e *Estimator) run(v any, r *Report) (uint64, error) {
	if v == nil {
		return 0, nil
	}

	rv := reflect.ValueOf(v)
	w := &walker{
		provider: e.provider,
		widths:   e.widths,
		report:   r,
	}
	w.path.Root(node.Base(rv.Type()).String())

	total, err := w.value(rv)
	if err != nil {
		e.logger.Debug("footprint aborted",
			"type", rv.Type(),
			"error", err,
			"nodes", w.nodes,
		)
		return 0, err
	}

	e.logger.Debug("footprint computed",
		"type", rv.Type(),
		"bytes", total,
		"nodes", w.nodes,
		"identities", w.tracker.Seen(),
	)

	return total, nil
}
