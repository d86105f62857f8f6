package sway

import (
	"github.com/driftkit/sway/internal/runtime"
	"github.com/driftkit/sway/pkg/domain"
)

// Rendered is the per-transition view handed to render callbacks. Its ID is
// the transition's identity, not the item's: output state survives phase
// changes even when the item value is replaced by an equal successor.
type Rendered[T comparable] struct {
	ID     int64
	Item   T
	Phase  domain.Phase
	Values domain.Values
}

// Views returns the current render views in sequence order.
func (g *Group[T]) Views() []Rendered[T] {
	views := g.eng.Views()
	out := make([]Rendered[T], len(views))
	for i, v := range views {
		out[i] = fromView(v)
	}
	return out
}

// Render maps every tracked transition through fn, in sequence order.
// It is a free function because methods cannot introduce the output type
// parameter.
func Render[T comparable, R any](g *Group[T], fn func(Rendered[T]) R) []R {
	views := g.eng.Views()
	out := make([]R, len(views))
	for i, v := range views {
		out[i] = fn(fromView(v))
	}
	return out
}

func fromView[T comparable](v runtime.View[T]) Rendered[T] {
	return Rendered[T]{ID: v.ID, Item: v.Item, Phase: v.Phase, Values: v.Values}
}
