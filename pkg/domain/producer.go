package domain

// TargetFunc produces the animation target for an item at its position in the
// tracked sequence. Producers run synchronously during a pass; anything they
// panic with propagates to the caller of the pass.
type TargetFunc[T any] func(item T, index int) Target

// Static wraps a fixed target as a TargetFunc, for callers whose targets do
// not depend on the item.
func Static[T any](t Target) TargetFunc[T] {
	return func(T, int) Target { return t }
}

// ConfigFunc produces the spring configuration for an item.
type ConfigFunc[T any] func(item T, index int) Config

// StaticConfig wraps a fixed configuration as a ConfigFunc.
func StaticConfig[T any](c Config) ConfigFunc[T] {
	return func(T, int) Config { return c }
}

// ResolveTarget resolves a producer for an item. A nil producer resolves to a
// nil target.
func ResolveTarget[T any](p TargetFunc[T], item T, index int) Target {
	if p == nil {
		return nil
	}
	return p(item, index)
}
