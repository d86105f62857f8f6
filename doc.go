/*
Package sway animates dynamic collections: given successive snapshots of a
collection, it works out which items are new, which persisted and which
disappeared, and drives a per-item spring controller through the
enter/update/leave lifecycle, with staggered start delays and deferred
removal once a leave animation completes.

# Basic usage

	g := sway.New[string](
		sway.WithFrom[string](sway.Static[string](sway.Target{"opacity": 0.0})),
		sway.WithEnter[string](sway.Static[string](sway.Target{"opacity": 1.0})),
		sway.WithLeave[string](sway.Static[string](sway.Target{"opacity": 0.0})),
		sway.WithTrail[string](50*time.Millisecond),
		sway.WithExpires[string](0),
	)
	defer g.Close()

	g.Update([]string{"a", "b", "c"})
	frames := sway.Render(g, func(r sway.Rendered[string]) string {
		return fmt.Sprintf("%s %.2f", r.Item, r.Values["opacity"])
	})

Subsequent Update calls diff the new collection against the tracked one;
removed items stay tracked while their leave animation plays and are dropped
afterwards according to WithExpires.

The interpolation itself lives in pkg/adapters/spring; persistence of
pass-by-pass snapshots in pkg/adapters/file and pkg/adapters/redis; metrics
in pkg/observability.
*/
package sway
