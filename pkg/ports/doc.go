/*
Package ports defines the driven ports (interfaces) for the sway engine.

These interfaces decouple the lifecycle core from its collaborators: the
per-transition animation controller, the timer subsystem used for expiration,
and snapshot persistence backends.

# Key Interfaces

  - Controller: the interpolation engine owned by each transition.
  - TimerService: deferred callbacks for expiration scheduling.
  - SnapshotStore: persistence for pass-by-pass group snapshots.
*/
package ports
