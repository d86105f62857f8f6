/*
Package domain contains the data model shared across the sway engine and its
adapters: lifecycle phases, animation payloads, target producers, snapshots
and lifecycle hooks.

The types here are deliberately free of behavior beyond construction and
conversion. The state machine itself lives in internal/runtime; infrastructure
contracts (controllers, timers, stores) live in pkg/ports.
*/
package domain
