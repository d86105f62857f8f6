/*
Package observability provides tools for monitoring animation groups.

It exposes engine lifecycle activity as Prometheus collectors and offers
helpers for combining lifecycle hook sets.
*/
package observability
