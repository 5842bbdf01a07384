/*
Package observability turns reddisetgo lifecycle hooks into Prometheus metrics and debug logs.

Metrics are registered on a caller supplied registerer so tests and embedders can keep them
isolated from the default registry. Hooks from this package compose with others through
domain.LifecycleHooks.Merge.
*/
package observability
