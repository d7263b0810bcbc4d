/*
Package observability exposes engine activity as Prometheus metrics.

Metrics are fed through domain.LifecycleHooks, so the engine packages never import
Prometheus. Register a Metrics on any prometheus.Registerer and pass Metrics.Hooks()
to the session manager (or directly to a simulation engine and bracket validator).
*/
package observability
