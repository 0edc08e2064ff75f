/*
Package observability provides lifecycle hooks for monitoring the crema
translation engine.

Metrics exposes Prometheus counters fed by domain.LifecycleHooks, and
LoggingHooks mirrors the same events onto a structured logger. Chain combines
several hook sets so both can be installed at once.
*/
package observability
