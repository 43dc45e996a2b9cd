/*
Package observability provides tools for monitoring the clic dispatcher.

Metrics exposes Prometheus counters and histograms fed by the dispatcher's
lifecycle hooks; LogHooks writes the same events to a structured logger.
Both return domain.LifecycleHooks and can be combined with Merge.
*/
package observability
