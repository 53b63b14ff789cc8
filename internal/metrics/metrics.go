// Package metrics defines the Prometheus collectors exposed at /metrics.
// Collectors work unregistered; main registers them once at startup.
package metrics

const namespace = "postdex"
