// Package metrics collects runtime memory readings and the Prometheus
// counters describing WholeNumber arithmetic performed by the calculators.
package metrics
