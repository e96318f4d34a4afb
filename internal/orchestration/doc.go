// Package orchestration runs one or more Fibonacci calculators concurrently,
// feeds their progress to a reporter and compares their results. Display is
// delegated to the ProgressReporter and ResultPresenter interfaces.
package orchestration
