// Package logging provides the logging interface shared by fibwhole
// components. The interface hides the backend so that the orchestration and
// CLI layers can log the same way whether they run under zerolog or the
// standard library logger used in tests.
package logging
