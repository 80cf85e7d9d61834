// Package executions defines notebook renders inside the R container, their
// lifecycle and the runner port that performs them.
package executions
