// Package runner renders notebooks and traces their package dependencies
// inside the R container through the docker command line.
package runner
