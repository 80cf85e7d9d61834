// Package packages defines reproducibility packages: ZIP archives holding
// everything needed to rebuild the environment of a notebook and render it.
package packages
