// Package packager assembles reproducibility packages: a ZIP archive with a
// Dockerfile pinning the R image and package versions, a Makefile, the
// dependency manifest, an install script, the notebook and a README.
package packager
