// Package reproducibility defines the reproducibility analysis of a notebook:
// static findings over its R code, the package dependencies it needs, and the
// semantic diff between two rendered outputs.
package reproducibility
