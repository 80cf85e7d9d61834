// Package rmd parses R Markdown documents, extracts the R code that is
// evaluated when the document is rendered, and maps line numbers between the
// extracted code and the editor buffer.
package rmd
