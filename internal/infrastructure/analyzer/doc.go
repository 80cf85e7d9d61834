// Package analyzer detects reproducibility risks in R code by static
// inspection and extracts the packages the code loads.
//
// The analyzer works on the evaluated R code of a notebook. R Markdown
// content is reduced to its evaluated R chunks first and every finding is
// mapped back to the line the user sees in the editor.
package analyzer
