// Package htmldiff compares rendered notebook outputs semantically. Both
// HTML documents are reduced to their visible text blocks, which are then
// diffed line by line so that markup, scripts and styling changes do not
// show up as differences.
package htmldiff
