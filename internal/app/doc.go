// Package app implements the application services behind the REST API:
// authentication, notebook management, execution, reproducibility analysis,
// output diffs and package generation. Services are composed from the domain
// ports and never talk to infrastructure directly.
package app
