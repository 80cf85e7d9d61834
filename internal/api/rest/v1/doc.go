// Package v1 implements version 1 of the REST API with gin. Handlers
// translate HTTP requests into calls of the application services and map
// typed application errors onto status codes and JSON error bodies.
package v1
