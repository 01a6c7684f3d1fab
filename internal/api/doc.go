// Package api provides the HTTP handlers for the task tracker.
//
// Handlers decode and validate requests, delegate to the service and store
// layers, and map internal errors to HTTP status codes with sanitized
// messages. Every failure body carries a single human-readable msg field.
package api
