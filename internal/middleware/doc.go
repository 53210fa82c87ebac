// Package middleware provides the HTTP middleware chain of the feature server.
//
// The server installs, in order: RequestID, RealIP, OTel, StructuredLogger,
// Recoverer, Timeout, SecurityHeaders, CORS and the rate limiter. Failures
// are rendered as RFC 7807 problems through the shared error handler.
//
// Validator decodes JSON bodies with chi/render and checks struct tags with
// go-playground/validator, reporting fields by their JSON names.
package middleware
