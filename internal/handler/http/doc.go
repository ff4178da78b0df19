// Package http implements the HTTP transport of the dashboard server.
//
// It wires the chi router, the route guard that refreshes the session
// cookie on every request, the auth and dashboard handlers, and the
// tracing and access-log middleware. Business decisions are delegated to
// the service layer; this package only maps them to status codes and
// user-facing messages.
package http
