// Package server runs the dashboard's HTTP and gRPC listeners together
// with its background workers, and stops all of them on SIGTERM, SIGINT
// or SIGQUIT.
package server
