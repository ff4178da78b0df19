package server

// Server defines the lifecycle of the process-level server.
//
// RunServer blocks until a stop signal arrives or a listener fails, then
// shuts everything down. Shutdown may also be called directly.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the listeners and frees associated resources.
	Shutdown()
}
