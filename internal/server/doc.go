// Package server wires and runs the application's transport servers.
//
// It provides orchestration for the HTTP API and the gRPC health service
// lifecycles, including startup, signal handling, and graceful shutdown of
// all enabled transports together with the background maintenance workers.
package server
