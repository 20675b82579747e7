// Package process isolates external renderer processes and terminates them
// together with their children when a run is interrupted.
package process
