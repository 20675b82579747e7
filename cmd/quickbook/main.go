// Command quickbook turns a LaTeX book manuscript into reader chapters and
// retrieval chunks, and publishes both.
package main

import (
	"fmt"
	"os"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is overridden with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	logf := func(string, ...any) {}
	if slices.ContainsFunc(os.Args[1:], func(a string) bool { return a == "-v" || a == "--verbose" }) {
		logf = func(format string, args ...any) { fmt.Fprintf(os.Stderr, format+"\n", args...) }
	}
	// Set only fails on a malformed GOMAXPROCS; the runtime default stays.
	_, _ = maxprocs.Set(maxprocs.Logger(logf))

	os.Exit(runMain(os.Args, DefaultEnv()))
}
