package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-quickbook/internal/publish"
	"github.com/alnah/go-quickbook/internal/render"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	// Renderer replaces pandoc when set.
	Renderer render.Renderer
	// RetryPolicy replaces the default upload retry policy when set.
	RetryPolicy *publish.RetryPolicy
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
