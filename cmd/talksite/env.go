package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-talksite/internal/logging"
	"github.com/alnah/go-talksite/internal/logging/gologger"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time and the logger factory.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	NewProvider func(level, format string) (logging.Provider, error)
}

// DefaultEnv returns the production environment, logging through go-logger.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		NewProvider: newGoLoggerProvider,
	}
}

func newGoLoggerProvider(level, format string) (logging.Provider, error) {
	p, err := gologger.NewProvider(gologger.Config{Level: level, Format: format})
	if err != nil {
		return nil, err
	}
	return p, nil
}
