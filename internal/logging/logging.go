// Package logging provides bracket-tagged loggers for engine subsystems,
// matching the "[Subsystem] message" convention used throughout the engine.
package logging

import (
	"log"
	"os"
)

// Logger prefixes every line with its subsystem tag.
type Logger struct {
	tag string
	std *log.Logger
}

// New returns a Logger tagged with the given subsystem name.
func New(subsystem string) *Logger {
	return &Logger{
		tag: subsystem,
		std: log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *Logger) Printf(format string, args ...any) {
	l.std.Printf("[%s] "+format, append([]any{l.tag}, args...)...)
}

func (l *Logger) Println(args ...any) {
	l.std.Println(append([]any{"[" + l.tag + "]"}, args...)...)
}
