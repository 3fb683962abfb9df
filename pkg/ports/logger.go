package ports

import (
	"fmt"
	"strings"
)

// LogLevel is the minimum severity a console logger prints.
type LogLevel int

const (
	// LevelDebug adds component steps: crop plans, draw order, dropped loads.
	LevelDebug LogLevel = iota
	// LevelInfo reports what the user asked for: loaded, cropped, saved, shared.
	LevelInfo
	LevelWarn
	// LevelError reports failed exports and shares.
	LevelError
	// LevelQuiet prints nothing.
	LevelQuiet
)

var levelNames = map[LogLevel]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelQuiet: "quiet",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLogLevel reads a level name as given on the command line or in
// picx.yaml. Case is ignored and "warning" is accepted for warn.
func ParseLogLevel(s string) (LogLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	for level, n := range levelNames {
		if n == name {
			return level, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger takes message keys, not final text: adapters translate the key
// and then apply args as its format arguments.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent prefixes every message with component, e.g. "[photo]".
	WithComponent(component string) Logger
}
