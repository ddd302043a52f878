package filelog

import (
	"os"
	"sync"
	"time"
)

// Severity is the name of a logging level. The set of valid names is fixed;
// see EmergencyIssuer through DebugIssuer.
type Severity string

// Fields carries the structured context attached to a single log call.
type Fields map[string]interface{}

// Config holds the options a Logger is built with. Apart from DateFormat it
// cannot change after construction.
type Config struct {
	Extension      string `mapstructure:"extension" json:"extension"`           // Suffix for generated or bare file names.
	DateFormat     string `mapstructure:"dateFormat" json:"dateFormat"`         // Go layout for timestamps.
	Filename       string `mapstructure:"filename" json:"filename"`             // Fixed file name; empty means prefix + date.
	FlushFrequency int    `mapstructure:"flushFrequency" json:"flushFrequency"` // Writes between forced syncs; 0 disables.
	Prefix         string `mapstructure:"prefix" json:"prefix"`                 // Prefix for generated file names.
	LogFormat      string `mapstructure:"logFormat" json:"logFormat"`           // Template; empty selects the bracketed default.
	AppendContext  bool   `mapstructure:"appendContext" json:"appendContext"`   // Append an indented context dump.
}

// Logger writes leveled messages to one file or standard stream. It owns the
// handle exclusively from New until Close.
type Logger struct {
	mu        sync.Mutex
	conf      Config
	threshold Severity         // Least severe level still written.
	path      string           // Resolved file path or stream target.
	file      *os.File         // Open handle; nil once closed.
	stream    bool             // True when bound to a process-owned standard stream.
	closed    bool             // Set once by Close.
	count     int              // Successful writes so far.
	lastLine  string           // Trimmed text of the latest write.
	clock     func() time.Time // Time source for timestamps and file names.
	recorder  Recorder         // Optional write observer.
}

// Option defines a functional option for configuring a Logger during creation.
type Option func(*Logger)

// Recorder observes what a Logger does. Implementations must not block.
type Recorder interface {
	// Emitted is called for every record that passes the threshold.
	Emitted(level Severity)

	// Dropped is called for every record filtered out by the threshold.
	Dropped(level Severity)

	// Written is called after a successful write of n bytes.
	Written(n int)

	// Flushed is called after every forced sync.
	Flushed()

	// Failed is called with every error Log or Write returns.
	Failed(err error)
}
