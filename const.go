package filelog

import (
	"os"
	"time"
)

// Predefined severity levels, most severe first. The names are wire-stable.
const (
	// EmergencyIssuer means the system is unusable
	EmergencyIssuer Severity = "emergency"

	// AlertIssuer means action must be taken immediately
	AlertIssuer Severity = "alert"

	// CriticalIssuer signals critical conditions such as an unavailable component
	CriticalIssuer Severity = "critical"

	// ErrorIssuer denotes runtime errors that do not require immediate action
	ErrorIssuer Severity = "error"

	// WarningIssuer marks exceptional occurrences that are not errors
	WarningIssuer Severity = "warning"

	// NoticeIssuer indicates normal but significant events
	NoticeIssuer Severity = "notice"

	// InfoIssuer indicates normal operational messages
	InfoIssuer Severity = "info"

	// DebugIssuer represents detailed diagnostics
	DebugIssuer Severity = "debug"
)

// levelTable maps every severity to its priority. Lower is more severe.
var levelTable = map[Severity]int{
	EmergencyIssuer: 0,
	AlertIssuer:     1,
	CriticalIssuer:  2,
	ErrorIssuer:     3,
	WarningIssuer:   4,
	NoticeIssuer:    5,
	InfoIssuer:      6,
	DebugIssuer:     7,
}

// orderedSeverities lists the severities by priority.
var orderedSeverities = []Severity{
	EmergencyIssuer,
	AlertIssuer,
	CriticalIssuer,
	ErrorIssuer,
	WarningIssuer,
	NoticeIssuer,
	InfoIssuer,
	DebugIssuer,
}

const (
	// DefaultExtension is the file suffix used when no explicit filename carries one.
	DefaultExtension = "txt"

	// DefaultPrefix is prepended to the date in generated file names.
	DefaultPrefix = "log_"

	// DefaultDateFormat renders timestamps with microsecond precision.
	DefaultDateFormat = "2006-01-02 15:04:05.000000"

	// StreamScheme selects a standard stream instead of a directory,
	// e.g. "stream://stdout" or "stream://stderr".
	StreamScheme = "stream://"

	// fileDateLayout is the date embedded in generated file names.
	fileDateLayout = "2006-01-02"

	// levelColumn is the width {level-padding} pads the level name to.
	levelColumn = 9

	// contextIndent is used both for nesting and for the block offset of the context dump.
	contextIndent = 4

	defaultDirPerm  os.FileMode = 0o777
	defaultFilePerm os.FileMode = 0o644
)

// recognizedExtensions are kept verbatim when they end an explicit filename.
var recognizedExtensions = map[string]bool{
	".log": true,
	".txt": true,
}

// streams are the targets reachable through StreamScheme.
var streams = map[string]*os.File{
	"stdout": os.Stdout,
	"stderr": os.Stderr,
}

// DefaultConfig returns the configuration a Logger starts from before options apply.
func DefaultConfig() Config {
	return Config{
		Extension:     DefaultExtension,
		DateFormat:    DefaultDateFormat,
		Prefix:        DefaultPrefix,
		AppendContext: true,
	}
}

// systemClock is the clock used unless WithClock overrides it.
func systemClock() time.Time {
	return time.Now()
}
