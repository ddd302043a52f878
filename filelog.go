// Package filelog provides a leveled, file-backed logging library with a fixed
// eight-level severity vocabulary, template or bracketed line formatting,
// indented context dumps and periodic forced flushing.
//
// Key features:
//   - Eight severities (emergency through debug) with a mutable threshold
//   - One append-only file per Logger, named by prefix and construction date
//   - Optional line templates with {date}, {level}, {level-padding}, {priority},
//     {message} and {context} placeholders
//   - Standard stream targets through the "stream://" pseudo-path
//   - Typed errors separating caller mistakes, I/O failures and rendering failures
package filelog

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// New creates a Logger bound to a file inside directory, or to a standard
// stream when directory is a StreamScheme target. The handle is opened exactly
// once here; any failure aborts construction and no Logger is returned.
//
// Parameters:
//   - directory: the directory to log into (created if missing), or
//     "stream://stdout" / "stream://stderr".
//   - threshold: the least severe level that is still written.
//   - opts: a variadic slice of Option functions (e.g. WithPrefix, WithFlushFrequency).
//
// Example:
//
//	logger, err := filelog.New("/var/log/app", filelog.InfoIssuer, filelog.WithPrefix("app_"))
//	if err != nil {
//		return err
//	}
//	defer logger.Close()
func New(directory string, threshold Severity, opts ...Option) (*Logger, error) {
	if _, err := Priority(threshold); err != nil {
		return nil, err
	}
	l := &Logger{
		conf:      DefaultConfig(),
		threshold: threshold,
		clock:     systemClock,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.conf.Extension = strings.TrimPrefix(l.conf.Extension, ".")

	if strings.HasPrefix(directory, StreamScheme) {
		if err := l.bindStream(directory); err != nil {
			return nil, err
		}
		return l, nil
	}

	dir, err := ensureDirectory(directory)
	if err != nil {
		return nil, err
	}
	l.path = filepath.Join(dir, FileName(l.conf, l.clock()))

	f, err := openAppend(l.path)
	if err != nil {
		return nil, err
	}
	l.file = f
	return l, nil
}

// OpenAppend opens path for appending the way New does: missing parent
// directories are created, an existing file that the process may not write is
// rejected with an "access" *IOError, and the file is created with mode 0644.
// Other backends use it so that every target fails with the same errors.
//
// Example:
//
//	f, err := filelog.OpenAppend(filepath.Join(dir, filelog.FileName(conf, time.Now())))
func OpenAppend(path string) (*os.File, error) {
	if _, err := ensureDirectory(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return openAppend(path)
}

func openAppend(path string) (*os.File, error) {
	if _, err := os.Stat(path); err == nil {
		if err := writable(path); err != nil {
			return nil, newIOError("access", path, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, defaultFilePerm)
	if err != nil {
		return nil, newIOError("open", path, err)
	}
	return f, nil
}

// WithConfig replaces the whole configuration. Options listed after it still apply.
func WithConfig(conf Config) Option {
	return func(l *Logger) {
		l.conf = conf
	}
}

// WithExtension sets the file suffix, with or without a leading dot.
func WithExtension(ext string) Option {
	return func(l *Logger) {
		l.conf.Extension = ext
	}
}

// WithDateFormat sets the timestamp layout using Go's reference time.
//
// Example:
//
//	logger, err := filelog.New(dir, filelog.DebugIssuer, filelog.WithDateFormat(time.RFC3339Nano))
func WithDateFormat(layout string) Option {
	return func(l *Logger) {
		l.conf.DateFormat = layout
	}
}

// WithFilename fixes the file name. A name ending in .log or .txt is used as
// is; any other name gets the configured extension appended.
func WithFilename(name string) Option {
	return func(l *Logger) {
		l.conf.Filename = name
	}
}

// WithFlushFrequency forces a sync of the file every n successful writes.
// Zero or a negative n leaves flushing to the operating system.
func WithFlushFrequency(n int) Option {
	return func(l *Logger) {
		if n < 0 {
			n = 0
		}
		l.conf.FlushFrequency = n
	}
}

// WithPrefix sets the prefix of generated file names.
func WithPrefix(prefix string) Option {
	return func(l *Logger) {
		l.conf.Prefix = prefix
	}
}

// WithLogFormat sets the line template. An empty template selects the
// default "[timestamp] [level] message" format.
//
// Example:
//
//	filelog.WithLogFormat("{date} {level}{level-padding} {message} {context}")
func WithLogFormat(format string) Option {
	return func(l *Logger) {
		l.conf.LogFormat = format
	}
}

// WithAppendContext toggles the indented context dump below each line.
func WithAppendContext(enabled bool) Option {
	return func(l *Logger) {
		l.conf.AppendContext = enabled
	}
}

// WithClock overrides the time source used for timestamps and file names.
func WithClock(clock func() time.Time) Option {
	return func(l *Logger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithRecorder attaches an observer that is told about every record and write.
func WithRecorder(r Recorder) Option {
	return func(l *Logger) {
		l.recorder = r
	}
}

// bindStream attaches the Logger to a process-owned standard stream.
func (l *Logger) bindStream(target string) error {
	name := strings.TrimPrefix(target, StreamScheme)
	f, ok := streams[name]
	if !ok || f == nil {
		return newIOError("stream", target, os.ErrNotExist)
	}
	l.path = target
	l.file = f
	l.stream = true
	return nil
}

// ensureDirectory creates directory and its parents. A creation error is
// tolerated when the directory exists afterwards, e.g. when another process
// created it in between.
func ensureDirectory(directory string) (string, error) {
	dir := strings.TrimRight(directory, string(filepath.Separator))
	switch {
	case directory == "":
		dir = "."
	case dir == "":
		dir = string(filepath.Separator)
	}
	if err := os.MkdirAll(dir, defaultDirPerm); err != nil {
		if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
			return "", newIOError("mkdir", dir, err)
		}
	}
	return dir, nil
}

// FileName computes the base name of a log file for conf on the given date:
// the explicit Filename (gaining conf.Extension unless it already ends in
// .log or .txt), or Prefix + YYYY-MM-DD + "." + Extension.
func FileName(conf Config, at time.Time) string {
	ext := strings.TrimPrefix(conf.Extension, ".")
	if name := conf.Filename; name != "" {
		if recognizedExtensions[strings.ToLower(filepath.Ext(name))] {
			return name
		}
		return name + "." + ext
	}
	return conf.Prefix + at.Format(fileDateLayout) + "." + ext
}

// Log writes msg at level if level passes the threshold.
//
// An unknown level is a *ConfigurationError and nothing is written, whatever
// the threshold. A level below the threshold returns nil without formatting or
// I/O. Otherwise the record is formatted (a *FormatError aborts it) and written
// (a failed write is an *IOError).
//
// Parameters:
//   - level: one of EmergencyIssuer through DebugIssuer.
//   - msg: a string, fmt.Stringer, error, or any value printable by fmt.Sprint.
//   - ctx: structured context; may be nil.
func (l *Logger) Log(level Severity, msg interface{}, ctx Fields) error {
	if _, err := Priority(level); err != nil {
		l.failed(err)
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !Allows(l.threshold, level) {
		if l.recorder != nil {
			l.recorder.Dropped(level)
		}
		return nil
	}
	if l.recorder != nil {
		l.recorder.Emitted(level)
	}

	text, err := l.formatMessage(level, msg, ctx)
	if err != nil {
		l.failed(err)
		return err
	}
	return l.write(text)
}

// Write appends text verbatim to the open handle. On success it records the
// trimmed text as the last line and, when a flush frequency is configured,
// forces a sync every FlushFrequency writes.
func (l *Logger) Write(text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.write(text)
}

// write is Write without locking. The caller must hold l.mu.
func (l *Logger) write(text string) error {
	if l.closed || l.file == nil {
		err := newIOError("write", l.path, ErrClosed)
		l.failed(err)
		return err
	}
	n, err := l.file.WriteString(text)
	if err != nil {
		err = newIOError("write", l.path, err)
		l.failed(err)
		return err
	}
	l.lastLine = strings.TrimSpace(text)
	l.count++
	if l.recorder != nil {
		l.recorder.Written(n)
	}

	if l.conf.FlushFrequency > 0 && l.count%l.conf.FlushFrequency == 0 {
		return l.flush()
	}
	return nil
}

// flush forces buffered data to disk. Standard streams are not synced: they
// are unbuffered here and often refuse fsync.
func (l *Logger) flush() error {
	if l.stream {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		err = newIOError("sync", l.path, err)
		l.failed(err)
		return err
	}
	if l.recorder != nil {
		l.recorder.Flushed()
	}
	return nil
}

func (l *Logger) failed(err error) {
	if l.recorder != nil {
		l.recorder.Failed(err)
	}
}

// SetLevelThreshold changes the least severe level that is written. It takes
// effect on the next Log call. Unknown levels are rejected.
func (l *Logger) SetLevelThreshold(level Severity) error {
	if _, err := Priority(level); err != nil {
		return err
	}
	l.mu.Lock()
	l.threshold = level
	l.mu.Unlock()
	return nil
}

// LevelThreshold returns the current threshold.
func (l *Logger) LevelThreshold() Severity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.threshold
}

// SetDateFormat changes the timestamp layout used by subsequent Log calls.
func (l *Logger) SetDateFormat(layout string) {
	l.mu.Lock()
	l.conf.DateFormat = layout
	l.mu.Unlock()
}

// DateFormat returns the current timestamp layout.
func (l *Logger) DateFormat() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conf.DateFormat
}

// Config returns a copy of the current configuration.
func (l *Logger) Config() Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conf
}

// LogFilePath returns the resolved file path, or the stream target.
func (l *Logger) LogFilePath() string {
	return l.path
}

// LastLogLine returns the trimmed text of the latest successful write.
func (l *Logger) LastLogLine() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastLine
}

// LineCount returns the number of successful writes.
func (l *Logger) LineCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Close syncs and closes the file. It is safe to call more than once; only the
// first call does any work. Standard streams are left open because the process
// owns them, but the Logger still refuses further writes.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	f := l.file
	l.file = nil
	if f == nil || l.stream {
		return nil
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return newIOError("sync", l.path, err)
	}
	if err := f.Close(); err != nil {
		return newIOError("close", l.path, err)
	}
	return nil
}

// Emergency logs a message meaning the system is unusable.
func (l *Logger) Emergency(msg interface{}, ctx ...Fields) error {
	return l.Log(EmergencyIssuer, msg, mergeFields(ctx))
}

// Alert logs a message requiring immediate action.
func (l *Logger) Alert(msg interface{}, ctx ...Fields) error {
	return l.Log(AlertIssuer, msg, mergeFields(ctx))
}

// Critical logs a critical condition.
func (l *Logger) Critical(msg interface{}, ctx ...Fields) error {
	return l.Log(CriticalIssuer, msg, mergeFields(ctx))
}

// Error logs a runtime error.
func (l *Logger) Error(msg interface{}, ctx ...Fields) error {
	return l.Log(ErrorIssuer, msg, mergeFields(ctx))
}

// Warning logs an exceptional occurrence that is not an error.
func (l *Logger) Warning(msg interface{}, ctx ...Fields) error {
	return l.Log(WarningIssuer, msg, mergeFields(ctx))
}

// Notice logs a normal but significant event.
func (l *Logger) Notice(msg interface{}, ctx ...Fields) error {
	return l.Log(NoticeIssuer, msg, mergeFields(ctx))
}

// Info logs an informational message.
func (l *Logger) Info(msg interface{}, ctx ...Fields) error {
	return l.Log(InfoIssuer, msg, mergeFields(ctx))
}

// Debug logs detailed diagnostics.
func (l *Logger) Debug(msg interface{}, ctx ...Fields) error {
	return l.Log(DebugIssuer, msg, mergeFields(ctx))
}
