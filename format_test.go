package filelog

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

type stringer struct{ s string }

func (s stringer) String() string { return s.s }

// requestID dereferences its receiver, so a nil *requestID panics when called directly.
type requestID struct{ n int }

func (r *requestID) String() string { return fmt.Sprintf("req-%d", r.n) }

// exploding panics while being marshalled to JSON.
type exploding struct{}

func (exploding) MarshalJSON() ([]byte, error) { panic("boom") }

// TestTemplatePlaceholders verifies every placeholder and that unknown ones stay literal.
func TestTemplatePlaceholders(t *testing.T) {
	logger := newTestLogger(t, DebugIssuer,
		WithLogFormat("{date} [{level}]{level-padding}{priority} {message} {context} {unknown}"),
		WithAppendContext(false),
	)
	if err := logger.Info("hello", Fields{"a": 1}); err != nil {
		t.Fatalf("Unexpected error from Info: %v", err)
	}
	want := `2026-10-17 08:30:15.123456 [INFO]     6 hello {"a":1} {unknown}`
	if logger.LastLogLine() != want {
		t.Errorf("Expected %q, got %q", want, logger.LastLogLine())
	}
}

// TestTemplateLevelPadding verifies padding always reaches the fixed column.
func TestTemplateLevelPadding(t *testing.T) {
	logger := newTestLogger(t, DebugIssuer, WithLogFormat("{level}{level-padding}|"))
	for _, level := range Severities() {
		if err := logger.Log(level, "", nil); err != nil {
			t.Fatalf("Unexpected error at %s: %v", level, err)
		}
		line := readLogLastRaw(t, logger)
		if idx := strings.Index(line, "|"); idx != levelColumn {
			t.Errorf("Expected separator at column %d for %s, got %d (%q)", levelColumn, level, idx, line)
		}
	}
}

// readLogLastRaw returns the last line of the log without trimming.
func readLogLastRaw(t *testing.T, l *Logger) string {
	t.Helper()
	lines := strings.Split(strings.TrimSuffix(readLog(t, l.LogFilePath()), "\n"), "\n")
	return lines[len(lines)-1]
}

// TestTemplateEmptyContext verifies {context} renders an empty object for no context.
func TestTemplateEmptyContext(t *testing.T) {
	logger := newTestLogger(t, DebugIssuer, WithLogFormat("{message} {context}"))
	_ = logger.Notice("bare")
	if logger.LastLogLine() != "bare {}" {
		t.Errorf("Expected %q, got %q", "bare {}", logger.LastLogLine())
	}
}

// TestTemplateWithAppendedContext verifies the dump is still appended under a template.
func TestTemplateWithAppendedContext(t *testing.T) {
	logger := newTestLogger(t, DebugIssuer, WithLogFormat("{level}: {message}"))
	_ = logger.Warning("disk", Fields{"free": "low"})
	want := "WARNING: disk\n    free: low\n"
	if got := readLog(t, logger.LogFilePath()); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

// TestTimestampMicroseconds verifies the fractional second is truncated, never rounded.
func TestTimestampMicroseconds(t *testing.T) {
	at := time.Date(2026, time.January, 2, 3, 4, 5, 999999999, time.UTC)
	logger := newTestLogger(t, DebugIssuer, WithClock(func() time.Time { return at }))
	if got, want := logger.timestamp(), "2026-01-02 03:04:05.999999"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	logger.SetDateFormat("")
	if got, want := logger.timestamp(), "2026-01-02 03:04:05.999999"; got != want {
		t.Errorf("Expected empty layout to fall back to default, got %q", got)
	}
}

// TestContextDumpNested verifies nested maps are indented four spaces per level with sorted keys.
func TestContextDumpNested(t *testing.T) {
	dump, err := dumpContext(Fields{
		"user": map[string]interface{}{"id": 7, "name": "ada"},
		"ok":   true,
		"err":  errors.New("boom"),
	})
	if err != nil {
		t.Fatalf("Unexpected error from dumpContext: %v", err)
	}
	want := strings.Join([]string{
		"    err: boom",
		"    ok: true",
		"    user:",
		"        id: 7",
		"        name: ada",
	}, "\n")
	if dump != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, dump)
	}
}

// TestContextDumpSequence verifies sequences are rendered item by item.
func TestContextDumpSequence(t *testing.T) {
	dump, err := dumpContext(Fields{"tags": []interface{}{"a", stringer{"b"}}})
	if err != nil {
		t.Fatalf("Unexpected error from dumpContext: %v", err)
	}
	if !strings.HasPrefix(dump, "    tags:\n") || !strings.Contains(dump, "- a") || !strings.Contains(dump, "- b") {
		t.Errorf("Unexpected sequence dump:\n%s", dump)
	}
}

// TestFormatErrorAbortsRecord verifies an unrenderable context fails the call and writes nothing.
func TestFormatErrorAbortsRecord(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"context dump", nil},
		{"compact context", []Option{WithLogFormat("{message} {context}"), WithAppendContext(false)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := newTestLogger(t, DebugIssuer, tt.opts...)
			err := logger.Info("x", Fields{"ch": make(chan int)})
			if !IsFormat(err) {
				t.Fatalf("Expected format error, got %v", err)
			}
			if Kind(err) != "format" {
				t.Errorf("Expected kind format, got %q", Kind(err))
			}
			if content := readLog(t, logger.LogFilePath()); content != "" {
				t.Errorf("Expected nothing written, got %q", content)
			}
		})
	}
}

// TestMessageText verifies every accepted message shape resolves to text.
func TestMessageText(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{"plain", "plain"},
		{stringer{"stringer"}, "stringer"},
		{errors.New("failure"), "failure"},
		{42, "42"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := MessageText(tt.in); got != tt.want {
			t.Errorf("MessageText(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

// TestNilStringerRendersAsNil verifies a nil pointer Stringer is printed the way fmt prints it.
func TestNilStringerRendersAsNil(t *testing.T) {
	var id *requestID

	t.Run("message", func(t *testing.T) {
		logger := newTestLogger(t, DebugIssuer)
		if err := logger.Info(id); err != nil {
			t.Fatalf("Unexpected error from Info: %v", err)
		}
		if want := "[2026-10-17 08:30:15.123456] [info] <nil>"; logger.LastLogLine() != want {
			t.Errorf("Expected %q, got %q", want, logger.LastLogLine())
		}
	})

	t.Run("appended context", func(t *testing.T) {
		logger := newTestLogger(t, DebugIssuer)
		if err := logger.Info("x", Fields{"id": id}); err != nil {
			t.Fatalf("Unexpected error from Info: %v", err)
		}
		want := "[2026-10-17 08:30:15.123456] [info] x\n    id: <nil>\n"
		if got := readLog(t, logger.LogFilePath()); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})

	t.Run("template context", func(t *testing.T) {
		logger := newTestLogger(t, DebugIssuer, WithLogFormat("{message} {context}"), WithAppendContext(false))
		if err := logger.Info(id, Fields{"id": id}); err != nil {
			t.Fatalf("Unexpected error from Info: %v", err)
		}
		if want := `<nil> {"id":"<nil>"}`; logger.LastLogLine() != want {
			t.Errorf("Expected %q, got %q", want, logger.LastLogLine())
		}
	})

	if got := MessageText(&requestID{n: 7}); got != "req-7" {
		t.Errorf("Expected %q, got %q", "req-7", got)
	}
}

// TestCompactContextPanicIsFormatError verifies a panicking marshaller fails the record instead of the caller.
func TestCompactContextPanicIsFormatError(t *testing.T) {
	logger := newTestLogger(t, DebugIssuer, WithLogFormat("{message} {context}"), WithAppendContext(false))
	err := logger.Info("x", Fields{"v": exploding{}})
	if !IsFormat(err) {
		t.Fatalf("Expected format error, got %v", err)
	}
	if content := readLog(t, logger.LogFilePath()); content != "" {
		t.Errorf("Expected nothing written, got %q", content)
	}
}

// TestContextDumpPlainKeys verifies keys that read as YAML scalars are not quoted.
func TestContextDumpPlainKeys(t *testing.T) {
	dump, err := dumpContext(Fields{"n": 1.5, "y": true, "no": "off", "404": "x"})
	if err != nil {
		t.Fatalf("Unexpected error from dumpContext: %v", err)
	}
	want := strings.Join([]string{
		"    404: x",
		"    n: 1.5",
		`    no: "off"`,
		"    y: true",
	}, "\n")
	if dump != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, dump)
	}
}
