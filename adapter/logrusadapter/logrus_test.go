package logrusadapter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/sivaosorg/filelog"
)

var _ filelog.Interface = (*Logger)(nil)

func TestLogForwardsToLogrus(t *testing.T) {
	lg, hook := test.NewNullLogger()
	lg.SetLevel(logrus.DebugLevel)
	l, err := New(lg, filelog.NoticeIssuer)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_ = l.Info("dropped by threshold")
	_ = l.Alert("disk full", filelog.Fields{"mount": "/data"})

	entries := hook.AllEntries()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != logrus.ErrorLevel || e.Message != "disk full" {
		t.Errorf("Unexpected entry: level=%s message=%q", e.Level, e.Message)
	}
	if e.Data["severity"] != "alert" || e.Data["mount"] != "/data" {
		t.Errorf("Unexpected fields: %v", e.Data)
	}
}

func TestUnknownLevel(t *testing.T) {
	lg, hook := test.NewNullLogger()
	l, err := New(lg, filelog.DebugIssuer)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Log("verbose", "x", nil); !filelog.IsConfiguration(err) {
		t.Errorf("Expected configuration error, got %v", err)
	}
	if len(hook.AllEntries()) != 0 {
		t.Error("Expected no entries")
	}
}

func TestNewFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logrus", "app.log")
	l, err := NewFile(path, Config{Threshold: filelog.DebugIssuer, JSON: true})
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	_ = l.Debug("hello", filelog.Fields{"k": "v"})
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("Expected second Close to be a no-op, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("Expected a JSON line, got %q: %v", data, err)
	}
	if entry["msg"] != "hello" || entry["level"] != "debug" || entry["k"] != "v" || entry["severity"] != "debug" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}
