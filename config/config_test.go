package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sivaosorg/filelog"
	"github.com/spf13/pflag"
)

func TestDecodeDefaults(t *testing.T) {
	conf, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if conf != filelog.DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", conf)
	}
}

func TestDecodeOptionMap(t *testing.T) {
	conf, err := Decode(map[string]interface{}{
		"extension":      "log",
		"prefix":         "error_",
		"flushFrequency": 1,
		"appendContext":  "false",
		"dateFormat":     "2006-01-02",
	})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if conf.Extension != "log" || conf.Prefix != "error_" || conf.FlushFrequency != 1 {
		t.Errorf("Unexpected config: %+v", conf)
	}
	if conf.AppendContext {
		t.Error("Expected appendContext to be disabled")
	}
	if conf.DateFormat != "2006-01-02" {
		t.Errorf("Expected date format to be decoded, got %q", conf.DateFormat)
	}
}

func TestDecodeFalsyValues(t *testing.T) {
	conf, err := Decode(map[string]interface{}{
		"filename":       false,
		"logFormat":      false,
		"flushFrequency": false,
	})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if conf.Filename != "" || conf.LogFormat != "" || conf.FlushFrequency != 0 {
		t.Errorf("Expected falsy values to disable their options, got %+v", conf)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode(map[string]interface{}{"flushFrequency": "often"}); err == nil {
		t.Error("Expected error for non-numeric flushFrequency")
	}
}

func TestViperLoaderDefaults(t *testing.T) {
	s, err := NewViperLoader("", "FILELOG_TEST_NONE").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := DefaultSettings()
	if *s != want {
		t.Errorf("Expected %+v, got %+v", want, *s)
	}
}

func TestViperLoaderFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "filelog.yaml")
	content := `
backend: file
directory: /var/log/app
threshold: warning
options:
  prefix: app_
  extension: log
  flushFrequency: 5
  filename: false
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FILELOG_TEST_THRESHOLD", "error")
	t.Setenv("FILELOG_TEST_APPEND_CONTEXT", "false")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("dir", "", "")
	fs.String("prefix", "", "")
	if err := fs.Parse([]string{"--dir", dir}); err != nil {
		t.Fatal(err)
	}

	s, err := NewViperLoader(file, "FILELOG_TEST").WithFlags(fs).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Directory != dir {
		t.Errorf("Expected flag to win for directory, got %q", s.Directory)
	}
	if s.Threshold != "error" {
		t.Errorf("Expected env to win for threshold, got %q", s.Threshold)
	}
	if s.Options.Prefix != "app_" {
		t.Errorf("Expected file prefix to survive an unset flag, got %q", s.Options.Prefix)
	}
	if s.Options.Extension != "log" || s.Options.FlushFrequency != 5 || s.Options.Filename != "" {
		t.Errorf("Unexpected options: %+v", s.Options)
	}
	if s.Options.AppendContext {
		t.Error("Expected env to disable appendContext")
	}
	if s.Options.DateFormat != filelog.DefaultDateFormat {
		t.Errorf("Expected default date format, got %q", s.Options.DateFormat)
	}
}

func TestViperLoaderMissingFile(t *testing.T) {
	_, err := NewViperLoader(filepath.Join(t.TempDir(), "missing.yaml"), "FILELOG_TEST").Load()
	if err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Settings)
		wantErr  bool
		wantConf bool
	}{
		{"defaults", func(*Settings) {}, false, false},
		{"unknown threshold", func(s *Settings) { s.Threshold = "verbose" }, true, true},
		{"unknown backend", func(s *Settings) { s.Backend = "syslog" }, true, true},
		{"unknown format", func(s *Settings) { s.Format = "xml" }, true, true},
		{"empty directory", func(s *Settings) { s.Directory = " " }, true, false},
		{"stream without scheme", func(s *Settings) { s.Backend = BackendStream }, true, true},
		{"stream with scheme", func(s *Settings) { s.Backend = BackendStream; s.Directory = "stream://stderr" }, false, false},
		{"negative flush", func(s *Settings) { s.Options.FlushFrequency = -1 }, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if filelog.IsConfiguration(err) != tt.wantConf {
				t.Errorf("Expected configuration error = %v, got %v", tt.wantConf, err)
			}
		})
	}
}
