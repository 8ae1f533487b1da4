package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		err  bool
	}{
		{in: "debug", want: DebugLevel},
		{in: "INFO", want: InfoLevel},
		{in: "", want: InfoLevel},
		{in: " warning ", want: WarnLevel},
		{in: "error", want: ErrorLevel},
		{in: "loud", want: InfoLevel, err: true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err {
			t.Fatalf("ParseLevel(%q) err = %v, want err %v", tt.in, err, tt.err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultLoggerLevelsAndFields(t *testing.T) {
	var info, errs bytes.Buffer
	l := NewWriterLogger(&info, &errs, 0)

	l.Debug("hidden")
	if info.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", info.String())
	}

	child := l.WithFields(Fields{"cache": "fft"})
	child.Info("created", Fields{"key": 128})
	if got := info.String(); got != "[INFO] created cache=fft key=128\n" {
		t.Fatalf("info line = %q", got)
	}

	child.Error(errors.New("boom"), "failed")
	if got := errs.String(); got != "[ERROR] failed: boom cache=fft\n" {
		t.Fatalf("error line = %q", got)
	}

	// Level changes propagate to children.
	child.SetLevel(DebugLevel)
	l.Debug("visible")
	if !strings.Contains(info.String(), "[DEBUG] visible") {
		t.Fatalf("debug line missing after SetLevel: %q", info.String())
	}
}

func TestOrNoOp(t *testing.T) {
	if _, ok := OrNoOp(nil).(NoOpLogger); !ok {
		t.Fatal("OrNoOp(nil) should return NoOpLogger")
	}
	l := NewDefaultLogger()
	if OrNoOp(l) != Logger(l) {
		t.Fatal("OrNoOp should return a non-nil logger unchanged")
	}
}
