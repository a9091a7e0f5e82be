package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
}

func TestLoggerUnknownFormat(t *testing.T) {
	if err := Init(WithFormat("xml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLoggerWritesText(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Info(context.Background(), "test message", String("k", "v"), Int("n", 3))

	out := buf.String()
	for _, want := range []string{"test message", "k=v", "n=3", "source=", "logger_test.go"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf), WithFormat("json")); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().With(String("run_id", "abc")).Error(context.Background(), "boom", Error(errors.New("bad")))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "boom" || rec["run_id"] != "abc" || rec["level"] != "ERROR" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	ctx := context.Background()

	Get().Debug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %q", buf.String())
	}

	if err := SetLevelString("DEBUG"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	Get().Debug(ctx, "shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("debug not logged after SetLevelString: %q", buf.String())
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	_ = SetLevelString("info")
}

func TestLoggerNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithWriter(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Named("pipeline").Info(context.Background(), "scored", Int("patient_id", 101))
	if !strings.Contains(buf.String(), "pipeline.patient_id=101") {
		t.Fatalf("named group missing: %q", buf.String())
	}
}
