package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// writeUploadStub creates a stub upload tool that appends its invocation to
// a log file and exits with the given status.
func writeUploadStub(t *testing.T, exitCode int) (tool, callLog string) {
	t.Helper()

	dir := t.TempDir()
	callLog = filepath.Join(dir, "calls.log")
	tool = filepath.Join(dir, "upload.sh")

	script := fmt.Sprintf("#!/bin/sh\necho \"$1 $2 $3\" >> %s\nexit %d\n", callLog, exitCode)
	if err := os.WriteFile(tool, []byte(script), 0750); err != nil {
		t.Fatalf("failed to write stub tool: %v", err)
	}
	return tool, callLog
}

func fixtureArtifacts(t *testing.T, count int) string {
	t.Helper()

	dir := t.TempDir()
	for i := 0; i < count; i++ {
		path := filepath.Join(dir, fmt.Sprintf("pkg-%d.conda", i))
		if err := os.WriteFile(path, []byte("artifact"), 0660); err != nil {
			t.Fatalf("failed to create artifact fixture: %v", err)
		}
	}
	// a file the publisher must ignore
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0660); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	return dir
}

func readCalls(t *testing.T, callLog string) []string {
	t.Helper()

	data, err := os.ReadFile(callLog)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("failed to read call log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func newTestPublisher(dir, tool string) *Publisher {
	logger := zerolog.Nop()
	return &Publisher{
		Dir:    dir,
		Tool:   tool,
		Host:   "prefix.dev",
		Logger: &logger,
	}
}

func TestPublishSuccess(t *testing.T) {
	tool, callLog := writeUploadStub(t, 0)
	dir := fixtureArtifacts(t, 3)
	pub := newTestPublisher(dir, tool)

	results, err := pub.Publish(context.Background(), "mojo-community")
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, result := range results {
		if result.Err != nil {
			t.Errorf("upload of %s reported %v, want success", result.File, result.Err)
		}
	}

	calls := readCalls(t, callLog)
	if len(calls) != 3 {
		t.Fatalf("got %d upload invocations, want 3", len(calls))
	}
	for _, call := range calls {
		if !strings.HasPrefix(call, "upload https://prefix.dev/api/v1/upload/mojo-community ") {
			t.Errorf("unexpected upload invocation: %q", call)
		}
	}

	left, err := filepath.Glob(filepath.Join(dir, "*.conda"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("artifacts left behind after publish: %v", left)
	}
}

func TestPublishAllUploadsFail(t *testing.T) {
	tool, callLog := writeUploadStub(t, 1)
	dir := fixtureArtifacts(t, 4)
	pub := newTestPublisher(dir, tool)

	results, err := pub.Publish(context.Background(), "mojo-community")
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	// failed uploads are per-item results, never an overall error
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for _, result := range results {
		if result.Err == nil {
			t.Errorf("upload of %s reported success, want failure", result.File)
		}
	}

	if calls := readCalls(t, callLog); len(calls) != 4 {
		t.Errorf("got %d upload invocations, want 4", len(calls))
	}

	// local files are deleted even when their upload failed
	left, err := filepath.Glob(filepath.Join(dir, "*.conda"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("artifacts left behind after all-failing publish: %v", left)
	}
}

func TestPublishNoArtifacts(t *testing.T) {
	tool, callLog := writeUploadStub(t, 0)
	pub := newTestPublisher(t.TempDir(), tool)

	results, err := pub.Publish(context.Background(), "mojo-community")
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want none", len(results))
	}
	if calls := readCalls(t, callLog); len(calls) != 0 {
		t.Errorf("upload tool invoked %d times for an empty directory", len(calls))
	}
}
