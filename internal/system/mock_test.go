package system

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"
)

func TestMockFSReadWrite(t *testing.T) {
	mfs := NewMockFS()

	if err := mfs.WriteFile("/proj/.cj/image-name", []byte("cj-happy-turtle"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := mfs.ReadFile("/proj/.cj/image-name")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "cj-happy-turtle" {
		t.Errorf("ReadFile = %q, want %q", data, "cj-happy-turtle")
	}
}

func TestMockFSReadMissing(t *testing.T) {
	mfs := NewMockFS()

	_, err := mfs.ReadFile("/nope")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile missing = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFSAddFileCreatesParents(t *testing.T) {
	mfs := NewMockFS()
	mfs.AddFile("/proj/.cj/ssh/id_rsa", []byte("key"), 0600)

	if !mfs.IsDir("/proj/.cj/ssh") {
		t.Error("parent directory should exist")
	}
	if !mfs.Exists("/proj/.cj/ssh/id_rsa") {
		t.Error("file should exist")
	}
}

func TestMockFSRemoveAll(t *testing.T) {
	mfs := NewMockFS()
	mfs.AddFile("/proj/.cj/Dockerfile", []byte("FROM ubuntu"), 0644)
	mfs.AddFile("/proj/.cj/ssh/id_rsa", []byte("key"), 0600)
	mfs.AddFile("/proj/other", []byte("keep"), 0644)

	if err := mfs.RemoveAll("/proj/.cj"); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}

	if mfs.Exists("/proj/.cj/Dockerfile") || mfs.Exists("/proj/.cj/ssh/id_rsa") {
		t.Error("files under /proj/.cj should be gone")
	}
	if !mfs.Exists("/proj/other") {
		t.Error("sibling file should survive")
	}
}

func TestMockFSChmod(t *testing.T) {
	mfs := NewMockFS()
	mfs.AddFile("/proj/.cj/ssh/id_rsa", []byte("key"), 0644)

	if err := mfs.Chmod("/proj/.cj/ssh/id_rsa", 0600); err != nil {
		t.Fatalf("Chmod: %v", err)
	}

	mode, ok := mfs.FileMode("/proj/.cj/ssh/id_rsa")
	if !ok || mode != 0600 {
		t.Errorf("mode = %v, want 0600", mode)
	}
}

func TestMockExecutorRecordsCommands(t *testing.T) {
	m := NewMockExecutor()

	if _, err := m.Execute(context.Background(), "container", "image", "list"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	last, ok := m.LastCommand()
	if !ok {
		t.Fatal("expected a recorded command")
	}
	if last.Name != "container" || last.Kind != "execute" {
		t.Errorf("recorded %+v, want container/execute", last)
	}
}

func TestMockExecutorResponses(t *testing.T) {
	m := NewMockExecutor()
	m.AddResponse("container image", []byte("cj-happy-turtle\n"), nil)

	out, err := m.Execute(context.Background(), "container", "image", "list")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if string(out) != "cj-happy-turtle\n" {
		t.Errorf("output = %q", out)
	}
}

func TestMockExecutorDetached(t *testing.T) {
	m := NewMockExecutor()

	if err := m.ExecuteDetached("open", "https://example.com"); err != nil {
		t.Fatalf("ExecuteDetached: %v", err)
	}

	detached := m.CommandsOfKind("detached")
	if len(detached) != 1 {
		t.Fatalf("detached commands = %d, want 1", len(detached))
	}
	if detached[0].Name != "open" {
		t.Errorf("name = %q, want open", detached[0].Name)
	}
}

func TestMockProcessTerminateUnblocksWait(t *testing.T) {
	m := NewMockExecutor()
	proc, err := m.Start("ssh", "-N")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- proc.Wait() }()

	if err := proc.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Terminate")
	}
}

func TestMockProcessIgnoreTerminate(t *testing.T) {
	m := NewMockExecutor()
	proc, _ := m.Start("ssh", "-N")
	mp := m.StartedProcs[0]
	mp.IgnoreTerminate = true

	if err := proc.Terminate(); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- proc.Wait() }()

	select {
	case <-done:
		t.Fatal("Wait should still block when SIGTERM is ignored")
	case <-time.After(50 * time.Millisecond):
	}

	mp.Exit()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Exit")
	}
}
