package tunnel

import (
	"testing"
	"time"

	"github.com/cjtool/cj/internal/system"
)

func TestStartSpawnsSSHReverseTunnel(t *testing.T) {
	exec := system.NewMockExecutor()
	sup := NewSupervisor(exec, WithStartupDelay(0))

	h := sup.Start("/home/u/.cj/ssh/id_rsa", 2222, 9999)
	defer h.Close()

	if !h.WaitReady(time.Second) {
		t.Fatal("WaitReady() = false, want true")
	}

	started := exec.CommandsOfKind("start")
	if len(started) != 1 {
		t.Fatalf("got %d started commands, want 1", len(started))
	}
	if started[0].Name != "ssh" {
		t.Errorf("command = %q, want %q", started[0].Name, "ssh")
	}

	want := []string{
		"-R", "9999:localhost:9999",
		"-p", "2222",
		"-i", "/home/u/.cj/ssh/id_rsa",
		"-N",
		"-o", "StrictHostKeyChecking=no",
		"-o", "UserKnownHostsFile=/dev/null",
		"root@localhost",
	}
	got := started[0].Args
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStartRespectsStartupDelay(t *testing.T) {
	exec := system.NewMockExecutor()
	sup := NewSupervisor(exec, WithStartupDelay(50*time.Millisecond))

	h := sup.Start("/key", 2222, 9999)
	defer h.Close()

	if h.Ready() {
		t.Error("Ready() = true before startup delay elapsed")
	}
	if got := exec.CommandsOfKind("start"); len(got) != 0 {
		t.Errorf("got %d started commands before delay, want 0", len(got))
	}

	if !h.WaitReady(time.Second) {
		t.Fatal("WaitReady() = false after delay, want true")
	}
}

func TestWaitReadyTimesOut(t *testing.T) {
	exec := system.NewMockExecutor()
	sup := NewSupervisor(exec, WithStartupDelay(time.Hour))

	h := sup.Start("/key", 2222, 9999)
	defer h.Close()

	start := time.Now()
	if h.WaitReady(20 * time.Millisecond) {
		t.Error("WaitReady() = true, want false")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("WaitReady blocked for %v, want bounded wait", elapsed)
	}
}

func TestSpawnFailureIsNonFatal(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.StartErr = errFake
	sup := NewSupervisor(exec, WithStartupDelay(0))

	h := sup.Start("/key", 2222, 9999)
	defer h.Close()

	if h.WaitReady(time.Second) {
		t.Error("WaitReady() = true after spawn failure, want false")
	}
}

func TestCloseTerminatesChild(t *testing.T) {
	exec := system.NewMockExecutor()
	sup := NewSupervisor(exec, WithStartupDelay(0))

	h := sup.Start("/key", 2222, 9999)
	if !h.WaitReady(time.Second) {
		t.Fatal("tunnel never became ready")
	}

	h.Close()

	if len(exec.StartedProcs) != 1 {
		t.Fatalf("got %d started processes, want 1", len(exec.StartedProcs))
	}
	if !exec.StartedProcs[0].Terminated {
		t.Error("child was not terminated on Close")
	}
	if h.Ready() {
		t.Error("Ready() = true after Close, want false")
	}
}

func TestCloseBoundedWhenChildIgnoresTerminate(t *testing.T) {
	exec := system.NewMockExecutor()
	sup := NewSupervisor(exec, WithStartupDelay(0))

	h := sup.Start("/key", 2222, 9999)
	if !h.WaitReady(time.Second) {
		t.Fatal("tunnel never became ready")
	}
	exec.StartedProcs[0].IgnoreTerminate = true

	start := time.Now()
	h.Close()
	elapsed := time.Since(start)

	if elapsed < stopTimeout {
		t.Errorf("Close returned after %v, want at least %v", elapsed, stopTimeout)
	}
	if elapsed > stopTimeout+time.Second {
		t.Errorf("Close blocked for %v, want bounded wait", elapsed)
	}
}

func TestCloseWithoutChildIsSafe(t *testing.T) {
	exec := system.NewMockExecutor()
	exec.StartErr = errFake
	sup := NewSupervisor(exec, WithStartupDelay(0))

	h := sup.Start("/key", 2222, 9999)
	h.WaitReady(time.Second)

	h.Close()
	h.Close()
}

func TestCloseBeforeEstablishmentReapsLateChild(t *testing.T) {
	exec := system.NewMockExecutor()
	sup := NewSupervisor(exec, WithStartupDelay(50*time.Millisecond))

	h := sup.Start("/key", 2222, 9999)
	h.Close()
	<-h.settled

	if h.Ready() {
		t.Error("Ready() = true after Close, want false")
	}
	procs := exec.StartedProcs
	if len(procs) != 1 {
		t.Fatalf("got %d started processes, want 1", len(procs))
	}
	if !procs[0].Terminated {
		t.Error("child spawned after Close was not terminated")
	}
}

var errFake = &fakeError{}

type fakeError struct{}

func (*fakeError) Error() string { return "spawn failed" }
