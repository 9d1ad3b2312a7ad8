package utils

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBackgroundProcessManager_Shutdown(t *testing.T) {
	bpm := NewBackgroundProcessManager()
	started := make(chan struct{})
	stopped := make(chan struct{})

	bpm.StartProcess("scheduler", "fires reminders", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(stopped)
	})
	<-started

	if got := bpm.ListProcesses(); len(got) != 1 || got[0].Name != "scheduler" || got[0].Description != "fires reminders" {
		t.Errorf("ListProcesses() = %+v", got)
	}

	if err := bpm.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	select {
	case <-stopped:
	default:
		t.Error("process did not observe cancellation")
	}
	if n := bpm.GetProcessCount(); n != 0 {
		t.Errorf("GetProcessCount() = %d after shutdown", n)
	}
}

func TestBackgroundProcessManager_ShutdownTimeout(t *testing.T) {
	bpm := NewBackgroundProcessManager()
	release := make(chan struct{})
	defer close(release)

	bpm.StartProcess("stuck", "ignores cancellation", func(ctx context.Context) {
		<-release
	})

	if err := bpm.Shutdown(20 * time.Millisecond); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Shutdown() error = %v, want DeadlineExceeded", err)
	}
}

func TestBackgroundProcessManager_StopAndReplace(t *testing.T) {
	bpm := NewBackgroundProcessManager()
	firstDone := make(chan struct{})

	bpm.StartProcess("worker", "first", func(ctx context.Context) {
		<-ctx.Done()
		close(firstDone)
	})
	bpm.StartProcess("worker", "second", func(ctx context.Context) {
		<-ctx.Done()
	})

	select {
	case <-firstDone:
	case <-time.After(time.Second):
		t.Fatal("replaced process was not cancelled")
	}

	if got := bpm.ListProcesses(); len(got) != 1 || got[0].Description != "second" {
		t.Errorf("ListProcesses() = %+v", got)
	}

	bpm.StopProcess("worker")
	if n := bpm.GetProcessCount(); n != 0 {
		t.Errorf("GetProcessCount() = %d after stop", n)
	}

	bpm.StartProcess("panics", "recovers", func(ctx context.Context) { panic("boom") })
	if err := bpm.Shutdown(time.Second); err != nil {
		t.Errorf("Shutdown() after panic error = %v", err)
	}
}
