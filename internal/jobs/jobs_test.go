package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingBoard struct {
	calls atomic.Int32
	err   error
}

func (b *countingBoard) ClearCompleted() (int, error) {
	b.calls.Add(1)
	return 2, b.err
}

func TestSetBoardCleanup_InvalidSpec(t *testing.T) {
	s := New(time.UTC)
	if err := s.SetBoardCleanup("every morning", &countingBoard{}); err == nil {
		t.Error("expected error for invalid spec")
	}
	if !s.Next().IsZero() {
		t.Error("no job should be scheduled after a rejected spec")
	}
}

func TestSetBoardCleanup_ReplaceAndDisable(t *testing.T) {
	s := New(time.UTC)
	s.Start()
	defer s.Stop(context.Background())

	board := &countingBoard{}
	if err := s.SetBoardCleanup("0 4 * * *", board); err != nil {
		t.Fatal(err)
	}
	first := s.Next()
	if first.IsZero() || first.Hour() != 4 {
		t.Errorf("Next = %v, want 04:00", first)
	}

	if err := s.SetBoardCleanup("30 5 * * *", board); err != nil {
		t.Fatal(err)
	}
	if got := s.Next(); got.Hour() != 5 || got.Minute() != 30 {
		t.Errorf("Next after replace = %v, want 05:30", got)
	}
	if n := len(s.cron.Entries()); n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}

	if err := s.SetBoardCleanup("", board); err != nil {
		t.Fatal(err)
	}
	if !s.Next().IsZero() || len(s.cron.Entries()) != 0 {
		t.Error("empty spec should remove the job")
	}
}

func TestCleanupRuns(t *testing.T) {
	s := New(time.UTC)
	board := &countingBoard{}
	if err := s.SetBoardCleanup("@every 1s", board); err != nil {
		t.Fatal(err)
	}
	s.Start()

	deadline := time.After(5 * time.Second)
	for board.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("cleanup job never ran")
		case <-time.After(50 * time.Millisecond):
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}

func TestCleanupJobSurvivesErrors(t *testing.T) {
	board := &countingBoard{err: errors.New("store closed")}
	cleanupJob(board)()
	if board.calls.Load() != 1 {
		t.Error("cleanup job should call ClearCompleted")
	}
}
