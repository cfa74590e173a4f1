package domain

import (
	"testing"
)

func TestJobAdvancesThroughPipeline(t *testing.T) {
	job := NewJob("job-1", "https://example.com/song.mp3")

	statuses := []JobStatus{
		JobStatusAuthenticated,
		JobStatusFetching,
		JobStatusExtracting,
		JobStatusPublishing,
		JobStatusCompleted,
	}

	for _, status := range statuses {
		if err := job.Advance(status); err != nil {
			t.Fatalf("advance to %s: %v", status, err)
		}
	}

	if job.Status != JobStatusCompleted {
		t.Fatalf("expected completed, got %s", job.Status)
	}
}

func TestJobRejectsSkippedStages(t *testing.T) {
	job := NewJob("job-2", "https://example.com/song.mp3")

	if err := job.Advance(JobStatusPublishing); err == nil {
		t.Fatal("expected error when skipping to publishing from received")
	}
	if err := job.Advance(JobStatusCompleted); err == nil {
		t.Fatal("expected error when skipping to completed from received")
	}
}

func TestJobFailIsTerminal(t *testing.T) {
	job := NewJob("job-3", "https://example.com/song.mp3")

	if err := job.Advance(JobStatusFetching); err != nil {
		t.Fatalf("advance to fetching: %v", err)
	}
	job.Fail()

	if job.Status != JobStatusFailed {
		t.Fatalf("expected failed, got %s", job.Status)
	}
	if err := job.Advance(JobStatusExtracting); err == nil {
		t.Fatal("expected error advancing a failed job")
	}
}
