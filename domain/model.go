package domain

import (
	"time"
)

type JobStatus string

const (
	JobStatusReceived      JobStatus = "received"
	JobStatusAuthenticated JobStatus = "authenticated"
	JobStatusFetching      JobStatus = "fetching"
	JobStatusExtracting    JobStatus = "extracting"
	JobStatusPublishing    JobStatus = "publishing"
	JobStatusCompleted     JobStatus = "completed"
	JobStatusFailed        JobStatus = "failed"
)

// Job is the ephemeral per-request state. It is owned by the orchestrator for
// the duration of one request and never shared between requests.
type Job struct {
	ID              string
	SourceURL       string
	LocalInputPath  string
	LocalOutputPath string
	StartedAt       time.Time
	Status          JobStatus
}

func NewJob(id string, sourceURL string) *Job {
	return &Job{
		ID:        id,
		SourceURL: sourceURL,
		StartedAt: time.Now(),
		Status:    JobStatusReceived,
	}
}

// Advance moves the job to the next pipeline status if the transition is allowed.
func (j *Job) Advance(status JobStatus) error {
	if !isValidTransition(j.Status, status) {
		return NewPipelineError(KindInternal, "invalid job transition", nil)
	}
	j.Status = status
	return nil
}

// Fail marks the job terminally failed.
func (j *Job) Fail() {
	j.Status = JobStatusFailed
}

// Elapsed returns wall-clock time since the job was accepted.
func (j *Job) Elapsed() time.Duration {
	return time.Since(j.StartedAt)
}

func isValidTransition(from, to JobStatus) bool {
	switch from {
	case JobStatusReceived:
		return to == JobStatusAuthenticated || to == JobStatusFetching
	case JobStatusAuthenticated:
		return to == JobStatusFetching
	case JobStatusFetching:
		return to == JobStatusExtracting
	case JobStatusExtracting:
		return to == JobStatusPublishing
	case JobStatusPublishing:
		return to == JobStatusCompleted
	default:
		return false
	}
}

// ModelHandle represents the loaded separation model. It is created once per
// process and only read afterwards.
type ModelHandle struct {
	Name     string
	Binary   string
	LoadedAt time.Time
}

type ExtractionResult struct {
	VocalsURL             string
	ProcessingTimeSeconds float64
}
