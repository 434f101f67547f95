package model

import "strings"

// JobStatus classifies the free-form status string of a VideoJob.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	// StatusUnknown covers anything the backend sends outside the known set.
	StatusUnknown JobStatus = "unknown"
)

// ParseStatus matches case-insensitively against the known status set.
func ParseStatus(s string) JobStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending
	case "processing":
		return StatusProcessing
	case "completed":
		return StatusCompleted
	case "failed":
		return StatusFailed
	default:
		return StatusUnknown
	}
}

// IsFinished reports whether the job has reached a terminal state.
func (s JobStatus) IsFinished() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanDownload reports whether the job's artifact is ready to fetch.
// Only completed jobs expose a zip.
func (j VideoJob) CanDownload() bool {
	return ParseStatus(j.Status) == StatusCompleted
}
