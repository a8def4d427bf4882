package models

import "time"

// SubmissionStatus is the moderation state of a submission.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// IsTerminal returns true for approved and rejected.
func (s SubmissionStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Submission is a user-proposed entity awaiting moderation. Only pending
// submissions are ever held; approval and rejection remove them.
type Submission struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Status    SubmissionStatus `json:"status"`
	Data      Entity           `json:"data"`
}
