package models

import "time"

// VerificationSubmission is the modal form payload plus the submitting
// Discord identity. It lives only for the duration of one workflow run: it
// is handed to the external endpoint and discarded.
type VerificationSubmission struct {
	TraceID        string
	Name           string `validate:"required"`
	Email          string `validate:"required,email"`
	Phone          string `validate:"required,min=7"`
	Country        string `validate:"required"`
	IncomeBand     string
	DiscordUserTag string
	DiscordUserID  string
	SubmittedAt    time.Time
}

// OutcomeKind tags the terminal state of a verification run. Exactly one
// outcome is produced per run and drives the single user-visible reply.
type OutcomeKind string

const (
	OutcomeRoleGranted              OutcomeKind = "role_granted"
	OutcomeValidationFailed         OutcomeKind = "validation_failed"
	OutcomeExternalSubmissionFailed OutcomeKind = "external_submission_failed"
	OutcomeRoleGrantFailed          OutcomeKind = "role_grant_failed"
)

type VerificationOutcome struct {
	Kind OutcomeKind
	// Field names the offending form field when Kind is
	// OutcomeValidationFailed; empty otherwise.
	Field string
}
