package services

import (
	"context"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/halalhustle/gatekeeper/internal/models"
)

// Submitter sends a validated submission to the external lead endpoint.
// A nil error means the endpoint confirmed the submission.
type Submitter interface {
	Submit(ctx context.Context, sub models.VerificationSubmission) error
}

// Normalizer canonicalizes a free-text country value.
type Normalizer interface {
	Normalize(ctx context.Context, country string) (string, error)
}

// RoleGranter flips the member's verification roles.
type RoleGranter interface {
	Grant(ctx context.Context, userID string) error
}

// VerificationWorkflow runs the linear pipeline validate → normalize →
// submit → grant and reports exactly one terminal outcome. The role grant
// happens if and only if the submitter returned success; no stage retries.
type VerificationWorkflow struct {
	validate   *validator.Validate
	normalizer Normalizer
	submitter  Submitter
	roles      RoleGranter
}

// NewVerificationWorkflow wires the pipeline. normalizer may be nil, in
// which case the country value passes through untouched.
func NewVerificationWorkflow(normalizer Normalizer, submitter Submitter, roles RoleGranter) *VerificationWorkflow {
	return &VerificationWorkflow{
		validate:   validator.New(),
		normalizer: normalizer,
		submitter:  submitter,
		roles:      roles,
	}
}

// Run executes the pipeline for one modal submission. The caller replies to
// the user only after Run returns, so every role mutation precedes the
// user-visible reply.
func (w *VerificationWorkflow) Run(ctx context.Context, sub models.VerificationSubmission) models.VerificationOutcome {
	if field, ok := w.invalidField(sub); ok {
		log.Printf("[verify] validation failed trace=%s field=%s", sub.TraceID, field)
		return models.VerificationOutcome{Kind: models.OutcomeValidationFailed, Field: field}
	}

	// The model's answer is advisory: if the call fails the raw user input
	// goes to the endpoint unchanged rather than failing the whole run.
	if w.normalizer != nil {
		if country, err := w.normalizer.Normalize(ctx, sub.Country); err != nil {
			log.Printf("[verify] country normalization failed trace=%s err=%v", sub.TraceID, err)
		} else if country != "" {
			sub.Country = country
		}
	}

	if err := w.submitter.Submit(ctx, sub); err != nil {
		log.Printf("[verify] submission failed trace=%s user=%s err=%v", sub.TraceID, sub.DiscordUserID, err)
		return models.VerificationOutcome{Kind: models.OutcomeExternalSubmissionFailed}
	}
	log.Printf("[verify] submission accepted trace=%s user=%s", sub.TraceID, sub.DiscordUserTag)

	if err := w.roles.Grant(ctx, sub.DiscordUserID); err != nil {
		log.Printf("[verify] role grant failed trace=%s user=%s err=%v", sub.TraceID, sub.DiscordUserID, err)
		return models.VerificationOutcome{Kind: models.OutcomeRoleGrantFailed}
	}

	return models.VerificationOutcome{Kind: models.OutcomeRoleGranted}
}

// invalidField reports the first failing form field, lowercased to the
// field name shown to the user.
func (w *VerificationWorkflow) invalidField(sub models.VerificationSubmission) (string, bool) {
	err := w.validate.Struct(sub)
	if err == nil {
		return "", false
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return strings.ToLower(errs[0].Field()), true
	}
	return "form", true
}
