// Package moderation moves user submissions through pending to approved or
// rejected. Approval promotes the payload into the store; rejection drops
// it. Neither terminal state is retained.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ajitpratap0/ecodir/internal/metrics"
	"github.com/ajitpratap0/ecodir/internal/models"
	"github.com/ajitpratap0/ecodir/internal/store"
)

var (
	// ErrInvalidSubmission is returned when a submission lacks a name or
	// names an unknown category.
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrInvalidDecision is returned by Decide for a status other than
	// approved or rejected.
	ErrInvalidDecision = errors.New("invalid moderation decision")
)

// SubmissionInput is what a user fills in on the public submission form.
type SubmissionInput struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Category    models.Category `json:"category,omitempty"`
	Description string          `json:"description"`
	WebsiteURL  string          `json:"websiteUrl"`
	LogoURL     string          `json:"logoUrl,omitempty"`
	Tags        []string        `json:"tags"`
}

// Outcome reports the effect of an approve or reject call. Found is false
// when the submission was not pending, in which case nothing changed and
// Status is empty.
type Outcome struct {
	Found  bool                    `json:"found"`
	Status models.SubmissionStatus `json:"status,omitempty"`
	Entity *models.Entity          `json:"entity,omitempty"`
}

// Workflow is the moderation queue over a store.
type Workflow struct {
	st     store.Store
	logger *slog.Logger
}

// NewWorkflow creates a Workflow backed by st.
func NewWorkflow(st store.Store, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{st: st, logger: logger}
}

// BuildPayload turns form input into the entity carried by a submission.
// A missing id becomes req-<uuid>, a missing category Brand and a missing
// logo the placeholder. Blank tags are dropped.
func BuildPayload(in SubmissionInput) (models.Entity, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Entity{}, fmt.Errorf("%w: name is required", ErrInvalidSubmission)
	}
	category := in.Category
	if category == "" {
		category = models.CategoryBrand
	}
	if !category.IsValid() {
		return models.Entity{}, fmt.Errorf("%w: unknown category %q", ErrInvalidSubmission, in.Category)
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = "req-" + uuid.NewString()
	}
	logo := in.LogoURL
	if logo == "" {
		logo = models.PlaceholderLogoURL
	}
	tags := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return models.Entity{
		ID:          id,
		Name:        name,
		Category:    category,
		Description: in.Description,
		LogoURL:     logo,
		Tags:        tags,
		WebsiteURL:  in.WebsiteURL,
	}, nil
}

// Submit validates in and queues it as a pending submission.
func (w *Workflow) Submit(ctx context.Context, in SubmissionInput) (models.Submission, error) {
	payload, err := BuildPayload(in)
	if err != nil {
		return models.Submission{}, err
	}
	sub, err := w.st.Submit(ctx, payload)
	if err != nil {
		return models.Submission{}, fmt.Errorf("moderation: submit: %w", err)
	}
	metrics.Inc(metrics.SubmissionsTotal)
	w.logger.Info("moderation: submission queued", "id", sub.ID, "name", payload.Name, "category", payload.Category)
	return sub, nil
}

// Pending returns the pending submissions, newest first.
func (w *Workflow) Pending(ctx context.Context) ([]models.Submission, error) {
	subs, err := w.st.ListSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("moderation: listing submissions: %w", err)
	}
	return subs, nil
}

// Decide moves the submission with the given id to status, which must be
// terminal. Deciding a submission that is no longer pending is a no-op.
func (w *Workflow) Decide(ctx context.Context, id string, status models.SubmissionStatus) (Outcome, error) {
	if !status.IsTerminal() {
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidDecision, status)
	}
	if status == models.StatusApproved {
		return w.approve(ctx, id)
	}
	return w.reject(ctx, id)
}

// Approve promotes the submission with the given id and is shorthand for
// Decide with StatusApproved.
func (w *Workflow) Approve(ctx context.Context, id string) (Outcome, error) {
	return w.Decide(ctx, id, models.StatusApproved)
}

// Reject drops the submission with the given id and is shorthand for Decide
// with StatusRejected.
func (w *Workflow) Reject(ctx context.Context, id string) (Outcome, error) {
	return w.Decide(ctx, id, models.StatusRejected)
}

func (w *Workflow) approve(ctx context.Context, id string) (Outcome, error) {
	entity, found, err := w.st.Approve(ctx, id)
	if err != nil {
		return Outcome{}, fmt.Errorf("moderation: approve %s: %w", id, err)
	}
	if !found {
		w.logger.Debug("moderation: approve ignored, submission not pending", "id", id)
		return Outcome{}, nil
	}
	metrics.Inc(metrics.SubmissionsApproved)
	w.logger.Info("moderation: submission approved", "id", id, "entity_id", entity.ID, "name", entity.Name)
	return Outcome{Found: true, Status: models.StatusApproved, Entity: &entity}, nil
}

func (w *Workflow) reject(ctx context.Context, id string) (Outcome, error) {
	found, err := w.st.Reject(ctx, id)
	if err != nil {
		return Outcome{}, fmt.Errorf("moderation: reject %s: %w", id, err)
	}
	if !found {
		w.logger.Debug("moderation: reject ignored, submission not pending", "id", id)
		return Outcome{}, nil
	}
	metrics.Inc(metrics.SubmissionsRejected)
	w.logger.Info("moderation: submission rejected", "id", id)
	return Outcome{Found: true, Status: models.StatusRejected}, nil
}
