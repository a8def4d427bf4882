package store

import (
	"context"
	"errors"

	"github.com/ajitpratap0/ecodir/internal/models"
)

var (
	// ErrNotFound is returned by Get and GetSubmission when the id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned by Add when another entity already uses the id.
	ErrDuplicateID = errors.New("duplicate entity id")

	// ErrInvalidEntity is returned when an entity lacks an id or a name, or
	// carries an unknown category.
	ErrInvalidEntity = errors.New("invalid entity")
)

// Store is the single source of truth for directory entities and pending
// submissions. Every mutation is serialized by the implementation.
//
// Operations on a missing id are no-ops reported through a boolean or a
// count, never through an error.
type Store interface {
	// Add appends an entity. The id must be unused.
	Add(ctx context.Context, entity models.Entity) error

	// Update replaces the entity with the same id in place. Returns false
	// when no entity has that id.
	Update(ctx context.Context, entity models.Entity) (bool, error)

	// Delete removes every entity with the given id and returns how many
	// were removed.
	Delete(ctx context.Context, id string) (int, error)

	// Get returns the first entity with the given id.
	Get(ctx context.Context, id string) (*models.Entity, error)

	// List returns a snapshot of all entities in insertion order.
	List(ctx context.Context) ([]models.Entity, error)

	// Submit queues a pending submission for payload. Newest submissions
	// come first in ListSubmissions.
	Submit(ctx context.Context, payload models.Entity) (models.Submission, error)

	// ListSubmissions returns the pending submissions, newest first.
	ListSubmissions(ctx context.Context) ([]models.Submission, error)

	// GetSubmission returns a pending submission by id.
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)

	// Approve promotes the submission payload into the entity set and drops
	// the submission, atomically. Returns false when the submission does not
	// exist.
	Approve(ctx context.Context, submissionID string) (models.Entity, bool, error)

	// Reject drops the submission without touching the entity set. Returns
	// false when the submission does not exist.
	Reject(ctx context.Context, submissionID string) (bool, error)

	// Stats returns directory counts.
	Stats(ctx context.Context) (*models.DirectoryStats, error)
}
