package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ajitpratap0/ecodir/internal/models"
)

// MemoryStore is an in-memory implementation of Store. Entities keep
// insertion order; submissions are kept newest first.
type MemoryStore struct {
	mu          sync.RWMutex
	entities    []models.Entity
	submissions []models.Submission
	now         func() time.Time
}

// NewMemoryStore creates a store holding a copy of seed. Seed entities must
// be valid and carry unique ids.
func NewMemoryStore(seed []models.Entity) (*MemoryStore, error) {
	m := &MemoryStore{
		entities: make([]models.Entity, 0, len(seed)),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for i := range seed {
		if err := validate(&seed[i]); err != nil {
			return nil, fmt.Errorf("seeding store: entity %d: %w", i, err)
		}
		if m.indexOf(seed[i].ID) >= 0 {
			return nil, fmt.Errorf("seeding store: %w: %s", ErrDuplicateID, seed[i].ID)
		}
		m.entities = append(m.entities, seed[i].Clone())
	}
	return m, nil
}

// Add appends an entity after checking it is valid and its id is unused.
func (m *MemoryStore) Add(_ context.Context, entity models.Entity) error {
	if err := validate(&entity); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(entity.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, entity.ID)
	}
	m.entities = append(m.entities, entity.Clone())
	return nil
}

// Update replaces the first entity with a matching id.
func (m *MemoryStore) Update(_ context.Context, entity models.Entity) (bool, error) {
	if err := validate(&entity); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(entity.ID)
	if i < 0 {
		return false, nil
	}
	m.entities[i] = entity.Clone()
	return true, nil
}

// Delete removes all entities with the given id.
func (m *MemoryStore) Delete(_ context.Context, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.entities[:0]
	removed := 0
	for i := range m.entities {
		if m.entities[i].ID == id {
			removed++
			continue
		}
		kept = append(kept, m.entities[i])
	}
	// Clear the tail so removed entities can be collected.
	for i := len(kept); i < len(m.entities); i++ {
		m.entities[i] = models.Entity{}
	}
	m.entities = kept
	return removed, nil
}

// Get returns a copy of the first entity with the given id.
func (m *MemoryStore) Get(_ context.Context, id string) (*models.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("entity %w: %s", ErrNotFound, id)
	}
	e := m.entities[i].Clone()
	return &e, nil
}

// List returns a deep copy of all entities in insertion order.
func (m *MemoryStore) List(_ context.Context) ([]models.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Entity, len(m.entities))
	for i := range m.entities {
		out[i] = m.entities[i].Clone()
	}
	return out, nil
}

// Submit prepends a new pending submission. The payload id may be empty;
// Approve assigns one.
func (m *MemoryStore) Submit(_ context.Context, payload models.Entity) (models.Submission, error) {
	if payload.Name == "" {
		return models.Submission{}, fmt.Errorf("%w: name is required", ErrInvalidEntity)
	}
	if !payload.Category.IsValid() {
		return models.Submission{}, fmt.Errorf("%w: unknown category %q", ErrInvalidEntity, payload.Category)
	}
	sub := models.Submission{
		ID:        "sub-" + uuid.NewString(),
		CreatedAt: m.now(),
		Status:    models.StatusPending,
		Data:      payload.Clone(),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = append([]models.Submission{sub}, m.submissions...)
	return cloneSubmission(sub), nil
}

// ListSubmissions returns the pending submissions, newest first.
func (m *MemoryStore) ListSubmissions(_ context.Context) ([]models.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Submission, len(m.submissions))
	for i := range m.submissions {
		out[i] = cloneSubmission(m.submissions[i])
	}
	return out, nil
}

// GetSubmission returns a pending submission by id.
func (m *MemoryStore) GetSubmission(_ context.Context, id string) (*models.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.submissionIndex(id)
	if i < 0 {
		return nil, fmt.Errorf("submission %w: %s", ErrNotFound, id)
	}
	sub := cloneSubmission(m.submissions[i])
	return &sub, nil
}

// Approve inserts the submission payload under its carried id and removes
// the submission. A missing or colliding payload id is replaced with a
// fresh one so approval never fails on identity.
func (m *MemoryStore) Approve(_ context.Context, submissionID string) (models.Entity, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.submissionIndex(submissionID)
	if i < 0 {
		return models.Entity{}, false, nil
	}
	entity := m.submissions[i].Data.Clone()
	if entity.ID == "" || m.indexOf(entity.ID) >= 0 {
		entity.ID = "req-" + uuid.NewString()
	}
	m.entities = append(m.entities, entity)
	m.submissions = append(m.submissions[:i], m.submissions[i+1:]...)
	return entity.Clone(), true, nil
}

// Reject removes the submission.
func (m *MemoryStore) Reject(_ context.Context, submissionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.submissionIndex(submissionID)
	if i < 0 {
		return false, nil
	}
	m.submissions = append(m.submissions[:i], m.submissions[i+1:]...)
	return true, nil
}

// Stats returns counts computed from the in-memory collections.
func (m *MemoryStore) Stats(_ context.Context) (*models.DirectoryStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &models.DirectoryStats{
		TotalEntities:      len(m.entities),
		ByCategory:         make(map[models.Category]int, len(models.ValidCategories)),
		PendingSubmissions: len(m.submissions),
	}
	for _, c := range models.ValidCategories {
		stats.ByCategory[c] = 0
	}
	for i := range m.entities {
		stats.ByCategory[m.entities[i].Category]++
	}
	return stats, nil
}

// --- helpers ---

// indexOf returns the position of the first entity with id, or -1.
// Callers must hold mu.
func (m *MemoryStore) indexOf(id string) int {
	for i := range m.entities {
		if m.entities[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *MemoryStore) submissionIndex(id string) int {
	for i := range m.submissions {
		if m.submissions[i].ID == id {
			return i
		}
	}
	return -1
}

func validate(e *models.Entity) error {
	if e.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidEntity)
	}
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEntity)
	}
	if !e.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidEntity, e.Category)
	}
	return nil
}

func cloneSubmission(s models.Submission) models.Submission {
	s.Data = s.Data.Clone()
	return s
}
