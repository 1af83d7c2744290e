package payment

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrRecordNotFound is returned when a payment record is not found.
var ErrRecordNotFound = errors.New("payment record not found")

// Repository defines methods for payment record persistence.
type Repository interface {
	Insert(record *Record) error
	GetByID(id string) (*Record, error)
	GetBySessionID(sessionID string) (*Record, error)
	Update(record *Record) error
}

// InMemoryRepository implements Repository with in-memory storage. The
// demo service has no database; records live for the session.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewInMemoryRepository creates a new in-memory payment repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[string]*Record),
	}
}

// Insert adds a new payment record, assigning an id and timestamps when
// missing.
func (r *InMemoryRepository) Insert(record *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	now := time.Now()
	if record.CreatedAt == nil {
		record.CreatedAt = &now
	}
	if record.UpdatedAt == nil {
		record.UpdatedAt = &now
	}

	// Copy to prevent external mutation
	copied := *record
	r.records[record.ID] = &copied

	return nil
}

// GetByID retrieves a payment record by ID.
func (r *InMemoryRepository) GetByID(id string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	copied := *record
	return &copied, nil
}

// GetBySessionID retrieves a payment record by Stripe session ID.
func (r *InMemoryRepository) GetBySessionID(sessionID string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.SessionID == sessionID {
			copied := *record
			return &copied, nil
		}
	}

	return nil, ErrRecordNotFound
}

// Update updates an existing payment record.
func (r *InMemoryRepository) Update(record *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; !ok {
		return ErrRecordNotFound
	}

	now := time.Now()
	record.UpdatedAt = &now

	copied := *record
	r.records[record.ID] = &copied

	return nil
}
