package helpers

import (
	"sync"

	"github.com/google/uuid"
)

type UUIDv1 struct {
	mu sync.Mutex
}

// IDGenerator creates and initializes a new UUIDv1
func IDGenerator() *UUIDv1 {
	return &UUIDv1{}
}

// Generate returns a time-ordered id, so scan history sorts by creation
func (r *UUIDv1) Generate() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uuid.Must(uuid.NewUUID())
}
