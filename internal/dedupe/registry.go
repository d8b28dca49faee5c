package dedupe

import (
	"context"
	"sync"
	"time"
)

// StoredTicket is the registry entry for the first ticket seen with a signature.
type StoredTicket struct {
	TicketID  string    `json:"ticketId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Registry maps signatures to the first-seen ticket. Implementations must make
// RecordTicket an atomic check-and-insert: concurrent submissions of the same
// signature receive the same id.
type Registry interface {
	// FindPossibleDuplicate returns the first-recorded ticket id for the
	// signature, or "" if unseen or the signature is empty.
	FindPossibleDuplicate(ctx context.Context, signature string) (string, error)
	// RecordTicket stores the signature on first sight and returns its ticket
	// id; repeated calls with the same signature return the existing id.
	RecordTicket(ctx context.Context, signature string) (string, error)
}

// MemoryRegistry is a process-lifetime, mutex-guarded registry. Entries are
// never evicted or persisted.
type MemoryRegistry struct {
	mu      sync.Mutex
	entries map[string]StoredTicket
	ids     *IDGenerator
	now     func() time.Time
}

// NewMemoryRegistry constructs an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		entries: make(map[string]StoredTicket),
		ids:     NewIDGenerator(),
		now:     time.Now,
	}
}

// FindPossibleDuplicate implements Registry. It never fails.
func (r *MemoryRegistry) FindPossibleDuplicate(_ context.Context, signature string) (string, error) {
	if signature == "" {
		return "", nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.entries[signature]; ok {
		return stored.TicketID, nil
	}
	return "", nil
}

// RecordTicket implements Registry. The check-and-insert runs under one lock
// acquisition, so racing submissions of the same signature get one id.
func (r *MemoryRegistry) RecordTicket(_ context.Context, signature string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.entries[signature]; ok {
		return stored.TicketID, nil
	}
	id := r.ids.Next()
	r.entries[signature] = StoredTicket{TicketID: id, CreatedAt: r.now()}
	return id, nil
}

// Len reports the number of recorded signatures.
func (r *MemoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
