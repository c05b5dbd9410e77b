package activity

import (
	"context"
	"maps"
	"sync"
	"time"
)

// Repo stores task activity events
type Repo interface {
	Record(ctx context.Context, typ Type, taskID int, metadata Metadata) error
	List(ctx context.Context, filter Filter) ([]Event, error)
	Clear(ctx context.Context) error
}

// MemoryRepo keeps events in process memory; they are gone on restart.
type MemoryRepo struct {
	mu     sync.RWMutex
	events []Event
	nextID int
	now    func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		events: make([]Event, 0),
		nextID: 1,
		now:    time.Now,
	}
}

func (r *MemoryRepo) Record(ctx context.Context, typ Type, taskID int, metadata Metadata) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Event{
		ID:        r.nextID,
		Type:      typ,
		TaskID:    taskID,
		Timestamp: r.now().UTC(),
		Metadata:  maps.Clone(metadata),
	})
	r.nextID++

	return nil
}

func (r *MemoryRepo) List(ctx context.Context, filter Filter) ([]Event, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	typeFilter := make(map[Type]bool, len(filter.Types))
	for _, t := range filter.Types {
		typeFilter[t] = true
	}

	out := make([]Event, 0)
	for _, e := range r.events {
		if !filter.Since.IsZero() && e.Timestamp.Before(filter.Since) {
			continue
		}
		if len(typeFilter) > 0 && !typeFilter[e.Type] {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *MemoryRepo) Clear(ctx context.Context) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make([]Event, 0)
	r.nextID = 1

	return nil
}
