package task

import (
	"context"
	"slices"
	"sync"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	tasks  []Task
	policy IDPolicy
	lastID int
}

func NewMemoryRepo(policy IDPolicy) *MemoryRepo {
	if policy == "" {
		policy = IDSequential
	}
	return &MemoryRepo{
		tasks:  make([]Task, 0),
		policy: policy,
	}
}

func (r *MemoryRepo) Policy() IDPolicy {
	return r.policy
}

// Seed appends tasks as given and moves the sequential counter past them.
func (r *MemoryRepo) Seed(ctx context.Context, tasks []Task) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range tasks {
		r.tasks = append(r.tasks, t)
		r.lastID = max(r.lastID, t.ID)
	}
	return nil
}

func (r *MemoryRepo) nextID() int {
	if r.policy == IDLength {
		return len(r.tasks) + 1
	}
	r.lastID++
	return r.lastID
}

func (r *MemoryRepo) List(ctx context.Context) ([]Task, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.tasks), nil
}

func (r *MemoryRepo) Create(ctx context.Context, text *string) (Task, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	t := NewTask(r.nextID(), text)
	r.tasks = append(r.tasks, t)
	return t, nil
}

func (r *MemoryRepo) Toggle(ctx context.Context, id int) (Task, bool, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.tasks, func(t Task) bool { return t.ID == id })
	if i == -1 {
		return Task{}, false, nil
	}
	r.tasks[i].Toggle()
	return r.tasks[i], true, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id int) (int, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.tasks)
	r.tasks = slices.DeleteFunc(r.tasks, func(t Task) bool { return t.ID == id })
	return before - len(r.tasks), nil
}
