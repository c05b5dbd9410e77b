package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownIDPolicy = errors.New("unknown id policy")

// IDPolicy decides which id a newly created task receives.
type IDPolicy string

const (
	// IDSequential never reuses an id, even after deletions.
	IDSequential IDPolicy = "sequential"
	// IDLength uses len(tasks)+1, which can collide after a delete.
	IDLength IDPolicy = "length"
)

func ParseIDPolicy(s string) (IDPolicy, error) {
	switch IDPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", IDSequential:
		return IDSequential, nil
	case IDLength:
		return IDLength, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIDPolicy, s)
	}
}

type Repo interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, text *string) (Task, error)
	// Toggle flips completion of the first task with the given id.
	Toggle(ctx context.Context, id int) (Task, bool, error)
	// Delete removes every task with the given id and reports how many went.
	Delete(ctx context.Context, id int) (int, error)
}
