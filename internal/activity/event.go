package activity

import "time"

type Type string

const (
	TaskCreated Type = "task_created"
	TaskToggled Type = "task_toggled"
	TaskDeleted Type = "task_deleted"
)

type Event struct {
	ID        int       `json:"id"`
	Type      Type      `json:"type"`
	TaskID    int       `json:"task_id"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  Metadata  `json:"metadata,omitempty"`
}

type Metadata map[string]any

// Filter narrows List. Zero Since and empty Types match everything.
type Filter struct {
	Since time.Time
	Types []Type
}
