package task

import (
	"bytes"
	"encoding/json"
)

type Task struct {
	ID        int     `json:"id"`
	Text      *string `json:"text,omitempty"`
	Completed bool    `json:"completed"`
}

func NewTask(id int, text *string) Task {
	return Task{
		ID:        id,
		Text:      text,
		Completed: false,
	}
}

func (t *Task) Toggle() {
	t.Completed = !t.Completed
}

// TextValue returns the text or "" when the task has none.
func (t Task) TextValue() string {
	if t.Text == nil {
		return ""
	}
	return *t.Text
}

func StringPtr(s string) *string {
	return &s
}

// Seed is the collection every fresh process starts with.
func Seed() []Task {
	return []Task{
		NewTask(1, StringPtr("Learn React")),
		NewTask(2, StringPtr("Learn Node.js")),
		NewTask(3, StringPtr("Build a project")),
	}
}

// CoerceText turns a raw JSON "text" value into task text.
// Absent or null => nil, strings verbatim, anything else as compact JSON.
func CoerceText(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		v := string(raw)
		return &v
	}
	v := buf.String()
	return &v
}
