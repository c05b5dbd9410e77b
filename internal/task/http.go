package task

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"tasklist/internal/activity"
)

const (
	msgNotFound     = "Task not found"
	msgDeleted      = "Task deleted"
	msgBadJSON      = "Invalid JSON"
	msgNoRoute      = "Not found"
	msgNotAllowed   = "Method not allowed"
	maxRequestBytes = 1 << 20
)

type Handler struct {
	repo     Repo
	activity activity.Repo
	logger   *log.Logger
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetActivity(repo activity.Repo) {
	h.activity = repo
}

func (h *Handler) SetLogger(logger *log.Logger) {
	h.logger = logger
}

// record never fails the request; a lost event is only logged.
func (h *Handler) record(ctx context.Context, typ activity.Type, taskID int, meta activity.Metadata) {
	if h.activity == nil {
		return
	}
	if err := h.activity.Record(ctx, typ, taskID, meta); err != nil && h.logger != nil {
		h.logger.Printf("activity record %s task=%d: %v", typ, taskID, err)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

type createRequest struct {
	Text json.RawMessage `json:"text"`
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// decodeCreate reads a create body. Only application/json bodies are
// parsed; anything else, empty bodies and non-object JSON carry no text.
// Malformed JSON is the only error.
func decodeCreate(r *http.Request) (*string, error) {
	if !isJSON(r) {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, errors.New("malformed json")
	}
	var in createRequest
	if err := json.Unmarshal(body, &in); err != nil {
		// valid JSON that is not an object
		return nil, nil
	}
	return CoerceText(in.Text), nil
}

// ParseID is parseInt-style: leading whitespace and sign are allowed,
// the leading integer is read, trailing characters are ignored and a
// "0x" prefix is hex.
func ParseID(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}
	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], base, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return int(n), true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}

// /api/tasks  (collection)
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		ts, err := h.repo.List(r.Context())
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, ts)
		return

	case http.MethodPost:
		text, err := decodeCreate(r)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, msgBadJSON)
			return
		}
		t, err := h.repo.Create(r.Context(), text)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, err.Error())
			return
		}
		h.record(r.Context(), activity.TaskCreated, t.ID, activity.Metadata{"text": t.TextValue()})
		writeJSON(w, http.StatusCreated, t)
		return

	default:
		writeMessage(w, http.StatusMethodNotAllowed, msgNotAllowed)
		return
	}
}

// /api/tasks/{id}
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	tail := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	tail = strings.Trim(tail, "/")
	if tail == "" {
		h.TasksRoot(w, r)
		return
	}
	if strings.Contains(tail, "/") {
		writeMessage(w, http.StatusNotFound, msgNoRoute)
		return
	}

	id, ok := ParseID(tail)

	switch r.Method {
	case http.MethodPut:
		if !ok {
			writeMessage(w, http.StatusNotFound, msgNotFound)
			return
		}
		t, found, err := h.repo.Toggle(r.Context(), id)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, err.Error())
			return
		}
		if !found {
			writeMessage(w, http.StatusNotFound, msgNotFound)
			return
		}
		h.record(r.Context(), activity.TaskToggled, t.ID, activity.Metadata{"completed": t.Completed})
		writeJSON(w, http.StatusOK, t)
		return

	case http.MethodDelete:
		if ok {
			n, err := h.repo.Delete(r.Context(), id)
			if err != nil {
				writeMessage(w, http.StatusInternalServerError, err.Error())
				return
			}
			if n > 0 {
				h.record(r.Context(), activity.TaskDeleted, id, activity.Metadata{"removed": n})
			}
		}
		writeMessage(w, http.StatusOK, msgDeleted)
		return

	default:
		writeMessage(w, http.StatusMethodNotAllowed, msgNotAllowed)
		return
	}
}
