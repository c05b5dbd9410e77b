package activity

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

func parseTypes(raw []string) []Type {
	var out []Type
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, Type(part))
			}
		}
	}
	return out
}

// /api/activity
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		filter := Filter{Types: parseTypes(q["type"])}
		if s := strings.TrimSpace(q.Get("since")); s != "" {
			since, err := time.Parse(time.RFC3339, s)
			if err != nil {
				writeMessage(w, http.StatusBadRequest, "invalid since")
				return
			}
			filter.Since = since
		}
		events, err := h.repo.List(r.Context(), filter)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, events)

	case http.MethodDelete:
		if err := h.repo.Clear(r.Context()); err != nil {
			writeMessage(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
