// Package fakeapi is an in-memory implementation of the notes REST backend, for tests. It speaks the same JSON
// and uses the same paths as the real server, assigns integer ids starting at 1, and can be told to fail.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ActionItem struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Request is a request as the backend received it.
type Request struct {
	Method string
	// Path including the raw query, if any.
	Path   string
	Body   string
	Header http.Header
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type actionItemRequest struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type Backend struct {
	mu       sync.Mutex
	nextID   int64
	notes    []Note
	items    []ActionItem
	requests []Request

	failStatus int
	failBody   string
	garble     bool
}

func New() *Backend {
	return &Backend{}
}

// AddNote stores a note directly, without going through HTTP, and returns its id.
func (b *Backend) AddNote(title, content string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.notes = append(b.notes, Note{ID: b.nextID, Title: title, Content: content})
	return b.nextID
}

// AddActionItem is analogous to AddNote.
func (b *Backend) AddActionItem(description string, completed bool) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.items = append(b.items, ActionItem{ID: b.nextID, Description: description, Completed: completed})
	return b.nextID
}

func (b *Backend) Notes() []Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Note{}, b.notes...)
}

func (b *Backend) ActionItems() []ActionItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]ActionItem{}, b.items...)
}

// Requests returns all requests received so far, oldest first.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request{}, b.requests...)
}

// Fail makes every following request fail with the given status and body, until Recover.
func (b *Backend) Fail(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failStatus = status
	b.failBody = body
}

// Garble makes every following request answer 200 with a body that isn't JSON, until Recover.
func (b *Backend) Garble() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.garble = true
}

func (b *Backend) Recover() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failStatus = 0
	b.failBody = ""
	b.garble = false
}

func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", b.listNotes)
		r.Post("/", b.createNote)
		r.Get("/search/", b.searchNotes)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", b.getNote)
			r.Put("/", b.updateNote)
			r.Delete("/", b.deleteNote)
			r.Post("/extract", b.extract)
		})
	})

	r.Route("/action-items", func(r chi.Router) {
		r.Get("/", b.listActionItems)
		r.Post("/", b.createActionItem)

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", b.updateActionItem)
			r.Put("/complete", b.completeActionItem)
		})
	})

	return r
}

// record logs the request and applies any failure mode set with Fail or Garble.
func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		path := r.URL.Path
		if r.URL.RawQuery != "" {
			path += "?" + r.URL.RawQuery
		}

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method: r.Method,
			Path:   path,
			Body:   string(body),
			Header: r.Header.Clone(),
		})
		failStatus, failBody, garble := b.failStatus, b.failBody, b.garble
		b.mu.Unlock()

		switch {
		case failStatus != 0:
			w.WriteHeader(failStatus)
			_, _ = io.WriteString(w, failBody)
		case garble:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, "{not json")
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (b *Backend) listNotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.Notes())
}

func (b *Backend) searchNotes(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	out := []Note{}
	for _, n := range b.Notes() {
		if q == "" || strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}
	if req.Title == "" || req.Content == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "title and content required"})
		return
	}
	id := b.AddNote(req.Title, req.Content)
	writeJSON(w, http.StatusCreated, Note{ID: id, Title: req.Title, Content: req.Content})
}

func (b *Backend) getNote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	for _, n := range b.Notes() {
		if n.ID == id {
			writeJSON(w, http.StatusOK, n)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Note not found"})
}

func (b *Backend) updateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}
	if req.Title == "" || req.Content == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "title and content required"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.notes {
		if b.notes[i].ID == id {
			b.notes[i].Title = req.Title
			b.notes[i].Content = req.Content
			writeJSON(w, http.StatusOK, b.notes[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Note not found"})
}

func (b *Backend) deleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.notes {
		if b.notes[i].ID == id {
			b.notes = append(b.notes[:i], b.notes[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Note not found"})
}

func (b *Backend) extract(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var content string
	found := false
	for _, n := range b.Notes() {
		if n.ID == id {
			content, found = n.Content, true
			break
		}
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Note not found"})
		return
	}
	created := []ActionItem{}
	for _, desc := range ExtractActionItems(content) {
		created = append(created, ActionItem{ID: b.AddActionItem(desc, false), Description: desc})
	}
	writeJSON(w, http.StatusOK, created)
}

func (b *Backend) listActionItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.ActionItems())
}

func (b *Backend) createActionItem(w http.ResponseWriter, r *http.Request) {
	var req actionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}
	if req.Description == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "description required"})
		return
	}
	id := b.AddActionItem(req.Description, false)
	writeJSON(w, http.StatusCreated, ActionItem{ID: id, Description: req.Description})
}

func (b *Backend) updateActionItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req actionItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid json"})
		return
	}
	if req.Description == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "description required"})
		return
	}
	b.modifyActionItem(w, id, func(item *ActionItem) {
		item.Description = req.Description
		item.Completed = req.Completed
	})
}

func (b *Backend) completeActionItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	b.modifyActionItem(w, id, func(item *ActionItem) {
		item.Completed = true
	})
}

func (b *Backend) modifyActionItem(w http.ResponseWriter, id int64, modify func(*ActionItem)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == id {
			modify(&b.items[i])
			writeJSON(w, http.StatusOK, b.items[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Action item not found"})
}

// ExtractActionItems picks out the lines of text that look like tasks: those containing an exclamation mark or
// starting with "todo:" (any case). Leading and trailing dashes and spaces are stripped.
func ExtractActionItems(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		line = strings.Trim(line, "- ")
		if strings.Contains(line, "!") || strings.HasPrefix(strings.ToLower(line), "todo:") {
			items = append(items, line)
		}
	}
	return items
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid id"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
