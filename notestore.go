package notes

import (
	"context"
	"sync"
)

// NoteBackend is what a NoteStore needs from the server. *NoteClient implements it.
type NoteBackend interface {
	List(ctx context.Context) ([]Note, error)
	Search(ctx context.Context, query string) ([]Note, error)
	Get(ctx context.Context, id ID) (Note, error)
	Create(ctx context.Context, fields NoteFields) (Note, error)
	Update(ctx context.Context, id ID, fields NoteFields) (Note, error)
	Delete(ctx context.Context, id ID) error
}

// NoteStore owns the client-side list of notes. The list only ever changes in response to a successful server
// call: a failed call leaves it as it was and records the failure in the store's error slot (see Err). Methods are
// safe to call from multiple goroutines; the lock is not held during network calls, so concurrent calls each hit
// the server and the last response to arrive wins.
type NoteStore struct {
	backend NoteBackend

	mu    sync.Mutex
	notes []Note
	loads int // Loads in flight.
	err   *OpError

	obs observers
}

func NewNoteStore(backend NoteBackend) *NoteStore {
	return &NoteStore{backend: backend}
}

// Load replaces the local notes with the server's list, keeping the server's order. It clears the error slot
// before starting. On failure the previous notes are kept.
func (s *NoteStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loads++
	s.err = nil
	s.mu.Unlock()
	s.obs.notify()

	notes, err := s.backend.List(ctx)

	s.mu.Lock()
	s.loads--
	if err != nil {
		s.err = &OpError{Op: "fetch notes", Err: err}
	} else {
		s.notes = append([]Note{}, notes...)
	}
	s.mu.Unlock()
	s.obs.notify()
	return err
}

// Fetch gets one note from the server and replaces the local copy with it, if there is one. A note that isn't in
// the local list is returned but not added.
func (s *NoteStore) Fetch(ctx context.Context, id ID) (Note, error) {
	note, err := s.backend.Get(ctx, id)
	if err != nil {
		s.fail("fetch note", err)
		return Note{}, err
	}
	s.mu.Lock()
	replaced := s.replace(note)
	s.mu.Unlock()
	if replaced {
		s.obs.notify()
	}
	return note, nil
}

// Add creates the note on the server and appends the server's copy locally.
func (s *NoteStore) Add(ctx context.Context, fields NoteFields) (Note, error) {
	note, err := s.backend.Create(ctx, fields)
	if err != nil {
		s.fail("add note", err)
		return Note{}, err
	}
	s.mu.Lock()
	// A Load that raced with us may already have brought the new note in.
	if !s.replace(note) {
		s.notes = append(s.notes, note)
	}
	s.mu.Unlock()
	s.obs.notify()
	return note, nil
}

// Update sends the new title and content and replaces the local note with the server's copy. If the note isn't
// in the local list (say, it was never loaded) nothing changes locally and no error is returned.
func (s *NoteStore) Update(ctx context.Context, id ID, fields NoteFields) (Note, error) {
	note, err := s.backend.Update(ctx, id, fields)
	if err != nil {
		s.fail("update note", err)
		return Note{}, err
	}
	s.mu.Lock()
	replaced := s.replace(note)
	s.mu.Unlock()
	if replaced {
		s.obs.notify()
	}
	return note, nil
}

// Remove deletes the note on the server, then drops it locally.
func (s *NoteStore) Remove(ctx context.Context, id ID) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		s.fail("delete note", err)
		return err
	}
	s.mu.Lock()
	removed := false
	for i := range s.notes {
		if s.notes[i].ID.Equal(id) {
			s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()
	if removed {
		s.obs.notify()
	}
	return nil
}

// Search runs a server-side search. The results are returned as is; the store's own list is not touched.
func (s *NoteStore) Search(ctx context.Context, query string) ([]Note, error) {
	notes, err := s.backend.Search(ctx, query)
	if err != nil {
		s.fail("search notes", err)
		return nil, err
	}
	return notes, nil
}

// Notes returns a copy of the local notes, in order.
func (s *NoteStore) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Note{}, s.notes...)
}

// Note looks up a note by id in the local list (no remote call is made).
func (s *NoteStore) Note(id ID) (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notes {
		if n.ID.Equal(id) {
			return n, true
		}
	}
	return Note{}, false
}

// Loading reports whether a Load is in flight.
func (s *NoteStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads > 0
}

// Err returns the error of the last failed operation, or nil. Only Load clears it.
func (s *NoteStore) Err() *OpError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Subscribe registers fn to be called after every change to the notes, the loading flag or the error slot.
func (s *NoteStore) Subscribe(fn func()) (unsubscribe func()) {
	return s.obs.subscribe(fn)
}

func (s *NoteStore) fail(op string, err error) {
	s.mu.Lock()
	s.err = &OpError{Op: op, Err: err}
	s.mu.Unlock()
	s.obs.notify()
}

// replace swaps in current for the local note with the same id. Must hold s.mu.
func (s *NoteStore) replace(current Note) bool {
	for i := range s.notes {
		if s.notes[i].ID.Equal(current.ID) {
			s.notes[i] = current
			return true
		}
	}
	return false
}
