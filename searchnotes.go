package notes

import "strings"

type notePredicate func(*Note) bool

// NoteScan filters a snapshot of a NoteStore's notes. All predicates must match.
type NoteScan struct {
	store      *NoteStore
	predicates []notePredicate
}

// Not negates the last predicate added. It will panic if no predicates were added.
func (s *NoteScan) Not() *NoteScan {
	i := len(s.predicates) - 1
	p := s.predicates[i]
	s.predicates[i] = func(note *Note) bool {
		return !p(note)
	}
	return s
}

// WithText looks for notes whose title or content contains needle, ignoring case. An empty needle matches every
// note.
func (s *NoteScan) WithText(needle string) *NoteScan {
	needle = strings.ToLower(needle)
	s.predicates = append(s.predicates, func(note *Note) bool {
		return strings.Contains(strings.ToLower(note.Title), needle) ||
			strings.Contains(strings.ToLower(note.Content), needle)
	})
	return s
}

// Results returns the matching notes in store order.
func (s *NoteScan) Results() []Note {
	var results []Note
	for _, note := range s.store.Notes() {
		note := note
		if s.match(&note) {
			results = append(results, note)
		}
	}
	return results
}

func (s *NoteScan) match(note *Note) bool {
	for _, match := range s.predicates {
		if !match(note) {
			return false
		}
	}
	return true
}

// SearchNotes starts a local scan; no remote call is made. Use Search for a server-side search.
func (s *NoteStore) SearchNotes() *NoteScan {
	return &NoteScan{
		store: s,
	}
}
