package notes

import (
	"context"
	"sync"
)

// ActionItemBackend is what an ActionItemStore needs from the server. *ActionItemClient implements it.
type ActionItemBackend interface {
	List(ctx context.Context) ([]ActionItem, error)
	Create(ctx context.Context, description string) (ActionItem, error)
	Update(ctx context.Context, id ID, fields ActionItemFields) (ActionItem, error)
	Complete(ctx context.Context, id ID) (ActionItem, error)
}

// NoteExtractor turns a note into action items server side. *NoteClient implements it.
type NoteExtractor interface {
	Extract(ctx context.Context, id ID) ([]ActionItem, error)
}

// ActionItemStore owns the client-side list of action items, with the same rules as NoteStore: local state
// changes only after the server confirms, by appending or replacing by id.
type ActionItemStore struct {
	backend ActionItemBackend

	mu    sync.Mutex
	items []ActionItem
	loads int
	err   *OpError

	obs observers
}

func NewActionItemStore(backend ActionItemBackend) *ActionItemStore {
	return &ActionItemStore{backend: backend}
}

// Load replaces the local items with the server's list. See NoteStore.Load.
func (s *ActionItemStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loads++
	s.err = nil
	s.mu.Unlock()
	s.obs.notify()

	items, err := s.backend.List(ctx)

	s.mu.Lock()
	s.loads--
	if err != nil {
		s.err = &OpError{Op: "fetch action items", Err: err}
	} else {
		s.items = append([]ActionItem{}, items...)
	}
	s.mu.Unlock()
	s.obs.notify()
	return err
}

func (s *ActionItemStore) Add(ctx context.Context, description string) (ActionItem, error) {
	item, err := s.backend.Create(ctx, description)
	if err != nil {
		s.fail("add action item", err)
		return ActionItem{}, err
	}
	s.mu.Lock()
	s.upsert(item)
	s.mu.Unlock()
	s.obs.notify()
	return item, nil
}

// Update replaces the local item with the server's copy; unknown ids are left alone.
func (s *ActionItemStore) Update(ctx context.Context, id ID, fields ActionItemFields) (ActionItem, error) {
	item, err := s.backend.Update(ctx, id, fields)
	if err != nil {
		s.fail("update action item", err)
		return ActionItem{}, err
	}
	s.mu.Lock()
	replaced := s.replace(item)
	s.mu.Unlock()
	if replaced {
		s.obs.notify()
	}
	return item, nil
}

// Complete marks the item done on the server, then sets Completed locally. The response body is not used:
// success of the call is all it takes.
func (s *ActionItemStore) Complete(ctx context.Context, id ID) error {
	if _, err := s.backend.Complete(ctx, id); err != nil {
		s.fail("complete action item", err)
		return err
	}
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID.Equal(id) {
			s.items[i].Completed = true
			found = true
			break
		}
	}
	s.mu.Unlock()
	if found {
		s.obs.notify()
	}
	return nil
}

// Extract has the server create action items from the given note and merges them into the local list.
func (s *ActionItemStore) Extract(ctx context.Context, extractor NoteExtractor, noteID ID) ([]ActionItem, error) {
	items, err := extractor.Extract(ctx, noteID)
	if err != nil {
		s.fail("extract action items", err)
		return nil, err
	}
	s.mu.Lock()
	for _, item := range items {
		s.upsert(item)
	}
	s.mu.Unlock()
	if len(items) > 0 {
		s.obs.notify()
	}
	return items, nil
}

// ActionItems returns a copy of the local items, in order.
func (s *ActionItemStore) ActionItems() []ActionItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ActionItem{}, s.items...)
}

// ActionItem is analogous to NoteStore.Note.
func (s *ActionItemStore) ActionItem(id ID) (ActionItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID.Equal(id) {
			return item, true
		}
	}
	return ActionItem{}, false
}

func (s *ActionItemStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads > 0
}

func (s *ActionItemStore) Err() *OpError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ActionItemStore) Subscribe(fn func()) (unsubscribe func()) {
	return s.obs.subscribe(fn)
}

func (s *ActionItemStore) fail(op string, err error) {
	s.mu.Lock()
	s.err = &OpError{Op: op, Err: err}
	s.mu.Unlock()
	s.obs.notify()
}

func (s *ActionItemStore) replace(current ActionItem) bool {
	for i := range s.items {
		if s.items[i].ID.Equal(current.ID) {
			s.items[i] = current
			return true
		}
	}
	return false
}

func (s *ActionItemStore) upsert(current ActionItem) {
	if !s.replace(current) {
		s.items = append(s.items, current)
	}
}
