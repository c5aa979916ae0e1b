package notes

import "strings"

type actionItemPredicate func(*ActionItem) bool

func negate(p actionItemPredicate) actionItemPredicate {
	return func(item *ActionItem) bool {
		return !p(item)
	}
}

type ActionItemScan struct {
	store      *ActionItemStore
	predicates []actionItemPredicate
}

// Not negates the last predicate added.  It will panic if no predicates were added.
func (s *ActionItemScan) Not() *ActionItemScan {
	i := len(s.predicates) - 1
	s.predicates[i] = negate(s.predicates[i])
	return s
}

// WithDescription looks for items whose description contains needle, ignoring case.
func (s *ActionItemScan) WithDescription(needle string) *ActionItemScan {
	needle = strings.ToLower(needle)
	s.predicates = append(s.predicates, func(item *ActionItem) bool {
		return strings.Contains(strings.ToLower(item.Description), needle)
	})
	return s
}

func (s *ActionItemScan) WithCompleted(value bool) *ActionItemScan {
	s.predicates = append(s.predicates, func(item *ActionItem) bool {
		return item.Completed == value
	})
	return s
}

func (s *ActionItemScan) Results() []ActionItem {
	var results []ActionItem
	for _, item := range s.store.ActionItems() {
		item := item
		if s.match(&item) {
			results = append(results, item)
		}
	}
	return results
}

func (s *ActionItemScan) match(item *ActionItem) bool {
	for _, match := range s.predicates {
		if !match(item) {
			return false
		}
	}
	return true
}

func (s *ActionItemStore) SearchActionItems() *ActionItemScan {
	return &ActionItemScan{
		store: s,
	}
}
