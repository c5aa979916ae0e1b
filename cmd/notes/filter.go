package main

import (
	"strings"

	"github.com/nicolagi/notes"
)

func splitTerms(expr string) []string {
	var terms []string
	for _, term := range strings.Split(expr, ":") {
		if term = strings.TrimSpace(term); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func addNoteTerm(s *notes.NoteScan, term string) {
	if term[0] == '-' && len(term) > 1 {
		addNoteTerm(s, term[1:])
		s.Not()
		return
	}
	s.WithText(term)
}

func addActionItemTerm(s *notes.ActionItemScan, term string) {
	if term[0] == '-' && len(term) > 1 {
		addActionItemTerm(s, term[1:])
		s.Not()
		return
	}
	switch term {
	case "+open":
		s.WithCompleted(false)
	case "+done":
		s.WithCompleted(true)
	default:
		s.WithDescription(term)
	}
}

func filterNotes(store *notes.NoteStore, expr string) []notes.Note {
	scan := store.SearchNotes()
	for _, term := range splitTerms(expr) {
		addNoteTerm(scan, term)
	}
	return scan.Results()
}

func filterActionItems(store *notes.ActionItemStore, openOnly bool, expr string) []notes.ActionItem {
	scan := store.SearchActionItems()
	if openOnly {
		scan.WithCompleted(false)
	}
	for _, term := range splitTerms(expr) {
		addActionItemTerm(scan, term)
	}
	return scan.Results()
}
