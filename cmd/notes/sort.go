package main

import (
	"strings"

	"github.com/nicolagi/notes"
)

type notesByTitle []notes.Note

func (all notesByTitle) Len() int {
	return len(all)
}

func (all notesByTitle) Swap(i, j int) {
	all[i], all[j] = all[j], all[i]
}

func (all notesByTitle) Less(i, j int) bool {
	return strings.ToLower(all[i].Title) < strings.ToLower(all[j].Title)
}

// Open items first. Use with sort.Stable to keep server order otherwise.
type itemsByCompleted []notes.ActionItem

func (items itemsByCompleted) Len() int {
	return len(items)
}

func (items itemsByCompleted) Swap(i, j int) {
	items[i], items[j] = items[j], items[i]
}

func (items itemsByCompleted) Less(i, j int) bool {
	return !items[i].Completed && items[j].Completed
}
