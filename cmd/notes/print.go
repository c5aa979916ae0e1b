package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nicolagi/notes"
)

var errNotFound = errors.New("entity not found")

func printNotes(w io.Writer, all []notes.Note) {
	for _, n := range all {
		_, _ = fmt.Fprintf(w, "%v\t%v\n", n.ID, n.Title)
	}
}

func printNote(w io.Writer, n notes.Note) {
	_, _ = fmt.Fprintf(w, "ID: %v\n", n.ID)
	_, _ = fmt.Fprintf(w, "Title: %s\n", n.Title)
	_, _ = fmt.Fprintf(w, "\n%s\n", n.Content)
}

func printActionItems(w io.Writer, items []notes.ActionItem) {
	for _, i := range items {
		mark := " "
		if i.Completed {
			mark = "x"
		}
		_, _ = fmt.Fprintf(w, "%v\t[%s]\t%v\n", i.ID, mark, i.Description)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("print json: %w", err)
	}
	return nil
}

// failed names the operation that failed, as the stores' error slots do.
func failed(op string, err error) error {
	return &notes.OpError{Op: op, Err: err}
}

func parseID(arg string) (notes.ID, error) {
	id, err := notes.ParseID(arg)
	if err != nil {
		return notes.ID{}, fmt.Errorf("id %q: %w", arg, err)
	}
	return id, nil
}
