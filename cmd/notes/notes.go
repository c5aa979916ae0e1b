package main

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/nicolagi/notes"
	"github.com/spf13/cobra"
)

var (
	listJSON   bool
	listFilter string
	listSort   bool

	noteTitle   string
	noteContent string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := noteStore.Load(cmd.Context()); err != nil {
			return failed("fetch notes", err)
		}
		all := filterNotes(noteStore, listFilter)
		if listSort {
			sort.Sort(notesByTitle(all))
		}
		if listJSON {
			if all == nil {
				all = []notes.Note{}
			}
			return printJSON(cmd.OutOrStdout(), all)
		}
		printNotes(cmd.OutOrStdout(), all)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search notes on the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		found, err := noteStore.Search(cmd.Context(), args[0])
		if err != nil {
			return failed("search notes", err)
		}
		printNotes(cmd.OutOrStdout(), found)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := noteStore.Add(cmd.Context(), notes.NoteFields{Title: noteTitle, Content: noteContent})
		if err != nil {
			return failed("add note", err)
		}
		printNote(cmd.OutOrStdout(), note)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a note's title or content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		// Flags not given keep the current values.
		current, err := noteStore.Fetch(cmd.Context(), id)
		var httpErr *notes.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return fmt.Errorf("note %v: %w", id, errNotFound)
		}
		if err != nil {
			return failed("fetch note", err)
		}
		title, content := cmd.Flags().Changed("title"), cmd.Flags().Changed("content")
		fields := notes.NoteFields{Title: current.Title, Content: current.Content}
		if title {
			fields.Title = noteTitle
		}
		if content {
			fields.Content = noteContent
		}
		note, err := noteStore.Update(cmd.Context(), id, fields)
		if err != nil {
			return failed("update note", err)
		}
		printNote(cmd.OutOrStdout(), note)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := noteStore.Remove(cmd.Context(), id); err != nil {
			return failed("delete note", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Note deleted: %v\n", id)
		return nil
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <id>",
	Short: "Create action items from a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		items, err := itemStore.Extract(cmd.Context(), noteClient, id)
		if err != nil {
			return failed("extract action items", err)
		}
		printActionItems(cmd.OutOrStdout(), items)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd, searchCmd, addCmd, editCmd, deleteCmd, extractCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Only list notes matching this search expression")
	listCmd.Flags().BoolVar(&listSort, "sort", false, "Sort by title")

	addCmd.Flags().StringVar(&noteTitle, "title", "", "Note title")
	addCmd.Flags().StringVar(&noteContent, "content", "", "Note content")
	_ = addCmd.MarkFlagRequired("title")
	_ = addCmd.MarkFlagRequired("content")

	editCmd.Flags().StringVar(&noteTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&noteContent, "content", "", "New content")
}
