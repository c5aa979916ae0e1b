package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nicolagi/notes"
	"github.com/spf13/cobra"
)

var (
	actionsOpen   bool
	actionsFilter string
	actionsSort   bool

	itemDescription string
	itemCompleted   bool
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "Work with action items",
}

var actionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List action items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := itemStore.Load(cmd.Context()); err != nil {
			return failed("fetch action items", err)
		}
		items := filterActionItems(itemStore, actionsOpen, actionsFilter)
		if actionsSort {
			sort.Stable(itemsByCompleted(items))
		}
		printActionItems(cmd.OutOrStdout(), items)
		return nil
	},
}

var actionsAddCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Create an action item",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := itemStore.Add(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return failed("add action item", err)
		}
		printActionItems(cmd.OutOrStdout(), []notes.ActionItem{item})
		return nil
	},
}

var actionsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an action item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := itemStore.Load(cmd.Context()); err != nil {
			return failed("fetch action items", err)
		}
		current, ok := itemStore.ActionItem(id)
		if !ok && !cmd.Flags().Changed("description") {
			return fmt.Errorf("action item %v: %w", id, errNotFound)
		}
		fields := notes.ActionItemFields{Description: current.Description, Completed: current.Completed}
		if cmd.Flags().Changed("description") {
			fields.Description = itemDescription
		}
		if cmd.Flags().Changed("completed") {
			fields.Completed = itemCompleted
		}
		item, err := itemStore.Update(cmd.Context(), id, fields)
		if err != nil {
			return failed("update action item", err)
		}
		printActionItems(cmd.OutOrStdout(), []notes.ActionItem{item})
		return nil
	},
}

var actionsCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark an action item as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := itemStore.Complete(cmd.Context(), id); err != nil {
			return failed("complete action item", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Action item completed: %v\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(actionsCmd)
	actionsCmd.AddCommand(actionsListCmd, actionsAddCmd, actionsEditCmd, actionsCompleteCmd)

	actionsListCmd.Flags().BoolVar(&actionsOpen, "open", false, "Only list items not yet completed")
	actionsListCmd.Flags().StringVar(&actionsFilter, "filter", "", "Only list items matching this search expression")
	actionsListCmd.Flags().BoolVar(&actionsSort, "sort", false, "List open items first")

	actionsEditCmd.Flags().StringVar(&itemDescription, "description", "", "New description")
	actionsEditCmd.Flags().BoolVar(&itemCompleted, "completed", false, "Whether the item is done")
}
