package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the dark-mode preference",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"dark", "light", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if len(args) == 1 {
			switch args[0] {
			case "dark":
				err = preference.SetDarkMode(true)
			case "light":
				err = preference.SetDarkMode(false)
			case "toggle":
				_, err = preference.Toggle()
			}
		}
		if err != nil {
			return fmt.Errorf("save theme: %w", err)
		}
		theme := "light"
		if preference.DarkMode() {
			theme = "dark"
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), theme)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
