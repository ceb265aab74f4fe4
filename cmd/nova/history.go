package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage browsing history",
	Long:  `List or clear the visit history kept by the configured storage backend.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent visits",
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		b, cleanup := mustBrowser(cmd)
		defer cleanup()

		visits, err := b.Engine().RecentHistory(cmd.Context(), limit)
		if err != nil {
			fmt.Printf("Error listing history: %v\n", err)
			os.Exit(1)
		}
		if len(visits) == 0 {
			fmt.Println("No visits recorded.")
			return
		}

		for _, v := range visits {
			fmt.Printf("%s  %s (%s, %d visits)\n",
				v.VisitedAt.Local().Format("2006-01-02 15:04"), v.Title, v.URL, v.VisitCount)
		}
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all visits",
	Run: func(cmd *cobra.Command, args []string) {
		b, cleanup := mustBrowser(cmd)
		defer cleanup()

		if err := b.Engine().ClearHistory(cmd.Context()); err != nil {
			fmt.Printf("Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyListCmd.Flags().Int("limit", 20, "Maximum number of visits to show")
}
