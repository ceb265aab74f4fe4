package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/novabrowser/nova/internal/browser"
)

var actionsCmd = &cobra.Command{
	Use:   "actions <file|url>",
	Short: "List the actions a document declares",
	Long: `Prints the document's interactive actions in render order, the same
numbering the browse session uses.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runActions(cmd, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(actionsCmd)

	actionsCmd.Flags().Bool("json", false, "Emit the catalog as JSON")
}

func runActions(cmd *cobra.Command, target string) error {
	jsonMode, _ := cmd.Flags().GetBool("json")

	b, cleanup := mustBrowser(cmd)
	defer cleanup()

	body, err := readSource(cmd.Context(), b, target)
	if err != nil {
		return err
	}
	doc, err := b.Parse(body)
	if err != nil {
		return err
	}
	actions := b.Actions(doc)

	if jsonMode {
		type entry struct {
			Index       int    `json:"index"`
			Type        string `json:"type"`
			Description string `json:"description"`
			Destination string `json:"destination,omitempty"`
		}
		catalog := make([]entry, 0, len(actions))
		for i, action := range actions {
			e := entry{
				Index:       i + 1,
				Type:        action.Type,
				Description: browser.ActionDescription(action),
			}
			if action.Destination != nil {
				e.Destination = *action.Destination
			}
			catalog = append(catalog, e)
		}
		data, err := json.MarshalIndent(catalog, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(actions) == 0 {
		fmt.Println("No actions declared.")
		return nil
	}
	for i, action := range actions {
		fmt.Printf("%2d. %s %s\n", i+1, browser.ActionIcon(action.Type), browser.ActionDescription(action))
	}
	return nil
}
