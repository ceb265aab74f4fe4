package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/novabrowser/nova/pkg/document"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a document against the format",
	Long: `Parses the document and reports the first violation: malformed JSON,
an unsupported version, or a schema error with the path of the offending
node.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Document is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = document.ParseString(string(data))
	return err
}
