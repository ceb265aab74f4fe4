package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novabrowser/nova"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of nova",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nova version %s\n", nova.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
