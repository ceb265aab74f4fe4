package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nova",
	Short: "Nova is a declarative document browser",
	Long: `Nova fetches, validates and renders declarative JSON documents, with
tabs, history, bookmarks, themes and a local document library.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file path (default ~/.nova/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("theme", "", "Theme name: default, dark or retro")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for history, bookmarks and stored values (default ~/.nova)")
}
