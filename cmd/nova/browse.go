package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/novabrowser/nova/internal/cli"
	"github.com/novabrowser/nova/internal/logging"
	"github.com/novabrowser/nova/internal/tui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse [url]",
	Short: "Browse documents interactively",
	Long: `Starts the interactive browser. With no URL the home document is
loaded; pass a URL to start there instead. --tui switches from the
line-oriented session to the full-screen terminal interface.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tuiMode, _ := cmd.Flags().GetBool("tui")

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if len(args) > 0 {
			cfg.Home = args[0]
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))
		if tuiMode {
			// stderr writes would corrupt the alternate screen.
			logger = logging.NewNop()
		}

		b, cleanup, err := buildBrowser(cfg, logger)
		if err != nil {
			fmt.Printf("Error initializing nova: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if tuiMode {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				fmt.Println("Error: --tui requires a terminal")
				os.Exit(1)
			}
			err = tui.Run(ctx, b)
		} else {
			err = cli.New(b).Run(ctx)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().Bool("tui", false, "Use the full-screen terminal interface")

	// Make 'browse' the default when no subcommand is given.
	rootCmd.Run = browseCmd.Run
}
