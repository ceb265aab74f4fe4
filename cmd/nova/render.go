package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/novabrowser/nova"
	"github.com/novabrowser/nova/internal/theme"
)

var renderCmd = &cobra.Command{
	Use:   "render <file|url>",
	Short: "Render a document to stdout",
	Long: `Parses and renders a single document. Files are read from disk;
http(s) URLs are fetched through the caching network client.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRender(cmd, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().Bool("plain", false, "Skip the themed title header")
}

func runRender(cmd *cobra.Command, target string) error {
	plain, _ := cmd.Flags().GetBool("plain")

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

	if !plain {
		th := b.Engine().Theme()
		fmt.Println(th.Apply(theme.Title, doc.Title(target)))
		fmt.Println(th.Apply(theme.Border, strings.Repeat("─", 80)))
	}
	fmt.Print(b.RenderToString(doc))
	return nil
}

// readSource returns the raw document body for target: http(s) URLs are
// fetched through the caching client, anything else is read from disk.
func readSource(ctx context.Context, b *nova.Browser, target string) (string, error) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return b.Fetch(ctx, target)
	}
	data, err := os.ReadFile(strings.TrimPrefix(target, "file://"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
