package nova_test

import (
	"context"
	"fmt"
	"log"

	"github.com/novabrowser/nova"
	"github.com/novabrowser/nova/pkg/ports"
)

// mapResolver serves documents from a plain map, keyed by the path
// portion of a file:/// URL.
type mapResolver map[string]string

func (m mapResolver) Resolve(_ context.Context, key string) (string, error) {
	body, ok := m[key]
	if !ok {
		return "", fmt.Errorf("document %q: %w", key, ports.ErrNotFound)
	}
	return body, nil
}

// ExampleNew_resolver demonstrates how to use Nova purely as a Go
// library, serving documents from memory without reading from the
// filesystem or the network.
func ExampleNew_resolver() {
	// 1. Define the documents as pure data.
	docs := mapResolver{
		"notes.nova": `{
			"version": "1.0",
			"metadata": {"title": "Notes"},
			"layout": {
				"type": "column",
				"children": [
					{"type": "heading", "level": 2, "text": "Notes"},
					{"type": "text", "text": "Documents can come from anywhere."},
					{"type": "link", "text": "Welcome", "destination": "file:///welcome.nova"}
				]
			}
		}`,
	}

	// 2. Initialize the browser with the custom resolver.
	// The injected resolver replaces the builtin library entirely.
	b, err := nova.New(
		nova.WithResolver(docs),
		nova.WithHome("file:///notes.nova"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	// 3. Load the home document into a tab.
	tab, err := b.Load(context.Background(), b.Home())
	if err != nil {
		log.Fatal(err)
	}

	// 4. Render it and walk the action catalog.
	fmt.Print(b.RenderToString(tab.Document))
	for i, action := range b.Actions(tab.Document) {
		fmt.Printf("%d. %s -> %s\n", i+1, action.Type, *action.Destination)
	}
	// Output:
	// ## Notes
	// Documents can come from anywhere.
	//  🔗 Welcome → file:///welcome.nova
	// 1. navigate -> file:///welcome.nova
}
