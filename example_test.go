package nova_test

import (
	"context"
	"fmt"
	"log"

	"github.com/novabrowser/nova"
)

// ExampleNew loads the builtin welcome page and lists the actions it
// exposes, in catalog order.
func ExampleNew() {
	b, err := nova.New()
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	tab, err := b.Load(context.Background(), b.Home())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(tab.Title)
	for i, action := range b.Actions(tab.Document) {
		fmt.Printf("%d. %s\n", i+1, action.Type)
	}
	// Output:
	// Nova Browser - Production Ready
	// 1. search
	// 2. navigate
	// 3. show_stats
	// 4. navigate
}

// Example_parseAndRender validates a raw document and renders it to
// plain text without involving tabs or the network.
func Example_parseAndRender() {
	b, err := nova.New()
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	doc, err := b.Parse(`{
		"version": "1.0",
		"metadata": {"title": "Release Notes"},
		"layout": {
			"type": "column",
			"children": [
				{"type": "heading", "level": 2, "text": "Release Notes"},
				{"type": "paragraph", "text": "Nova renders declarative JSON documents."},
				{"type": "button", "text": "Reload", "id": "reload-btn"}
			]
		}
	}`)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(b.RenderToString(doc))
	// Output:
	// ## Release Notes
	// Nova renders declarative JSON documents.
	//  [Reload]  [reload-btn]
}

// Example_validate shows the structured parse failure a malformed
// document produces.
func Example_validate() {
	b, err := nova.New()
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	_, err = b.Parse(`{"version": "1.0", "layout": {"type": 7}}`)
	fmt.Println(err)
	// Output:
	// schema violation at layout: layout node must have a string "type"
}
