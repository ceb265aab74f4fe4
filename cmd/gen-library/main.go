package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/loam"

	"github.com/novabrowser/nova/internal/adapters/library"
)

// Seeds a document library directory with sample pages. Point the
// browser at the result with --library-dir (or library_dir in the
// config file) and open file:///guide.nova.
func main() {
	targetDir := "examples/library"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating sample library in: %s\n", targetDir)

	// No versioning: this is pure file generation, the browser only
	// ever reads the result.
	repo, err := loam.Init(targetDir, loam.WithVersioning(false))
	if err != nil {
		panic(err)
	}

	typedRepo := loam.NewTypedRepository[library.DocumentInfo](repo)
	ctx := context.TODO()

	// 1. Guide (entry point)
	err = typedRepo.Save(ctx, &loam.DocumentModel[library.DocumentInfo]{
		ID:      "guide",
		Content: guideDocument,
		Data: library.DocumentInfo{
			Title:       "Getting Started",
			Description: "A short tour of the document format",
			Tags:        []string{"guide"},
		},
	})
	check(err)

	// 2. Links (navigation targets)
	err = typedRepo.Save(ctx, &loam.DocumentModel[library.DocumentInfo]{
		ID:      "links",
		Content: linksDocument,
		Data: library.DocumentInfo{
			Title:       "Curated Links",
			Description: "Sites worth a visit",
			Tags:        []string{"directory"},
		},
	})
	check(err)

	// 3. Feedback (form demo)
	err = typedRepo.Save(ctx, &loam.DocumentModel[library.DocumentInfo]{
		ID:      "feedback",
		Content: feedbackDocument,
		Data: library.DocumentInfo{
			Title:       "Feedback Form",
			Description: "Inputs, forms and submit actions",
			Tags:        []string{"demo", "forms"},
		},
	})
	check(err)

	fmt.Println("Done. Browse with: nova browse --library-dir", targetDir, "file:///guide.nova")
}

const guideDocument = `{
  "version": "1.0",
  "metadata": {
    "title": "Getting Started",
    "description": "A short tour of the document format"
  },
  "layout": {
    "type": "column",
    "children": [
      {"type": "heading", "level": 1, "text": "Getting Started"},
      {"type": "paragraph", "text": "Every page is a JSON document: metadata plus a layout tree. Buttons carry actions; the browser turns them into a numbered catalog."},
      {"type": "button", "text": "Curated links", "action": {"type": "navigate", "destination": "file:///links.nova"}},
      {"type": "button", "text": "Try a form", "action": {"type": "navigate", "destination": "file:///feedback.nova"}},
      {"type": "button", "text": "Search the web", "action": {"type": "search"}}
    ]
  }
}`

const linksDocument = `{
  "version": "1.0",
  "metadata": {
    "title": "Curated Links",
    "description": "Sites worth a visit"
  },
  "layout": {
    "type": "column",
    "children": [
      {"type": "heading", "level": 2, "text": "Curated Links"},
      {
        "type": "grid",
        "children": [
          {"type": "button", "text": "HTTPBin JSON", "action": {"type": "navigate", "destination": "https://httpbin.org/json"}},
          {"type": "button", "text": "Example.com", "action": {"type": "navigate", "destination": "https://example.com"}},
          {"type": "button", "text": "Back home", "action": {"type": "navigate", "destination": "file:///welcome.nova"}}
        ]
      }
    ]
  }
}`

const feedbackDocument = `{
  "version": "1.0",
  "metadata": {
    "title": "Feedback Form",
    "description": "Inputs, forms and submit actions"
  },
  "layout": {
    "type": "column",
    "children": [
      {"type": "heading", "level": 2, "text": "Feedback"},
      {"type": "input", "id": "comment", "placeholder": "What should we improve?"},
      {"type": "button", "text": "Send", "action": {"type": "submit", "destination": "https://httpbin.org/post"}}
    ]
  }
}`

func check(err error) {
	if err != nil {
		panic(err)
	}
}
