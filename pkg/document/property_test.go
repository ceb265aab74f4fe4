//go:build property
// +build property

// Package document_test property checks: serialization fixed points and
// action catalog determinism over generated layout trees.
package document_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/novabrowser/nova/pkg/document"
)

// buildNode derives a layout tree from integer seeds. The same seeds always
// produce the same tree, so failures shrink to reproducible inputs.
func buildNode(seeds []int, text string, depth int) map[string]any {
	if len(seeds) == 0 || depth >= 4 {
		return map[string]any{"type": "text", "text": text}
	}
	kinds := []string{
		"heading", "paragraph", "button", "link", "input",
		"form", "audio", "column", "row", "grid",
	}
	seed := seeds[0]
	rest := seeds[1:]
	node := map[string]any{"type": kinds[seed%len(kinds)]}

	switch node["type"] {
	case "heading":
		node["text"] = text
		node["level"] = 1 + seed%4
	case "paragraph":
		node["text"] = text + " " + text
	case "button":
		node["text"] = text
		if seed%2 == 0 {
			node["action"] = map[string]any{"type": "store", "key": text, "value": seed}
		}
	case "link":
		node["text"] = text
		if seed%3 != 0 {
			node["destination"] = "nova://" + text
		}
	case "input":
		node["id"] = fmt.Sprintf("in%d", seed%100)
		node["placeholder"] = text
		if seed%2 == 1 {
			node["required"] = true
		}
	case "form":
		node["id"] = fmt.Sprintf("f%d", seed%100)
		node["children"] = []any{buildNode(rest, text, depth+1)}
	case "audio":
		node["id"] = fmt.Sprintf("m%d", seed%100)
		node["source"] = text + ".mp3"
		if seed%3 == 0 {
			node["controls"] = false
		}
	case "column", "row", "grid":
		half := len(rest) / 2
		node["children"] = []any{
			buildNode(rest[:half], text, depth+1),
			buildNode(rest[half:], text+"x", depth+1),
		}
	}
	return node
}

func buildDocument(seeds []int, text string) []byte {
	raw, err := json.Marshal(map[string]any{
		"version": "1.0",
		"layout":  buildNode(seeds, text, 0),
	})
	if err != nil {
		panic(err)
	}
	return raw
}

// TestSerializationFixedPoint verifies that one parse/marshal round settles
// the representation: marshal(parse(marshal(parse(raw)))) == marshal(parse(raw)).
func TestSerializationFixedPoint(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("serialization is a fixed point after one round trip", prop.ForAll(
		func(seeds []int, text string) bool {
			doc1, err := document.Parse(buildDocument(seeds, text))
			if err != nil {
				return false
			}
			out1, err := json.Marshal(doc1)
			if err != nil {
				return false
			}
			doc2, err := document.Parse(out1)
			if err != nil {
				return false
			}
			out2, err := json.Marshal(doc2)
			if err != nil {
				return false
			}
			return bytes.Equal(out1, out2)
		},
		gen.SliceOfN(10, gen.IntRange(0, 1<<30)),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// TestActionCatalogDeterminism verifies the catalog is stable across repeated
// collection and across a serialization round trip.
func TestActionCatalogDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("action catalog survives recollection and round trips", prop.ForAll(
		func(seeds []int, text string) bool {
			doc1, err := document.Parse(buildDocument(seeds, text))
			if err != nil {
				return false
			}
			first := document.CollectActions(doc1.Layout)
			second := document.CollectActions(doc1.Layout)
			if !reflect.DeepEqual(first, second) {
				return false
			}

			out, err := json.Marshal(doc1)
			if err != nil {
				return false
			}
			doc2, err := document.Parse(out)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(first, document.CollectActions(doc2.Layout))
		},
		gen.SliceOfN(10, gen.IntRange(0, 1<<30)),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// TestParseTotality verifies Parse never panics and always classifies
// failures under one of the exported sentinel kinds.
func TestParseTotality(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("arbitrary input parses or fails with a classified kind", prop.ForAll(
		func(input string) bool {
			doc, err := document.ParseString(input)
			if err == nil {
				return doc != nil && doc.Layout != nil
			}
			return errors.Is(err, document.ErrSyntax) ||
				errors.Is(err, document.ErrSchema) ||
				errors.Is(err, document.ErrUnsupportedVersion)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
