/*
Package nova is a declarative document browser engine. It takes untrusted
JSON, validates it into a typed layout tree, renders that tree
deterministically onto a text surface, and hands the host an ordered
catalog of the actions the page exposes.

A Nova document is a single JSON object: a version, loose metadata, and a
layout tree of typed nodes (headings, paragraphs, buttons, links, inputs,
forms, tables, code, media, and the column/row/grid containers). Parsing
is strict about structure and permissive about extras: unknown node kinds
and unknown fields survive a parse/serialize round trip untouched.

# Pipeline

Raw bytes flow one way:

	fetch → Parse → Render (visible output) + Actions (ordered catalog) → Dispatch

Render and Actions are pure walks over the same tree, so the numbered menu
a host prints always corresponds to the catalog indices it dispatches.
A node that fails to render is confined to one error marker line; its
siblings still render. Dispatching an action (navigate, search, store,
form_submit, ...) mutates browser state and usually produces the next
document.

# Architecture

The engine is hexagonal. pkg/document and pkg/render are pure; everything
that talks to the world sits behind the small interfaces in pkg/ports
(Fetcher, Resolver, HistoryStore, BookmarkStore, KVStore, CacheStore) with
interchangeable adapters: an HTTP fetcher with a TTL cache (in-memory or
Redis), a loam-backed document library, and history/bookmark/KV storage on
JSON files or SQLite.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/novabrowser/nova"
	)

	func main() {
		b, err := nova.New()
		if err != nil {
			log.Fatal(err)
		}
		defer b.Close()

		ctx := context.Background()
		tab, err := b.Load(ctx, b.Home())
		if err != nil {
			log.Printf("load: %v", err)
		}

		// Render the page and list what it can do.
		fmt.Print(b.RenderToString(tab.Document))
		for i, action := range b.Actions(tab.Document) {
			fmt.Printf("%d. %s\n", i+1, action.Type)
		}
	}

By default New wires collaborators that touch no disk and need no
configuration. Persistent history, bookmarks and storage are injected
with options (WithHistory, WithBookmarks, WithKV), as are a Redis-backed
fetch cache (WithCache) and an on-disk document library (WithLibraryDir).
The cmd/nova CLI wires all of these from its config file.
*/
package nova
