package library_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novabrowser/nova/internal/adapters/library"
	"github.com/novabrowser/nova/pkg/document"
	"github.com/novabrowser/nova/pkg/ports"
)

func writeEntry(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestResolveBuiltinWelcome(t *testing.T) {
	res, err := library.New("")
	require.NoError(t, err)

	for _, key := range []string{"welcome.nova", "/welcome.nova", "welcome"} {
		body, err := res.Resolve(context.Background(), key)
		require.NoError(t, err, "key %q", key)

		doc, err := document.ParseString(body)
		require.NoError(t, err, "builtin welcome document must parse")
		assert.Equal(t, "Nova Browser - Production Ready", doc.Title(""))
	}
}

func TestResolveUnknownKeyIsNotFound(t *testing.T) {
	res, err := library.New("")
	require.NoError(t, err)

	_, err = res.Resolve(context.Background(), "missing.nova")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestResolveFromLibraryDirectory(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "guide.md", `---
title: Field Guide
description: Getting around
---
{"version": "1.0", "layout": {"type": "text", "text": "hello from the library"}}`)

	res, err := library.New(dir)
	require.NoError(t, err)

	for _, key := range []string{"guide.nova", "guide", "/guide.nova"} {
		body, err := res.Resolve(context.Background(), key)
		require.NoError(t, err, "key %q", key)
		assert.Contains(t, body, "hello from the library")
	}

	// Library entries never shadow builtins.
	body, err := res.Resolve(context.Background(), "welcome.nova")
	require.NoError(t, err)
	assert.Contains(t, body, "Production Ready")
}

func TestListIncludesBuiltinsAndLibrary(t *testing.T) {
	dir := t.TempDir()
	writeEntry(t, dir, "zebra.md", `---
title: Zebra Crossing
---
{"version": "1.0", "layout": {"type": "text", "text": "z"}}`)
	writeEntry(t, dir, "atlas.md", `---
title: Atlas of Sites
description: Curated links
---
{"version": "1.0", "layout": {"type": "text", "text": "a"}}`)

	res, err := library.New(dir)
	require.NoError(t, err)

	entries, err := res.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, library.WelcomeKey, entries[0].Key)
	assert.Equal(t, "atlas", entries[1].Key)
	assert.Equal(t, "Atlas of Sites", entries[1].Title)
	assert.Equal(t, "Curated links", entries[1].Description)
	assert.Equal(t, "zebra", entries[2].Key)
}

func TestListWithoutDirectoryServesBuiltinsOnly(t *testing.T) {
	res, err := library.New("")
	require.NoError(t, err)

	entries, err := res.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, library.WelcomeKey, entries[0].Key)
	assert.Equal(t, "Nova Browser - Production Ready", entries[0].Title)
}
