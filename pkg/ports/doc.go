/*
Package ports defines the driven ports (interfaces) for the Nova engine.

These interfaces decouple the engine from its hosts and backends: render
surfaces, the network fetcher, local document resolution, and the persistence
stores the action dispatcher writes through.

# Key Interfaces

  - Surface: line-oriented output device a renderer draws to.
  - Fetcher: retrieves raw document bodies over the network.
  - Resolver: maps local document keys (file:/// paths) to bodies.
  - HistoryStore / BookmarkStore / KVStore / CacheStore: persistence backends
    (JSON files, SQLite, memory, Redis).

Contract test suites for the store ports live in pkg/ports/tests and are run
by every adapter.
*/
package ports
