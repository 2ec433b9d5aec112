// Package main hosts the showtag CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the full pipeline: scraping episode
// tracklists from the show website, resolving artist names into the identity
// cache, tagging the beets library, and maintaining the cache. It centralizes
// configuration resolution, run locking, and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
