// Package episodes persists scraped radio-show episodes and derives artist
// mention statistics from their tracklists.
//
// Episodes live in a single JSON document, merged by URL and ordered by
// episode number (newest first). A small checkpoint file remembers the most
// recently seen episode so scrape runs can stop early when nothing is new.
package episodes
