// Package musicbrainz provides a client for the MusicBrainz WS/2 artist
// search endpoint.
//
// MusicBrainz requires a descriptive User-Agent and asks clients to stay at
// or under one request per second. The client enforces a minimum interval
// between consecutive calls (including retries) and backs off exponentially
// on rate-limit and temporary-failure responses before giving up with
// ErrUnavailable.
package musicbrainz
