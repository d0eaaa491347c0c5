// Package webclip turns web pages into portable Markdown notes. It renders
// pages in a real browser engine, locates the primary article content
// through a deterministic strategy cascade, harvests metadata, normalizes
// image references, and writes one Markdown file with YAML front matter
// per URL.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, trafilatura/).
package webclip
