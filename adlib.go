// Package adlib extracts structured advertisement records from
// ad-transparency archive pages. Each page embeds the same logical
// information in several inconsistent forms (inline JSON blobs, DOM
// attributes, rendered text); the extraction engine runs an ordered
// fallback chain per field against a single parsed document and always
// produces exactly one graded record per page.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, rod/).
package adlib
