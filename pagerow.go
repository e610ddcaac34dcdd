// Package pagerow extracts structured content records from HTML pages and
// writes them as flat, ordered tables suitable for CSV export. It classifies
// headings, paragraphs, list items, links, images, and table cells into typed
// records, then recovers orphan text the classification pass missed.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package pagerow
