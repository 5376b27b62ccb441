// Package guidecorpus prepares a document-search corpus from a directory of
// plain-text guidance files. Each non-empty file becomes one document record
// and the collection is written as newline-delimited JSON for bulk import
// into a search datastore.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, sqlite/, gemini/).
package guidecorpus
