// Package search scores, filters, and ranks media library listings.
//
// The scoring primitive is a fixed-priority fuzzy matcher: exact equality,
// substring containment weighted by length difference, then Levenshtein
// similarity as a fallback. Score outputs are a stable contract; ranked
// result order for a given query must not drift between releases, so the
// rule order and constants in fuzzy.go are load-bearing.
//
// Engine applies a query plus Criteria over file/folder listings in a fixed
// pipeline: fuzzy ranking, type membership, size bounds, then tag and rating
// checks through an optional MetadataResolver. Criteria dimensions with no
// wired collaborator pass through without error. A search never panics its
// caller; failures degrade to an empty Results with a log line.
//
// Debouncer collapses per-keystroke triggers so only the final query fires.
// Results carry the query that produced them, letting callers discard stale
// responses by comparison instead of cancelling in-flight work.
package search
