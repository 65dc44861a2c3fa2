// Package library holds the media file model and the SQLite-backed metadata
// store that persists per-file tags and ratings.
//
// The store is the metadata service the search filter consults when criteria
// name tags or a rating: search itself never reads the database, it resolves
// through the store's ReadTags/ReadRating. DistinctTags feeds the browse
// tree, so the grouped tag view always reflects what is actually applied to
// files rather than what the profile merely defines.
//
// Listing a directory into MediaFile values is deliberately thin: names,
// types, and sizes only. Thumbnailing, EXIF extraction, and everything else
// that inspects file contents belongs to other layers.
package library
