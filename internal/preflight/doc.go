// Package preflight provides readiness checks for the filesystem paths
// and stores that Curator depends on.
//
// The CLI "curator status" command runs RunAll to display overall health;
// individual check functions (CheckDirectoryAccess, CheckDatabase,
// CheckProfileStore) are also usable on their own.
package preflight
