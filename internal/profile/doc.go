// Package profile owns the live user profile: scalar application settings,
// favorite folders, and the editable tag hierarchy. A Repository loads the
// profile once, mutates it in memory, and flushes the whole document back
// through its Backend after every change. Export bundles, import-file
// validation, and bundle import with conflict recording live here too.
package profile
