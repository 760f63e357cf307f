// Package quicknote is the Composition Root for the quicknote application.
//
// It connects the note domain (pkg/core) with the single-file store
// (pkg/adapters/fs) using the same Hexagonal layout as the rest of the module.
//
// Philosophy:
//
// quicknote keeps short notes with tags and a priority in one local file. Every
// operation reads the whole collection, and every mutation writes it back with
// an atomic replace, so the file on disk is always either the previous or the
// next complete collection.
//
// Features:
//
//   - **Crash-safe saves**: temp file plus rename in the store directory.
//   - **Resilient loads**: a corrupt store degrades to an empty collection and is reported, never fatal.
//   - **Query engine**: case-insensitive regex search over text and tags, tag globs, stable priority sort.
//   - **JSON or YAML**: the store format follows the file extension.
//   - **Watching**: change events for the store file via fsnotify.
//
// Usage:
//
//	svc, err := quicknote.New("~/.quicknotes.json",
//		quicknote.WithLogger(logger),
//	)
//
//	note, err := svc.Add(ctx, "buy milk", []string{"errand"}, 2)
package quicknote
