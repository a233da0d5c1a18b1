// Package tqvault reads and writes the inventory portions of Titan Quest
// save files: character files (Player.chr) and storage vault files.
//
// # File Format Overview
//
// A character file is a flat byte stream of nested named blocks delimited
// by literal "begin_block" / "end_block" marker sequences. The format has
// no schema and no length-prefixed top-level container. This package
// understands exactly two sub-ranges of that stream:
//
//   - the item region: sack-count header fields followed by the inventory
//     sacks, anchored by the "itemPositionsSavedAsGridCoords" block name
//   - the equipment region: an optional stream-version field and the single
//     equipment sack, anchored by the "useAlternate" block name
//
// Everything else is carried as opaque bytes. On save the two regions are
// re-encoded independently and spliced between untouched copies of the
// original prefix, gap, and suffix slices, so an unedited file round-trips
// byte for byte even though most of it is never interpreted. Vault files
// are a bare item region spanning the whole file.
//
// # Basic Usage
//
//	sf, err := tqvault.Load("Player.chr", db)
//	if err != nil {
//		// file is unreadable or unparseable; no model exists
//	}
//	sf.MoveSack(2, 0)
//	err = sf.Save("Player.chr", tqvault.WithBackup(tqvault.CompZSTD))
//
// Load requires an ItemDatabase, which is consulted only for diagnostic
// export. Editing operations that a UI would pre-validate (MoveSack,
// CopySack) report failure through errors and leave the model unchanged;
// Sack index access is a caller contract.
//
// # Backups
//
// Save can snapshot the previous file content into a compressed ".tqbak"
// sidecar (ZIP, Zstandard, LZ4, or Brotli) before overwriting it;
// ReadBackup restores the original bytes. Configurable Limits guard
// decoding and backup restore against oversized allocations.
//
// All operations are synchronous and single-threaded; a SaveFile performs
// no internal locking.
package tqvault
