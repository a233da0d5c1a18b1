package tqvault

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ConfirmOverwrite decides whether CopySack may overwrite a non-empty
// destination sack. It is supplied by the caller (typically a UI layer);
// the codec only asks the question and acts on the answer.
type ConfirmOverwrite func(dst int, existing *Sack) bool

// ItemDatabase resolves item record IDs to display names. It is consulted
// only for diagnostic export, never for decoding.
type ItemDatabase interface {
	ItemName(recordID string) (string, bool)
}

// SaveFile owns one loaded save: the raw buffer, the region offsets derived
// from it, and the decoded sacks. One instance per file; it performs no
// internal locking and assumes caller-serialized access.
type SaveFile struct {
	path      string
	kind      FileKind
	expansion bool

	raw     []byte
	offsets regionOffsets

	sacks     []*Sack
	equipment *Sack

	focusedSack  int32
	selectedSack int32
	equipVersion int32

	storedName string

	limits  Limits
	confirm ConfirmOverwrite
	db      ItemDatabase

	// Warnings collects advisory problems: walker inconsistencies and
	// diagnostic export failures. They never fail a load.
	Warnings []error
}

// Load reads and decodes the save file at path. db must be non-nil. On any
// I/O or format error no model is returned; a save file is either fully
// parseable or rejected.
func Load(path string, db ItemDatabase, opts ...LoadOption) (*SaveFile, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	cfg := loadConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	kind := cfg.kind
	if !cfg.kindSet {
		kind = kindFromPath(path)
	}

	raw, err := readAllCapped(path, cfg.limits.MaxFileSize)
	if err != nil {
		return nil, err
	}

	res, err := parseSaveData(raw, kind, cfg.limits)
	if err != nil {
		return nil, err
	}

	sf := &SaveFile{
		path:         path,
		kind:         kind,
		expansion:    res.expansion,
		raw:          raw,
		offsets:      res.offsets,
		sacks:        res.sacks,
		equipment:    res.equipment,
		focusedSack:  res.focusedSack,
		selectedSack: res.selectedSack,
		equipVersion: res.equipVersion,
		limits:       cfg.limits,
		confirm:      cfg.confirm,
		db:           db,
		Warnings:     res.warnings,
	}

	if kind == VaultFile {
		sf.storedName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	} else {
		sf.storedName = findStoredName(raw[:sf.offsets.itemStart], cfg.limits)
	}

	if cfg.exportDir != "" {
		if err := sf.ExportDiagnostics(cfg.exportDir); err != nil {
			sf.Warnings = append(sf.Warnings, err)
		}
	}
	return sf, nil
}

func kindFromPath(path string) FileKind {
	if strings.EqualFold(filepath.Ext(path), ".vault") {
		return VaultFile
	}
	return CharacterFile
}

func readAllCapped(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.Size() > maxSize {
		return nil, fmt.Errorf("%w: file is %d bytes", ErrLimitExceeded, st.Size())
	}
	return io.ReadAll(f)
}

// findStoredName scans the opaque prefix for the player name tag. Absence
// is not an error; the name just stays empty.
func findStoredName(prefix []byte, limits Limits) string {
	tag := encodedTag(tagPlayerName)
	i := bytes.Index(prefix, tag)
	if i < 0 {
		return ""
	}
	r := newReader(prefix, i+len(tag), limits)
	name, err := r.readString()
	if err != nil {
		return ""
	}
	return name
}

// Save splices the re-encoded regions into the original byte stream and
// writes the result to path, replacing any existing content. On failure the
// in-memory model is untouched; on success the raw buffer and region
// offsets are re-derived from the freshly produced stream, since the old
// offsets may no longer line up.
func (sf *SaveFile) Save(path string, opts ...SaveOption) error {
	var cfg saveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateSave(sf, sf.limits); err != nil {
		return err
	}
	out, fresh, err := sf.assemble()
	if err != nil {
		return err
	}

	if cfg.makeBackup {
		if prev, err := os.ReadFile(path); err == nil {
			if err := WriteBackup(path+BackupExt, prev, cfg.backup); err != nil {
				return err
			}
		} else if !os.IsNotExist(err) {
			return err
		}
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return err
	}

	sf.path = path
	sf.raw = out
	sf.offsets = fresh
	return nil
}

// Path returns the file this save was loaded from or last saved to.
func (sf *SaveFile) Path() string { return sf.path }

func (sf *SaveFile) Kind() FileKind { return sf.kind }

// IsExpansion reports whether the file uses the expansion stream format.
func (sf *SaveFile) IsExpansion() bool { return sf.expansion }

// NumberOfSacks is the current sack count; it is written back as the
// numberOfSacks header field on save.
func (sf *SaveFile) NumberOfSacks() int { return len(sf.sacks) }

func (sf *SaveFile) FocusedSackNumber() int32 { return sf.focusedSack }

func (sf *SaveFile) SelectedSackNumber() int32 { return sf.selectedSack }

// Equipment returns the distinguished equipment sack, or nil for vaults.
func (sf *SaveFile) Equipment() *Sack { return sf.equipment }

// Sack returns the sack at index i. The index must be validated by the
// caller; an out-of-range access is a programming error, not a runtime
// condition, and panics like any slice access.
func (sf *SaveFile) Sack(i int) *Sack { return sf.sacks[i] }

// CreateEmptySacks replaces the sack collection with n fresh, empty,
// unmodified storage sacks.
func (sf *SaveFile) CreateEmptySacks(n int) {
	sf.sacks = make([]*Sack, n)
	for i := range sf.sacks {
		sf.sacks[i] = NewSack(SackStorage)
	}
}

func (sf *SaveFile) checkSackPair(src, dst int) error {
	if src == dst || src < 0 || src >= len(sf.sacks) || dst < 0 || dst >= len(sf.sacks) {
		return fmt.Errorf("%w: %d -> %d with %d sacks", ErrBadIndex, src, dst, len(sf.sacks))
	}
	return nil
}

// MoveSack relocates the sack at src to dst with remove-then-insert
// semantics: the sack previously at dst is shifted, not overwritten. Both
// the moved sack and the sack now occupying the vacated slot are marked
// modified. Invalid indices and src == dst are rejected with the collection
// unchanged.
func (sf *SaveFile) MoveSack(src, dst int) error {
	if err := sf.checkSackPair(src, dst); err != nil {
		return err
	}
	moved := sf.sacks[src]
	sf.sacks = slices.Insert(slices.Delete(sf.sacks, src, src+1), dst, moved)
	sf.sacks[dst].MarkModified()
	sf.sacks[src].MarkModified()
	return nil
}

// CopySack deep-duplicates the sack at src into the dst slot, overwriting
// it. When the destination still holds items the injected confirmation
// policy is consulted exactly once; denial (or an absent policy) leaves the
// collection unchanged and reports failure.
func (sf *SaveFile) CopySack(src, dst int) error {
	if err := sf.checkSackPair(src, dst); err != nil {
		return err
	}
	if !sf.sacks[dst].IsEmpty() {
		if sf.confirm == nil || !sf.confirm(dst, sf.sacks[dst]) {
			return fmt.Errorf("%w: destination sack %d is not empty", ErrCopyDenied, dst)
		}
	}
	dup := sf.sacks[src].Duplicate()
	dup.MarkModified()
	sf.sacks[dst] = dup
	return nil
}

// IsModified reports whether any sack, or the equipment sack, has been
// changed since load.
func (sf *SaveFile) IsModified() bool {
	for _, s := range sf.sacks {
		if s.Modified() {
			return true
		}
	}
	return sf.equipment != nil && sf.equipment.Modified()
}

// PlayerName returns the display name: the stored name with the expansion
// suffix appended for non-vault expansion files, unmodified otherwise.
func (sf *SaveFile) PlayerName() string {
	if sf.kind != VaultFile && sf.expansion {
		return sf.storedName + ExpansionNameSuffix
	}
	return sf.storedName
}
