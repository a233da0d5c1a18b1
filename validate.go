package tqvault

import "fmt"

// validateSave checks the in-memory model for states that cannot be
// serialized back into a well-formed file. It runs before any bytes are
// produced so a failed save leaves the model and the file untouched.
func validateSave(sf *SaveFile, limits Limits) error {
	if int64(len(sf.sacks)) > int64(limits.MaxSackCount) {
		return fmt.Errorf("%w: %d sacks", ErrLimitExceeded, len(sf.sacks))
	}
	for i, s := range sf.sacks {
		if s == nil {
			return fmt.Errorf("%w: sack %d is nil", ErrFormat, i)
		}
		if int64(s.Count()) > int64(limits.MaxSackItems) {
			return fmt.Errorf("%w: sack %d holds %d items", ErrLimitExceeded, i, s.Count())
		}
		if s.Type() != SackStorage {
			return fmt.Errorf("%w: sack %d is not a storage sack", ErrFormat, i)
		}
	}
	if sf.kind == CharacterFile {
		if sf.equipment == nil {
			return fmt.Errorf("%w: character file without equipment sack", ErrFormat)
		}
		if sf.equipment.Type() != SackEquipment {
			return fmt.Errorf("%w: equipment sack has storage type", ErrFormat)
		}
	}
	return nil
}
