package tqvault

import (
	"bytes"
	"fmt"
)

// parseResult is the structured form of everything the codec understands
// about a save file. Bytes outside the two regions stay opaque and live
// only in the raw buffer.
type parseResult struct {
	offsets   regionOffsets
	expansion bool

	sacks     []*Sack
	equipment *Sack

	focusedSack  int32
	selectedSack int32
	equipVersion int32

	warnings []error
}

// parseSaveData locates and decodes the item and equipment regions of raw.
// Vault files skip the block walk entirely: they are a bare item region
// with nothing around it and no equipment.
func parseSaveData(raw []byte, kind FileKind, limits Limits) (*parseResult, error) {
	res := &parseResult{}

	if kind == CharacterFile {
		walked, err := findRegions(raw, limits)
		if err != nil {
			return nil, err
		}
		res.offsets = walked.offsets
		res.warnings = walked.warnings
		// The expansion carries a version tag at the head of the equipment
		// region; the base game does not.
		res.expansion = bytes.HasPrefix(raw[res.offsets.equipStart:], encodedTag(tagEquipmentVersion))
	} else {
		// Vault files are always written in the expansion format.
		res.expansion = true
	}

	r := newReader(raw, res.offsets.itemStart, limits)
	numberOfSacks, err := r.expectTaggedInt32(tagNumberOfSacks)
	if err != nil {
		return nil, err
	}
	if numberOfSacks < 0 {
		return nil, fmt.Errorf("%w: negative sack count %d", ErrFormat, numberOfSacks)
	}
	if numberOfSacks > limits.MaxSackCount {
		return nil, fmt.Errorf("%w: sack count %d", ErrLimitExceeded, numberOfSacks)
	}
	if res.focusedSack, err = r.expectTaggedInt32(tagFocusedSack); err != nil {
		return nil, err
	}
	if res.selectedSack, err = r.expectTaggedInt32(tagSelectedSack); err != nil {
		return nil, err
	}
	res.sacks = make([]*Sack, 0, numberOfSacks)
	for i := int32(0); i < numberOfSacks; i++ {
		s := NewSack(SackStorage)
		if err := s.decode(r, res.expansion); err != nil {
			return nil, fmt.Errorf("sack %d: %w", i, err)
		}
		res.sacks = append(res.sacks, s)
	}
	res.offsets.itemEnd = r.offset()

	if kind == VaultFile {
		return res, nil
	}

	if res.offsets.itemEnd > res.offsets.equipStart {
		return nil, fmt.Errorf("%w: item region (end %d) overlaps equipment region (start %d)",
			ErrFormat, res.offsets.itemEnd, res.offsets.equipStart)
	}

	r = newReader(raw, res.offsets.equipStart, limits)
	if res.expansion {
		if res.equipVersion, err = r.expectTaggedInt32(tagEquipmentVersion); err != nil {
			return nil, err
		}
	}
	res.equipment = NewSack(SackEquipment)
	if err := res.equipment.decode(r, res.expansion); err != nil {
		return nil, fmt.Errorf("equipment: %w", err)
	}
	res.offsets.equipEnd = r.offset()

	return res, nil
}
