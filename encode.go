package tqvault

import "bytes"

// encodeItemRegion re-serializes the item region: the three header fields
// followed by every sack in current order.
func (sf *SaveFile) encodeItemRegion() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTaggedInt32(&buf, tagNumberOfSacks, int32(len(sf.sacks))); err != nil {
		return nil, err
	}
	if err := writeTaggedInt32(&buf, tagFocusedSack, sf.focusedSack); err != nil {
		return nil, err
	}
	if err := writeTaggedInt32(&buf, tagSelectedSack, sf.selectedSack); err != nil {
		return nil, err
	}
	for _, s := range sf.sacks {
		if err := s.encode(&buf, sf.expansion); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// encodeEquipmentRegion re-serializes the equipment region: the stream
// version field (expansion only) and the single equipment sack.
func (sf *SaveFile) encodeEquipmentRegion() ([]byte, error) {
	var buf bytes.Buffer
	if sf.expansion {
		if err := writeTaggedInt32(&buf, tagEquipmentVersion, sf.equipVersion); err != nil {
			return nil, err
		}
	}
	if err := sf.equipment.encode(&buf, sf.expansion); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// assemble produces the full output byte stream. The three slices taken
// from the original buffer — prefix, gap, suffix — are copied byte for
// byte; that is what lets the codec round-trip a file it only partially
// understands. The loaded buffer itself is never mutated.
func (sf *SaveFile) assemble() ([]byte, regionOffsets, error) {
	itemBytes, err := sf.encodeItemRegion()
	if err != nil {
		return nil, regionOffsets{}, err
	}

	if sf.kind == VaultFile {
		// A vault file is the item region and nothing else.
		off := regionOffsets{itemEnd: len(itemBytes)}
		return itemBytes, off, nil
	}

	equipBytes, err := sf.encodeEquipmentRegion()
	if err != nil {
		return nil, regionOffsets{}, err
	}

	o := sf.offsets
	out := make([]byte, 0, len(sf.raw)+len(itemBytes)-(o.itemEnd-o.itemStart)+len(equipBytes)-(o.equipEnd-o.equipStart))
	out = append(out, sf.raw[:o.itemStart]...)
	out = append(out, itemBytes...)
	out = append(out, sf.raw[o.itemEnd:o.equipStart]...)
	out = append(out, equipBytes...)
	out = append(out, sf.raw[o.equipEnd:]...)

	fresh := regionOffsets{
		itemStart:  o.itemStart,
		itemEnd:    o.itemStart + len(itemBytes),
		equipStart: o.itemStart + len(itemBytes) + (o.equipStart - o.itemEnd),
	}
	fresh.equipEnd = fresh.equipStart + len(equipBytes)
	return out, fresh, nil
}
