package tqvault

import "fmt"

// walkResult carries the region start offsets discovered by the walker plus
// any advisory inconsistencies seen along the way. End offsets are filled
// in later by region decoding.
type walkResult struct {
	offsets  regionOffsets
	warnings []error
}

// findRegions walks the nested block structure of a character file and
// records where the item region and the equipment region begin. Blocks are
// never retained; nesting depth is tracked only so that an excess end
// marker can be reported. The walk stops as soon as both regions are
// located — everything after that point stays opaque.
func findRegions(buf []byte, limits Limits) (walkResult, error) {
	var res walkResult
	foundItems, foundEquip := false, false
	nestLevel := 0
	cur := 0

	for !(foundItems && foundEquip) {
		pos, kind := nextBlockDelim(buf, cur)
		if kind == delimNone {
			break
		}

		switch kind {
		case delimBegin:
			nestLevel++
			r := newReader(buf, pos+len(beginBlockPattern), limits)
			// 4 bytes of format-internal bookkeeping precede the name.
			if err := r.skip(4); err != nil {
				return res, err
			}
			name, err := r.readString()
			if err != nil {
				return res, err
			}
			cur = r.offset()

			switch name {
			case beginBlockText:
				// The block had no real name and the string read back was
				// the next marker itself. Rewind so the next scan
				// re-discovers that marker; the block counts as unnamed.
				cur -= len(beginBlockPattern)
			case endBlockText:
				cur -= len(endBlockPattern)
			case itemRegionMarker:
				if err := r.skip(4); err != nil {
					return res, err
				}
				res.offsets.itemStart = r.offset()
				cur = r.offset()
				foundItems = true
			case equipmentRegionMarker:
				if err := r.skip(4); err != nil {
					return res, err
				}
				res.offsets.equipStart = r.offset()
				cur = r.offset()
				foundEquip = true
			}

		case delimEnd:
			nestLevel--
			cur = pos + len(endBlockPattern)
			if nestLevel < 0 {
				res.warnings = append(res.warnings,
					fmt.Errorf("tqvault: end marker at offset %d drops nesting below zero", pos))
			}
		}
	}

	if !foundItems {
		return res, fmt.Errorf("%w: item region marker %q never seen", ErrRegionNotFound, itemRegionMarker)
	}
	if !foundEquip {
		return res, fmt.Errorf("%w: equipment region marker %q never seen", ErrRegionNotFound, equipmentRegionMarker)
	}
	return res, nil
}
