package tqvault

import (
	"fmt"
	"io"
)

// Item is a single positioned inventory entry. The relic2/var2 fields exist
// only in expansion-format streams; for base-game files they stay zero and
// are not written back.
type Item struct {
	BaseName   string
	PrefixName string
	SuffixName string
	RelicName  string
	RelicBonus string
	Seed       int32
	Var1       int32

	RelicName2  string
	RelicBonus2 string
	Var2        int32

	PointX int32
	PointY int32

	// Bookkeeping values trailing the begin/end markers. Meaning unknown;
	// preserved verbatim for byte-exact round trips.
	beginJunk int32
	endJunk   int32
}

func (it *Item) decode(r *reader, expansion bool) error {
	var err error
	if err = r.expectString(beginBlockText); err != nil {
		return err
	}
	if it.beginJunk, err = r.readInt32(); err != nil {
		return err
	}
	if it.BaseName, err = r.expectTaggedString(tagBaseName); err != nil {
		return err
	}
	if it.PrefixName, err = r.expectTaggedString(tagPrefixName); err != nil {
		return err
	}
	if it.SuffixName, err = r.expectTaggedString(tagSuffixName); err != nil {
		return err
	}
	if it.RelicName, err = r.expectTaggedString(tagRelicName); err != nil {
		return err
	}
	if it.RelicBonus, err = r.expectTaggedString(tagRelicBonus); err != nil {
		return err
	}
	if it.Seed, err = r.expectTaggedInt32(tagSeed); err != nil {
		return err
	}
	if it.Var1, err = r.expectTaggedInt32(tagVar1); err != nil {
		return err
	}
	if expansion {
		if it.RelicName2, err = r.expectTaggedString(tagRelicName2); err != nil {
			return err
		}
		if it.RelicBonus2, err = r.expectTaggedString(tagRelicBonus2); err != nil {
			return err
		}
		if it.Var2, err = r.expectTaggedInt32(tagVar2); err != nil {
			return err
		}
	}
	if it.PointX, err = r.expectTaggedInt32(tagPointX); err != nil {
		return err
	}
	if it.PointY, err = r.expectTaggedInt32(tagPointY); err != nil {
		return err
	}
	if err = r.expectString(endBlockText); err != nil {
		return err
	}
	it.endJunk, err = r.readInt32()
	return err
}

func (it *Item) encode(w io.Writer, expansion bool) error {
	if err := writeString(w, beginBlockText); err != nil {
		return err
	}
	if err := writeInt32(w, it.beginJunk); err != nil {
		return err
	}
	if err := writeTaggedString(w, tagBaseName, it.BaseName); err != nil {
		return err
	}
	if err := writeTaggedString(w, tagPrefixName, it.PrefixName); err != nil {
		return err
	}
	if err := writeTaggedString(w, tagSuffixName, it.SuffixName); err != nil {
		return err
	}
	if err := writeTaggedString(w, tagRelicName, it.RelicName); err != nil {
		return err
	}
	if err := writeTaggedString(w, tagRelicBonus, it.RelicBonus); err != nil {
		return err
	}
	if err := writeTaggedInt32(w, tagSeed, it.Seed); err != nil {
		return err
	}
	if err := writeTaggedInt32(w, tagVar1, it.Var1); err != nil {
		return err
	}
	if expansion {
		if err := writeTaggedString(w, tagRelicName2, it.RelicName2); err != nil {
			return err
		}
		if err := writeTaggedString(w, tagRelicBonus2, it.RelicBonus2); err != nil {
			return err
		}
		if err := writeTaggedInt32(w, tagVar2, it.Var2); err != nil {
			return err
		}
	}
	if err := writeTaggedInt32(w, tagPointX, it.PointX); err != nil {
		return err
	}
	if err := writeTaggedInt32(w, tagPointY, it.PointY); err != nil {
		return err
	}
	if err := writeString(w, endBlockText); err != nil {
		return err
	}
	return writeInt32(w, it.endJunk)
}

// Sack is one inventory container: ordinary storage or the distinguished
// equipment container. The codec decodes sacks out of the item and
// equipment regions and encodes them back; everything in between — item
// edits, reordering — happens through the accessors below and is tracked by
// the modified flag.
type Sack struct {
	typ      SackType
	items    []*Item
	modified bool

	beginJunk int32
	tempBool  int32
	endJunk   int32
}

func NewSack(typ SackType) *Sack {
	return &Sack{typ: typ}
}

func (s *Sack) Type() SackType { return s.typ }

func (s *Sack) Count() int { return len(s.items) }

func (s *Sack) IsEmpty() bool { return len(s.items) == 0 }

// Item returns the item at index i. The index is a caller contract, same as
// SaveFile.Sack.
func (s *Sack) Item(i int) *Item { return s.items[i] }

func (s *Sack) AddItem(it *Item) {
	s.items = append(s.items, it)
	s.modified = true
}

// RemoveItem deletes the item at index i and reports whether i was valid.
func (s *Sack) RemoveItem(i int) bool {
	if i < 0 || i >= len(s.items) {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.modified = true
	return true
}

func (s *Sack) Modified() bool { return s.modified }

func (s *Sack) MarkModified() { s.modified = true }

// Duplicate returns a deep copy. The copy shares no state with the
// original; its modified flag starts clear.
func (s *Sack) Duplicate() *Sack {
	out := &Sack{
		typ:       s.typ,
		beginJunk: s.beginJunk,
		tempBool:  s.tempBool,
		endJunk:   s.endJunk,
	}
	out.items = make([]*Item, len(s.items))
	for i, it := range s.items {
		cp := *it
		out.items[i] = &cp
	}
	return out
}

func (s *Sack) decode(r *reader, expansion bool) error {
	var err error
	if err = r.expectString(beginBlockText); err != nil {
		return err
	}
	if s.beginJunk, err = r.readInt32(); err != nil {
		return err
	}
	if s.tempBool, err = r.expectTaggedInt32(tagTempBool); err != nil {
		return err
	}
	size, err := r.expectTaggedInt32(tagSize)
	if err != nil {
		return err
	}
	if size < 0 {
		return fmt.Errorf("%w: negative sack size %d", ErrFormat, size)
	}
	if size > r.limits.MaxSackItems {
		return fmt.Errorf("%w: sack size %d", ErrLimitExceeded, size)
	}
	s.items = make([]*Item, 0, size)
	for i := int32(0); i < size; i++ {
		it := &Item{}
		if err := it.decode(r, expansion); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		s.items = append(s.items, it)
	}
	if err = r.expectString(endBlockText); err != nil {
		return err
	}
	s.endJunk, err = r.readInt32()
	return err
}

func (s *Sack) encode(w io.Writer, expansion bool) error {
	if err := writeString(w, beginBlockText); err != nil {
		return err
	}
	if err := writeInt32(w, s.beginJunk); err != nil {
		return err
	}
	if err := writeTaggedInt32(w, tagTempBool, s.tempBool); err != nil {
		return err
	}
	if err := writeTaggedInt32(w, tagSize, int32(len(s.items))); err != nil {
		return err
	}
	for _, it := range s.items {
		if err := it.encode(w, expansion); err != nil {
			return err
		}
	}
	if err := writeString(w, endBlockText); err != nil {
		return err
	}
	return writeInt32(w, s.endJunk)
}
