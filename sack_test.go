package tqvault

import (
	"bytes"
	"errors"
	"testing"
)

func fullItem() *Item {
	return &Item{
		BaseName:    "records\\item\\equipmentsword\\d_01.dbr",
		PrefixName:  "records\\item\\lootmagicalaffixes\\prefix\\a.dbr",
		SuffixName:  "records\\item\\lootmagicalaffixes\\suffix\\b.dbr",
		RelicName:   "records\\item\\relics\\r.dbr",
		RelicBonus:  "records\\item\\lootmagicalaffixes\\bonus\\c.dbr",
		Seed:        0x7ead1234,
		Var1:        5,
		RelicName2:  "records\\item\\relics\\r2.dbr",
		RelicBonus2: "records\\item\\lootmagicalaffixes\\bonus\\c2.dbr",
		Var2:        6,
		PointX:      3,
		PointY:      8,
		beginJunk:   11,
		endJunk:     13,
	}
}

func TestSackRoundTrip(t *testing.T) {
	for _, expansion := range []bool{false, true} {
		in := testSack(SackStorage, fullItem(), testItem("records\\plain.dbr", 2, 4))

		var buf bytes.Buffer
		if err := in.encode(&buf, expansion); err != nil {
			t.Fatalf("encode(expansion=%v): %v", expansion, err)
		}

		out := NewSack(SackStorage)
		r := newReader(buf.Bytes(), 0, defaultLimits())
		if err := out.decode(r, expansion); err != nil {
			t.Fatalf("decode(expansion=%v): %v", expansion, err)
		}
		if r.remaining() != 0 {
			t.Fatalf("decode left %d bytes", r.remaining())
		}

		var again bytes.Buffer
		if err := out.encode(&again, expansion); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(buf.Bytes(), again.Bytes()) {
			t.Fatalf("expansion=%v: re-encode differs from original", expansion)
		}

		if out.Count() != 2 {
			t.Fatalf("count = %d, want 2", out.Count())
		}
		it := out.Item(0)
		if it.BaseName != fullItem().BaseName || it.Seed != fullItem().Seed {
			t.Errorf("item fields lost: %+v", it)
		}
		if expansion && it.RelicName2 != fullItem().RelicName2 {
			t.Errorf("expansion fields lost: %+v", it)
		}
		if !expansion && it.RelicName2 != "" {
			t.Errorf("base-game decode picked up expansion field: %q", it.RelicName2)
		}
		if out.Modified() {
			t.Error("freshly decoded sack reports modified")
		}
	}
}

func TestSackDecodeBadTag(t *testing.T) {
	s := testSack(SackStorage, testItem("records\\a.dbr", 0, 0))
	var buf bytes.Buffer
	if err := s.encode(&buf, true); err != nil {
		t.Fatal(err)
	}
	raw := buf.Bytes()
	// Corrupt the first byte of the "tempBool" tag text.
	i := bytes.Index(raw, encodedTag(tagTempBool))
	if i < 0 {
		t.Fatal("tempBool tag not found in encoded sack")
	}
	raw[i+4] ^= 0xFF

	out := NewSack(SackStorage)
	err := out.decode(newReader(raw, 0, defaultLimits()), true)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
}

func TestSackSizeLimit(t *testing.T) {
	var buf bytes.Buffer
	mustWrite(t, writeString(&buf, beginBlockText))
	mustWrite(t, writeInt32(&buf, 0))
	mustWrite(t, writeTaggedInt32(&buf, tagTempBool, 0))
	mustWrite(t, writeTaggedInt32(&buf, tagSize, 3))

	limits := defaultLimits()
	limits.MaxSackItems = 2
	err := NewSack(SackStorage).decode(newReader(buf.Bytes(), 0, limits), true)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("got %v, want ErrLimitExceeded", err)
	}
}

func TestSackNegativeSize(t *testing.T) {
	var buf bytes.Buffer
	mustWrite(t, writeString(&buf, beginBlockText))
	mustWrite(t, writeInt32(&buf, 0))
	mustWrite(t, writeTaggedInt32(&buf, tagTempBool, 0))
	mustWrite(t, writeTaggedInt32(&buf, tagSize, -1))

	err := NewSack(SackStorage).decode(newReader(buf.Bytes(), 0, defaultLimits()), true)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("got %v, want ErrFormat", err)
	}
}

func TestDuplicateIsDeep(t *testing.T) {
	src := testSack(SackStorage, testItem("records\\a.dbr", 1, 1))
	dup := src.Duplicate()

	if dup.Modified() {
		t.Error("duplicate starts modified")
	}
	if dup.Count() != src.Count() || dup.Type() != src.Type() {
		t.Fatalf("duplicate shape differs: %d items, type %v", dup.Count(), dup.Type())
	}

	dup.Item(0).BaseName = "records\\changed.dbr"
	if src.Item(0).BaseName != "records\\a.dbr" {
		t.Error("mutating the duplicate changed the original")
	}

	dup.AddItem(testItem("records\\b.dbr", 2, 2))
	if src.Count() != 1 {
		t.Error("appending to the duplicate changed the original")
	}
}

func TestSackItemMutators(t *testing.T) {
	s := testSack(SackStorage)
	if s.Modified() {
		t.Fatal("fresh sack reports modified")
	}
	s.AddItem(testItem("records\\a.dbr", 0, 0))
	if !s.Modified() || s.Count() != 1 {
		t.Fatalf("after AddItem: modified=%v count=%d", s.Modified(), s.Count())
	}
	if !s.RemoveItem(0) || s.Count() != 0 {
		t.Fatal("RemoveItem(0) failed")
	}
	if s.RemoveItem(0) {
		t.Error("RemoveItem on empty sack succeeded")
	}
	if s.RemoveItem(-1) {
		t.Error("RemoveItem(-1) succeeded")
	}
}
