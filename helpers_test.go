package tqvault

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

type stubDB map[string]string

func (d stubDB) ItemName(id string) (string, bool) {
	name, ok := d[id]
	return name, ok
}

func testItem(base string, x, y int32) *Item {
	return &Item{
		BaseName: base,
		Seed:     0x1234,
		Var1:     1,
		PointX:   x,
		PointY:   y,

		beginJunk: 7,
		endJunk:   9,
	}
}

func testSack(typ SackType, items ...*Item) *Sack {
	s := NewSack(typ)
	s.items = append(s.items, items...)
	s.beginJunk = 3
	s.tempBool = 1
	s.endJunk = 5
	return s
}

func writeBeginMarker(b *bytes.Buffer, junk int32) {
	b.Write(beginBlockPattern[:])
	_ = writeInt32(b, junk)
}

func writeEndMarker(b *bytes.Buffer, junk int32) {
	_ = writeString(b, endBlockText)
	_ = writeInt32(b, junk)
}

// builtFile is a synthetic save with the offsets the walker should find.
type builtFile struct {
	raw        []byte
	itemStart  int
	equipStart int
}

// buildCharacterFile lays out a minimal but structurally faithful character
// file: wrapping blocks, stored player name, item region, opaque gap,
// equipment region, trailing bytes.
func buildCharacterFile(t *testing.T, expansion bool, sacks []*Sack, equipment *Sack) builtFile {
	t.Helper()
	var b bytes.Buffer

	// Opaque prefix: a wrapping block with the player name inside it.
	writeBeginMarker(&b, 0)
	mustWrite(t, writeString(&b, "playerHeader"))
	mustWrite(t, writeInt32(&b, 3))
	mustWrite(t, writeTaggedString(&b, tagPlayerName, "Hero"))

	// Item region anchor.
	writeBeginMarker(&b, 0)
	mustWrite(t, writeString(&b, itemRegionMarker))
	mustWrite(t, writeInt32(&b, 1))
	itemStart := b.Len()

	mustWrite(t, writeTaggedInt32(&b, tagNumberOfSacks, int32(len(sacks))))
	mustWrite(t, writeTaggedInt32(&b, tagFocusedSack, 0))
	mustWrite(t, writeTaggedInt32(&b, tagSelectedSack, 0))
	for _, s := range sacks {
		mustWrite(t, s.encode(&b, expansion))
	}

	// Opaque gap.
	writeEndMarker(&b, 0)

	// Equipment region anchor.
	writeBeginMarker(&b, 0)
	mustWrite(t, writeString(&b, equipmentRegionMarker))
	mustWrite(t, writeInt32(&b, 0))
	equipStart := b.Len()

	if expansion {
		mustWrite(t, writeTaggedInt32(&b, tagEquipmentVersion, 2))
	}
	mustWrite(t, equipment.encode(&b, expansion))

	// Opaque suffix.
	writeEndMarker(&b, 0)
	writeEndMarker(&b, 0)
	b.Write([]byte{0xDE, 0xAD, 0xBE, 0xEF})

	return builtFile{raw: b.Bytes(), itemStart: itemStart, equipStart: equipStart}
}

// buildVaultFile is an item region and nothing else.
func buildVaultFile(t *testing.T, sacks []*Sack) []byte {
	t.Helper()
	var b bytes.Buffer
	mustWrite(t, writeTaggedInt32(&b, tagNumberOfSacks, int32(len(sacks))))
	mustWrite(t, writeTaggedInt32(&b, tagFocusedSack, 0))
	mustWrite(t, writeTaggedInt32(&b, tagSelectedSack, 0))
	for _, s := range sacks {
		mustWrite(t, s.encode(&b, true))
	}
	return b.Bytes()
}

func mustWrite(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("building test file: %v", err)
	}
}

func writeTempSave(t *testing.T, name string, raw []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// loadTestCharacter writes a two-sack expansion character file to disk and
// loads it back.
func loadTestCharacter(t *testing.T, opts ...LoadOption) *SaveFile {
	t.Helper()
	sacks := []*Sack{
		testSack(SackStorage, testItem("records\\item\\sword.dbr", 0, 0)),
		testSack(SackStorage),
	}
	equip := testSack(SackEquipment, testItem("records\\item\\helm.dbr", 0, 0))
	built := buildCharacterFile(t, true, sacks, equip)
	path := writeTempSave(t, "Player.chr", built.raw)
	sf, err := Load(path, stubDB{}, opts...)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return sf
}
