package tqvault

// Block delimiters as they appear in the raw stream. The begin marker is
// matched with its 4-byte length prefix; the end marker is matched by its
// text alone, so a rolled-back scan can land directly on the text.
var (
	beginBlockPattern = [15]byte{0x0B, 0x00, 0x00, 0x00, 'b', 'e', 'g', 'i', 'n', '_', 'b', 'l', 'o', 'c', 'k'}
	endBlockPattern   = [9]byte{'e', 'n', 'd', '_', 'b', 'l', 'o', 'c', 'k'}
)

const (
	beginBlockText = "begin_block"
	endBlockText   = "end_block"

	// Block names anchoring the two regions the codec understands.
	itemRegionMarker      = "itemPositionsSavedAsGridCoords"
	equipmentRegionMarker = "useAlternate"

	// Field tags inside the item region header.
	tagNumberOfSacks = "numberOfSacks"
	tagFocusedSack   = "currentlyFocusedSackNumber"
	tagSelectedSack  = "currentlySelectedSackNumber"

	// Present at the head of the equipment region only in expansion files.
	tagEquipmentVersion = "equipmentCtrlIOStreamVersion"

	// Stored player name tag in the opaque prefix of character files.
	tagPlayerName = "myPlayerName"

	// Sack and item field tags.
	tagTempBool    = "tempBool"
	tagSize        = "size"
	tagBaseName    = "baseName"
	tagPrefixName  = "prefixName"
	tagSuffixName  = "suffixName"
	tagRelicName   = "relicName"
	tagRelicBonus  = "relicBonus"
	tagSeed        = "seed"
	tagVar1        = "var1"
	tagRelicName2  = "relicName2"
	tagRelicBonus2 = "relicBonus2"
	tagVar2        = "var2"
	tagPointX      = "pointX"
	tagPointY      = "pointY"
)

// ExpansionNameSuffix is appended to the displayed name of expansion
// characters.
const ExpansionNameSuffix = " - Immortal Throne"

// FileKind distinguishes the two on-disk variants the codec accepts.
type FileKind int

const (
	// CharacterFile is a full character save: opaque wrapping blocks
	// around an item region and an equipment region.
	CharacterFile FileKind = iota
	// VaultFile is a storage vault: a bare item region spanning the whole
	// file, with no wrapping blocks and no equipment.
	VaultFile
)

// SackType tags a decoded container as ordinary storage or worn equipment.
type SackType int

const (
	SackStorage SackType = iota
	SackEquipment
)

// Compression selects the codec used for save backups.
type Compression uint16

const (
	CompNone Compression = 0x0
	CompZIP  Compression = 0x1
	CompZSTD Compression = 0x2
	CompLZ4  Compression = 0x3
	CompBR   Compression = 0x4
)

// regionOffsets delimits the two decoded sub-ranges of the raw buffer.
// Invariant after a successful character-file parse:
// 0 <= itemStart <= itemEnd <= equipStart <= equipEnd <= len(raw).
// Vault files use only itemStart/itemEnd.
type regionOffsets struct {
	itemStart  int
	itemEnd    int
	equipStart int
	equipEnd   int
}
