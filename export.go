package tqvault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExportDiagnostics writes human-readable item listings into dir: one file
// for the inventory sacks and, for character files, one for the equipment
// sack. It exists purely as a debugging aid; every failure is wrapped in
// ErrDiagnostic so callers can treat it as advisory.
func (sf *SaveFile) ExportDiagnostics(dir string) error {
	if sf.db == nil {
		return fmt.Errorf("%w: %v", ErrDiagnostic, ErrNilDatabase)
	}

	var b strings.Builder
	for i, s := range sf.sacks {
		fmt.Fprintf(&b, "Sack %d (%d items)\n", i, s.Count())
		for j := 0; j < s.Count(); j++ {
			fmt.Fprintf(&b, "  %s\n", sf.describeItem(s.Item(j)))
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "inventory.txt"), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: inventory: %v", ErrDiagnostic, err)
	}

	if sf.equipment == nil {
		return nil
	}
	b.Reset()
	fmt.Fprintf(&b, "Equipment (%d items)\n", sf.equipment.Count())
	for j := 0; j < sf.equipment.Count(); j++ {
		fmt.Fprintf(&b, "  %s\n", sf.describeItem(sf.equipment.Item(j)))
	}
	if err := os.WriteFile(filepath.Join(dir, "equipment.txt"), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: equipment: %v", ErrDiagnostic, err)
	}
	return nil
}

// describeItem renders one item line, resolving record IDs through the
// database where it knows them and falling back to the raw ID otherwise.
func (sf *SaveFile) describeItem(it *Item) string {
	name := sf.resolve(it.BaseName)
	var parts []string
	if it.PrefixName != "" {
		parts = append(parts, sf.resolve(it.PrefixName))
	}
	parts = append(parts, name)
	if it.SuffixName != "" {
		parts = append(parts, sf.resolve(it.SuffixName))
	}
	line := strings.Join(parts, " ")
	if it.RelicName != "" {
		line += " [" + sf.resolve(it.RelicName) + "]"
	}
	return fmt.Sprintf("%s @ (%d,%d) seed=%08x", line, it.PointX, it.PointY, uint32(it.Seed))
}

func (sf *SaveFile) resolve(recordID string) string {
	if name, ok := sf.db.ItemName(recordID); ok {
		return name
	}
	return recordID
}
