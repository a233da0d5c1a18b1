package tqvault

type Limits struct {
	MaxFileSize   int64  // whole save file on load
	MaxStringLen  uint32 // single length-prefixed string
	MaxSackCount  int32  // sacks in the item region
	MaxSackItems  int32  // items in a single sack
	MaxBackupSize uint64 // uncompressed backup payload on restore
}

func defaultLimits() Limits {
	return Limits{
		MaxFileSize:   64 << 20, // 64 MiB; real saves are well under 1 MiB
		MaxStringLen:  1 << 20,
		MaxSackCount:  1 << 10,
		MaxSackItems:  1 << 15,
		MaxBackupSize: 64 << 20,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxFileSize == 0 {
		l.MaxFileSize = d.MaxFileSize
	}
	if l.MaxStringLen == 0 {
		l.MaxStringLen = d.MaxStringLen
	}
	if l.MaxSackCount == 0 {
		l.MaxSackCount = d.MaxSackCount
	}
	if l.MaxSackItems == 0 {
		l.MaxSackItems = d.MaxSackItems
	}
	if l.MaxBackupSize == 0 {
		l.MaxBackupSize = d.MaxBackupSize
	}
	return l
}
