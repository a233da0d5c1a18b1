package tqvault

import (
	"encoding/binary"
	"fmt"
	"os"
)

// BackupExt is the sidecar extension Save appends when WithBackup is set.
const BackupExt = ".tqbak"

// Backup file layout: a 16-byte fixed header followed by the compressed
// payload.
//
//	bytes 0-3   magic "TQBK"
//	bytes 4-5   format version, little endian
//	bytes 6-7   Compression, little endian
//	bytes 8-15  uncompressed payload length, little endian
var backupMagic = [4]byte{'T', 'Q', 'B', 'K'}

const (
	backupVersion    uint16 = 1
	backupHeaderSize        = 16
)

// WriteBackup stores data as a compressed snapshot at path.
func WriteBackup(path string, data []byte, comp Compression) error {
	payload, err := compressBytes(comp, data)
	if err != nil {
		return err
	}
	out := make([]byte, backupHeaderSize, backupHeaderSize+len(payload))
	copy(out[0:4], backupMagic[:])
	binary.LittleEndian.PutUint16(out[4:6], backupVersion)
	binary.LittleEndian.PutUint16(out[6:8], uint16(comp))
	binary.LittleEndian.PutUint64(out[8:16], uint64(len(data)))
	out = append(out, payload...)
	return os.WriteFile(path, out, 0o644)
}

// ReadBackup restores the original bytes from a backup written by
// WriteBackup. The uncompressed length recorded in the header is checked
// against limits before any decompression happens.
func ReadBackup(path string, opts ...LoadOption) ([]byte, error) {
	cfg := loadConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < backupHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is too short for a header", ErrInvalidBackup, len(raw))
	}
	if [4]byte(raw[0:4]) != backupMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalidBackup)
	}
	if v := binary.LittleEndian.Uint16(raw[4:6]); v != backupVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidBackup, v)
	}
	comp := Compression(binary.LittleEndian.Uint16(raw[6:8]))
	expected := binary.LittleEndian.Uint64(raw[8:16])
	if expected > cfg.limits.MaxBackupSize {
		return nil, fmt.Errorf("%w: backup claims %d uncompressed bytes", ErrLimitExceeded, expected)
	}
	return decompressBytes(comp, raw[backupHeaderSize:], expected)
}
