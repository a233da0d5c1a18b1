package tqvault

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// backupEntryName is the single entry inside a ZIP backup payload.
const backupEntryName = "savefile"

// compressBytes compresses a save snapshot with the selected codec.
// CompNone passes the bytes through.
func compressBytes(comp Compression, in []byte) ([]byte, error) {
	switch comp {
	case CompNone:
		return in, nil
	case CompZIP:
		return zipCompress(in)
	case CompZSTD:
		return zstdCompress(in)
	case CompLZ4:
		return lz4Compress(in)
	case CompBR:
		return brotliCompress(in)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidBackup, comp)
	}
}

// decompressBytes reverses compressBytes. expected is the uncompressed
// length recorded in the backup header; output that deviates from it means
// the backup is damaged.
func decompressBytes(comp Compression, in []byte, expected uint64) ([]byte, error) {
	var out []byte
	var err error
	switch comp {
	case CompNone:
		out = in
	case CompZIP:
		out, err = zipDecompress(in, expected)
	case CompZSTD:
		out, err = zstdDecompress(in, expected)
	case CompLZ4:
		out, err = lz4Decompress(in, expected)
	case CompBR:
		out, err = brotliDecompress(in, expected)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidBackup, comp)
	}
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != expected {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrInvalidBackup, len(out), expected)
	}
	return out, nil
}

func zipCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create(backupEntryName)
	if err != nil {
		_ = zw.Close()
		return nil, err
	}
	if _, err := entry.Write(in); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func zipDecompress(in []byte, expected uint64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(in), int64(len(in)))
	if err != nil {
		return nil, err
	}
	if len(zr.File) != 1 || zr.File[0].Name != backupEntryName {
		return nil, fmt.Errorf("%w: zip must hold exactly one %q entry", ErrInvalidBackup, backupEntryName)
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, int64(expected)+1))
}

func zstdCompress(in []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

func zstdDecompress(in []byte, expected uint64) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(in, nil)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > expected {
		return nil, fmt.Errorf("%w: zstd payload expanded beyond header size", ErrInvalidBackup)
	}
	return out, nil
}

func lz4Compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(in); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lz4Decompress(in []byte, expected uint64) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(in))
	return io.ReadAll(io.LimitReader(r, int64(expected)+1))
}

func brotliCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	if _, err := bw.Write(in); err != nil {
		_ = bw.Close()
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func brotliDecompress(in []byte, expected uint64) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(in))
	return io.ReadAll(io.LimitReader(r, int64(expected)+1))
}
