package voxel

import (
	"fmt"
	"strconv"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

// Compression selects how encoded output is wrapped before it is written.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
)

// ParseCompression accepts "", "none" and "zstd".
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", string(CompressionNone):
		return CompressionNone, nil
	case string(CompressionZstd):
		return CompressionZstd, nil
	default:
		return "", fmt.Errorf("voxel: unsupported compression %q", s)
	}
}

// Extension returns the file suffix appended for the codec.
func (c Compression) Extension() string {
	if c == CompressionZstd {
		return ".zst"
	}
	return ""
}

// Compress wraps data with the codec.
func Compress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case "", CompressionNone:
		return data, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("voxel: unsupported compression %q", c)
	}
}

// Decompress reverses Compress.
func Decompress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case "", CompressionNone:
		return data, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return nil, fmt.Errorf("voxel: unsupported compression %q", c)
	}
}

// Digest returns the xxhash64 of data as a fixed-width hex string.
func Digest(data []byte) string {
	s := strconv.FormatUint(xxhash.Sum64(data), 16)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}
