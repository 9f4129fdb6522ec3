package voxel

import (
	"bytes"
	"testing"
)

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in      string
		want    Compression
		wantErr bool
	}{
		{"", CompressionNone, false},
		{"none", CompressionNone, false},
		{"zstd", CompressionZstd, false},
		{"gzip", "", true},
	}
	for _, tc := range tests {
		got, err := ParseCompression(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseCompression(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCompression(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCompressZstd(t *testing.T) {
	data, err := EncodeVox(Dirt(8, 8, 8))
	if err != nil {
		t.Fatalf("EncodeVox() error: %v", err)
	}
	packed, err := Compress(CompressionZstd, data)
	if err != nil {
		t.Fatalf("Compress() error: %v", err)
	}
	if len(packed) >= len(data) {
		t.Errorf("zstd output %d bytes, expected less than %d", len(packed), len(data))
	}
	unpacked, err := Decompress(CompressionZstd, packed)
	if err != nil {
		t.Fatalf("Decompress() error: %v", err)
	}
	if !bytes.Equal(unpacked, data) {
		t.Error("decompressed bytes differ from the input")
	}
	if CompressionZstd.Extension() != ".zst" || CompressionNone.Extension() != "" {
		t.Error("unexpected file extensions")
	}
}

func TestCompressNonePassesThrough(t *testing.T) {
	data := []byte("tilegen")
	got, err := Compress(CompressionNone, data)
	if err != nil || !bytes.Equal(got, data) {
		t.Errorf("Compress(none) = %q, %v", got, err)
	}
}

func TestDigest(t *testing.T) {
	a := Digest([]byte("road"))
	if len(a) != 16 {
		t.Errorf("Digest length = %d, want 16", len(a))
	}
	if a != Digest([]byte("road")) {
		t.Error("Digest should be stable")
	}
	if a == Digest([]byte("meadow")) {
		t.Error("different inputs should not share a digest")
	}
	// xxhash64 of the empty input.
	if got := Digest(nil); got != "ef46db3751d8e999" {
		t.Errorf("Digest(nil) = %s, want ef46db3751d8e999", got)
	}
}
