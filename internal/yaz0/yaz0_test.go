package yaz0

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestRoundTripSimple(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog the quick brown fox")
	compressed := Compress(input)
	got, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, input) {
		t.Fatalf("round trip mismatch:\ngot  %q\nwant %q", got, input)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	compressed := Compress(nil)
	got, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(got))
	}
}

func TestRoundTripRandom(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	input := make([]byte, 5000)
	// mix of repeated runs (compressible) and random bytes (incompressible)
	for i := range input {
		if i%7 == 0 {
			input[i] = byte(r.Intn(4))
		} else {
			input[i] = byte(r.Intn(256))
		}
	}
	compressed := Compress(input)
	got, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, input) {
		t.Fatal("round trip mismatch on random input")
	}
}

func TestDecompressBadMagic(t *testing.T) {
	if _, err := Decompress([]byte("NOTYAZ0_______________")); err == nil {
		t.Fatal("expected error for bad magic")
	}
}
