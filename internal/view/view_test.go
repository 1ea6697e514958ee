package view

import "testing"

func TestU32LERoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	mv := NewMut("test", buf)
	if err := mv.SetU32LE(2, 0xDEADBEEF); err != nil {
		t.Fatalf("SetU32LE: %v", err)
	}
	v := mv.AsView()
	got, err := v.U32LE(2)
	if err != nil {
		t.Fatalf("U32LE: %v", err)
	}
	if got != 0xDEADBEEF {
		t.Fatalf("got %#x, want %#x", got, 0xDEADBEEF)
	}
}

func TestTruncatedRead(t *testing.T) {
	v := New("test", make([]byte, 4))
	if _, err := v.U64LE(0); err == nil {
		t.Fatal("expected truncated error reading u64 from a 4-byte buffer")
	}
}

func TestMagicMismatch(t *testing.T) {
	v := New("test", []byte("SARC"))
	if err := v.Magic(0, []byte("SARC")); err != nil {
		t.Fatalf("expected match: %v", err)
	}
	if err := v.Magic(0, []byte("YAZ0")); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestSliceBounds(t *testing.T) {
	v := New("test", []byte{1, 2, 3, 4, 5})
	sub, err := v.Slice(1, 3)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if sub.Len() != 2 {
		t.Fatalf("len = %d, want 2", sub.Len())
	}
	if _, err := v.Slice(3, 10); err == nil {
		t.Fatal("expected out-of-bounds error")
	}
}
