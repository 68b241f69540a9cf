package signal

import "testing"

func TestAbstractCodecRoundTrip(t *testing.T) {
	c := AbstractCodec{}
	for s := 0; s < 8; s++ {
		for d := 0; d < 8; d++ {
			for code := 0; code < 2; code++ {
				wire, err := c.Encode(s, d, code)
				if err != nil {
					t.Fatalf("Encode(%d,%d,%d): %v", s, d, code, err)
				}
				gs, gd, gc, err := c.Decode(wire)
				if err != nil {
					t.Fatalf("Decode(%q): %v", wire, err)
				}
				if gs != s || gd != d || gc != code {
					t.Fatalf("round trip mismatch: got (%d,%d,%d), want (%d,%d,%d)", gs, gd, gc, s, d, code)
				}
			}
		}
	}
}

func TestBinaryCodecRoundTrip(t *testing.T) {
	c := NewBinaryCodec(7, 7, 2)
	for s := 0; s < (1 << 7); s += 13 {
		for d := 0; d < (1 << 7); d += 17 {
			for code := 0; code < (1 << 2); code++ {
				wire, err := c.Encode(s, d, code)
				if err != nil {
					t.Fatalf("Encode(%d,%d,%d): %v", s, d, code, err)
				}
				if len(wire) != 16 {
					t.Fatalf("wire length = %d, want 16", len(wire))
				}
				gs, gd, gc, err := c.Decode(wire)
				if err != nil {
					t.Fatalf("Decode(%q): %v", wire, err)
				}
				if gs != s || gd != d || gc != code {
					t.Fatalf("round trip mismatch: got (%d,%d,%d), want (%d,%d,%d)", gs, gd, gc, s, d, code)
				}
			}
		}
	}
}

func TestBinaryCodecRejectsOutOfRange(t *testing.T) {
	c := NewBinaryCodec(7, 7, 2)
	if _, err := c.Encode(128, 0, 0); err != ErrFieldOutOfRange {
		t.Fatalf("expected ErrFieldOutOfRange, got %v", err)
	}
}

func TestBinaryCodecRejectsMalformedWire(t *testing.T) {
	c := NewBinaryCodec(7, 7, 2)
	if _, _, _, err := c.Decode("too-short"); err == nil {
		t.Fatal("expected error decoding malformed wire")
	}
}

func TestCodeRegistryDefaults(t *testing.T) {
	r := NewCodeRegistry()
	if name, ok := r.Name(CodeNewDataAnnouncement); !ok || name != "new-data-announcement" {
		t.Fatalf("unexpected default name: %q, %v", name, ok)
	}
}

func TestCodeRegistryNotifiesListeners(t *testing.T) {
	r := NewCodeRegistry()
	var gotCode int
	var gotName string
	r.OnRegister(func(code int, name string) {
		gotCode, gotName = code, name
	})
	r.Register(2, "retransmit-request")
	if gotCode != 2 || gotName != "retransmit-request" {
		t.Fatalf("listener not invoked with expected args: %d %q", gotCode, gotName)
	}
}
