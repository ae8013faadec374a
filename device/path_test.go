package device

import "testing"

func TestParsePath_RoundTrip(t *testing.T) {
	p := StellarPath(5)
	wire := AppendPath(nil, p)
	got, rest, err := ParsePath(append(wire, 0xaa, 0xbb))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != p {
		t.Fatalf("got %+v, want %+v", got, p)
	}
	if len(rest) != 2 || rest[0] != 0xaa {
		t.Fatalf("rest = %x", rest)
	}
}

func TestParsePath_Bounds(t *testing.T) {
	if _, _, err := ParsePath(nil); err == nil {
		t.Fatalf("empty data must fail")
	}
	if _, _, err := ParsePath([]byte{0}); err == nil {
		t.Fatalf("zero-length path must fail")
	}
	if _, _, err := ParsePath([]byte{11}); err == nil {
		t.Fatalf("overlong path must fail")
	}
	if _, _, err := ParsePath([]byte{2, 0, 0, 0, 1}); err == nil {
		t.Fatalf("truncated elements must fail")
	}
}

func TestPathString(t *testing.T) {
	p := StellarPath(0)
	if got := p.String(); got != "m/44'/148'/0'" {
		t.Fatalf("got %q", got)
	}
	parsed, err := ParsePathString("m/44'/148'/0'")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != p {
		t.Fatalf("got %+v, want %+v", parsed, p)
	}
	mixed, err := ParsePathString("44'/148'/2'")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if mixed != StellarPath(2) {
		t.Fatalf("got %+v", mixed)
	}
	if _, err := ParsePathString(""); err == nil {
		t.Fatalf("empty path must fail")
	}
	if _, err := ParsePathString("m/44'/x'"); err == nil {
		t.Fatalf("bad element must fail")
	}
}
