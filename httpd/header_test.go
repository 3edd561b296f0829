package httpd

import "testing"

func TestCanonicalHeaderName(t *testing.T) {
	for _, in := range []string{"content-type", "Content-Type", "CONTENT-TYPE", "cOnTeNt-TyPe"} {
		if got := CanonicalHeaderName(in); got != "Content-Type" {
			t.Fatalf("CanonicalHeaderName(%q) = %q", in, got)
		}
	}
	if got := CanonicalHeaderName("x-forwarded-for"); got != "X-Forwarded-For" {
		t.Fatalf("got %q", got)
	}
	if got := CanonicalHeaderName("host"); got != "Host" {
		t.Fatalf("got %q", got)
	}
}

func TestHeadersLastWriteWins(t *testing.T) {
	h := Headers{}
	h.Set("content-type", "a")
	h.Set("Content-Type", "b")
	h.Set("CONTENT-TYPE", "c")
	if len(h) != 1 {
		t.Fatalf("len=%d, want the three casings to collapse", len(h))
	}
	if got := h.Get("Content-Type"); got != "c" {
		t.Fatalf("Get = %q, want last value", got)
	}
	if !h.Contains("cONTENT-tYPE") {
		t.Fatal("Contains should normalize its argument")
	}
	if h.Contains("Accept") {
		t.Fatal("Contains reported a missing name")
	}
	if got := h.Get("Accept"); got != "" {
		t.Fatalf("Get missing = %q", got)
	}
}
