package util

import "testing"

func TestCollapseText(t *testing.T) {
	in := "REGISTER NO : 9204​23104001\n\nSUB\tCODE\x00  CS101"
	want := "REGISTER NO : 920423104001 SUB CODE CS101"
	if got := CollapseText(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCollapseTextEmpty(t *testing.T) {
	if got := CollapseText("  \n\t "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
