package idgen

import "testing"

func TestCounterSequenceAndReset(t *testing.T) {
	c := New()
	if got := c.Next("field"); got != "field-1" {
		t.Fatalf("got %q", got)
	}
	if got := c.Next("error"); got != "error-2" {
		t.Fatalf("got %q", got)
	}
	c.Reset()
	if got := c.Next("field"); got != "field-1" {
		t.Fatalf("after reset got %q", got)
	}
}

func TestCountersAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.Next("x")
	a.Next("x")
	if got := b.Next("x"); got != "x-1" {
		t.Fatalf("got %q", got)
	}
}
