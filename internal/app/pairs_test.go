package app

import "testing"

func TestPairSymmetry(t *testing.T) {
	p := NewPairRegistry()
	p.Link("a", "b")

	if partner, ok := p.PartnerOf("a"); !ok || partner != "b" {
		t.Fatalf("PartnerOf(a) = %q, %v; want b", partner, ok)
	}
	if partner, ok := p.PartnerOf("b"); !ok || partner != "a" {
		t.Fatalf("PartnerOf(b) = %q, %v; want a", partner, ok)
	}
	if n := p.Count(); n != 1 {
		t.Fatalf("Count = %d; want 1", n)
	}
}

func TestUnlinkRemovesBothDirections(t *testing.T) {
	p := NewPairRegistry()
	p.Link("a", "b")

	partner, ok := p.Unlink("a")
	if !ok || partner != "b" {
		t.Fatalf("Unlink(a) = %q, %v; want b", partner, ok)
	}
	if _, ok := p.PartnerOf("b"); ok {
		t.Fatalf("b still paired after unlink of a")
	}
}

func TestUnlinkIdempotent(t *testing.T) {
	p := NewPairRegistry()
	p.Link("a", "b")
	p.Unlink("a")
	if _, ok := p.Unlink("a"); ok {
		t.Fatalf("second unlink reported a partner")
	}
	if n := p.Count(); n != 0 {
		t.Fatalf("Count = %d; want 0", n)
	}
}

func TestLinkRefusedWhenAlreadyPaired(t *testing.T) {
	p := NewPairRegistry()
	p.Link("a", "b")
	p.Link("a", "c")

	if partner, _ := p.PartnerOf("a"); partner != "b" {
		t.Fatalf("PartnerOf(a) = %q; want b", partner)
	}
	if _, ok := p.PartnerOf("c"); ok {
		t.Fatalf("c must stay unpaired")
	}
}
