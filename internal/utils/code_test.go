package utils

import (
	"strings"
	"testing"
)

func TestNewCouponCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := NewCouponCode()
		if err != nil {
			t.Fatalf("NewCouponCode: %v", err)
		}
		if len(code) != CouponCodeLen {
			t.Fatalf("code %q has length %d, want %d", code, len(code), CouponCodeLen)
		}
		for _, r := range code {
			if !strings.ContainsRune(couponAlphabet, r) {
				t.Fatalf("code %q contains %q, not in alphabet", code, r)
			}
		}
		if seen[code] {
			t.Fatalf("duplicate code %q after %d draws", code, i)
		}
		seen[code] = true
	}
}

// With rejection sampling every symbol should land near the uniform
// expectation; 10000 draws over 31 symbols puts each count around 322, so
// the halved/doubled bounds are many standard deviations wide.
func TestNewCouponCodeSymbolDistribution(t *testing.T) {
	counts := make(map[rune]int)
	const draws = 1000
	for i := 0; i < draws; i++ {
		code, err := NewCouponCode()
		if err != nil {
			t.Fatalf("NewCouponCode: %v", err)
		}
		for _, r := range code {
			counts[r]++
		}
	}
	expected := draws * CouponCodeLen / len(couponAlphabet)
	for _, r := range couponAlphabet {
		if n := counts[r]; n < expected/2 || n > expected*2 {
			t.Fatalf("symbol %q drawn %d times, expected near %d", r, n, expected)
		}
	}
}

func TestCouponAlphabetExcludesAmbiguousGlyphs(t *testing.T) {
	for _, r := range "0O1IL" {
		if strings.ContainsRune(couponAlphabet, r) {
			t.Fatalf("alphabet contains ambiguous glyph %q", r)
		}
	}
}
