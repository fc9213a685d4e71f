package utils

import (
	"strings"
	"testing"
)

func TestNewWalkInReferenceFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref, err := NewWalkInReference()
		if err != nil {
			t.Fatalf("generate reference: %v", err)
		}
		if len(ref) != len("WI-XXXX-XXXX") || !strings.HasPrefix(ref, "WI-") || ref[7] != '-' {
			t.Fatalf("unexpected reference format %q", ref)
		}
		for _, r := range strings.ReplaceAll(ref[3:], "-", "") {
			if !strings.ContainsRune(referenceCharset, r) {
				t.Fatalf("unexpected character %q in %q", r, ref)
			}
		}
		seen[ref] = true
	}
	if len(seen) < 45 {
		t.Fatalf("expected mostly unique references, got %d distinct", len(seen))
	}
}

func TestGenerateCodeRejectsInvalidLength(t *testing.T) {
	if _, err := GenerateCode(0); err == nil {
		t.Fatal("expected error")
	}
}

func TestNormalizeReference(t *testing.T) {
	if got := NormalizeReference("  wi-ab12 -cd34 "); got != "WI-AB12-CD34" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatBaht(t *testing.T) {
	got := FormatBaht(2000)
	if !strings.HasPrefix(got, "฿") || !strings.Contains(got, "2") || strings.Contains(got, ".") {
		t.Fatalf("unexpected format %q", got)
	}
}
