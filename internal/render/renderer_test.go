package render

import (
	"strings"
	"testing"
)

func TestFormatAddr(t *testing.T) {
	if got := FormatAddr(0x1400010A0, true); got != "00000001400010A0" {
		t.Fatalf("FormatAddr = %q", got)
	}
	got := FormatAddr(0, false)
	if got != strings.Repeat(" ", 16) {
		t.Fatalf("blank cell = %q, want 16 spaces", got)
	}
	if len(FormatAddr(0xFFFFFFFFFFFFFFFF, true)) != 16 {
		t.Fatal("max address should still be 16 digits")
	}
}
