package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user/srcview/internal/symbol"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestFileSourceRows(t *testing.T) {
	path := writeSource(t, "main.c", "int main() {\n\treturn 0;\r\n}\n")
	src, err := NewFileSource(path, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	if src.LineCount() != 3 {
		t.Fatalf("LineCount() = %d, want 3", src.LineCount())
	}

	line, err := src.GetLine(1)
	if err != nil {
		t.Fatalf("GetLine: %v", err)
	}
	if line.Number != 2 {
		t.Fatalf("Number = %d, want 2", line.Number)
	}
	if line.Text != "    return 0;" {
		t.Fatalf("Text = %q, want tab expanded", line.Text)
	}
	if line.HasAddr {
		t.Fatal("no resolver, expected HasAddr=false")
	}
}

func TestFileSourceTabWidth(t *testing.T) {
	path := writeSource(t, "a.c", "\tx\n")
	src, err := NewFileSource(path, Options{TabWidth: 8})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	line, err := src.GetLine(0)
	if err != nil {
		t.Fatalf("GetLine: %v", err)
	}
	if line.Text != "        x" {
		t.Fatalf("Text = %q, want 8-space indent", line.Text)
	}
}

func TestFileSourceAddresses(t *testing.T) {
	path := writeSource(t, "main.c", "a\nb\nc\n")
	lm, err := symbol.ParseLineMap([]byte(`{
		"module_base": "0x1000",
		"files": {"main.c": {"2": "0x1040"}}
	}`))
	if err != nil {
		t.Fatalf("parse map: %v", err)
	}

	src, err := NewFileSource(path, Options{Resolver: lm})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	line, err := src.GetLine(1)
	if err != nil {
		t.Fatalf("GetLine: %v", err)
	}
	if !line.HasAddr || line.Addr != 0x1040 {
		t.Fatalf("line 2 addr = %#x, has=%v", line.Addr, line.HasAddr)
	}

	line, err = src.GetLine(0)
	if err != nil {
		t.Fatalf("GetLine: %v", err)
	}
	if line.HasAddr {
		t.Fatal("line 1 should have no address")
	}

	got, ok := src.LineFromAddr(0x1040)
	if !ok || got != 2 {
		t.Fatalf("LineFromAddr = %d, %v", got, ok)
	}
	if _, ok := src.LineFromAddr(0x9999); ok {
		t.Fatal("expected miss for unmapped address")
	}
}

func TestFileSourceGetLines(t *testing.T) {
	path := writeSource(t, "a.txt", "1\n2\n3\n4\n5\n")
	src, err := NewFileSource(path, Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	lines, err := src.GetLines(3, 10)
	if err != nil {
		t.Fatalf("GetLines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("len = %d, want clamped to 2", len(lines))
	}
	if lines[0].Number != 4 || lines[1].Number != 5 {
		t.Fatalf("numbers = %d,%d", lines[0].Number, lines[1].Number)
	}

	if lines, _ := src.GetLines(99, 5); lines != nil {
		t.Fatal("expected nil past the end")
	}
}

func TestFileSourceMapped(t *testing.T) {
	path := writeSource(t, "m.txt", "alpha\nbeta\n")
	src, err := NewFileSource(path, Options{Mapped: true})
	if err != nil {
		t.Fatalf("open mapped: %v", err)
	}
	defer src.Close()

	if src.LineCount() != 2 {
		t.Fatalf("LineCount() = %d, want 2", src.LineCount())
	}
	line, err := src.GetLine(1)
	if err != nil || line.Text != "beta" {
		t.Fatalf("GetLine = %q, %v", line.Text, err)
	}
}

func TestFileSourceOpenFailure(t *testing.T) {
	if _, err := NewFileSource(filepath.Join(t.TempDir(), "gone.c"), Options{}); err == nil {
		t.Fatal("expected open failure")
	}
}
