package symbol

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleMap = `{
	"module_base": "0x140000000",
	"files": {
		"src/main.c": {
			"3": "0x140001000",
			"7": "0x140001020"
		},
		"src/util.c": {
			"1": "0x140002000"
		}
	}
}`

func TestParseLineMap(t *testing.T) {
	lm, err := ParseLineMap([]byte(sampleMap))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if lm.ModuleBase() != 0x140000000 {
		t.Fatalf("ModuleBase() = %#x", lm.ModuleBase())
	}

	addr, ok := lm.AddrFromLine(0, "src/main.c", 3)
	if !ok || addr != 0x140001000 {
		t.Fatalf("AddrFromLine = %#x, %v", addr, ok)
	}

	if _, ok := lm.AddrFromLine(0, "src/main.c", 4); ok {
		t.Fatal("expected no address for unmapped line")
	}
	if _, ok := lm.AddrFromLine(0, "other.c", 3); ok {
		t.Fatal("expected no address for unknown file")
	}
}

func TestAddrFromLineBasenameFallback(t *testing.T) {
	lm, err := ParseLineMap([]byte(sampleMap))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	addr, ok := lm.AddrFromLine(0, "/home/me/checkout/deep/main.c", 7)
	if !ok || addr != 0x140001020 {
		t.Fatalf("basename fallback = %#x, %v", addr, ok)
	}
}

func TestRebase(t *testing.T) {
	lm, err := ParseLineMap([]byte(sampleMap))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	// Module loaded at a different address than it was dumped at.
	addr, ok := lm.AddrFromLine(0x7ff600000000, "src/main.c", 3)
	if !ok || addr != 0x7ff600001000 {
		t.Fatalf("rebased AddrFromLine = %#x, %v", addr, ok)
	}

	file, line, ok := lm.LineFromAddr(0x7ff600000000, 0x7ff600001020)
	if !ok || file != "src/main.c" || line != 7 {
		t.Fatalf("rebased LineFromAddr = %s:%d, %v", file, line, ok)
	}
}

func TestLineFromAddr(t *testing.T) {
	lm, err := ParseLineMap([]byte(sampleMap))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	file, line, ok := lm.LineFromAddr(0, 0x140002000)
	if !ok || file != "src/util.c" || line != 1 {
		t.Fatalf("LineFromAddr = %s:%d, %v", file, line, ok)
	}
	if _, _, ok := lm.LineFromAddr(0, 0xdead); ok {
		t.Fatal("expected no line for unmapped address")
	}
}

func TestLoadLineMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(path, []byte(sampleMap), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lm, err := LoadLineMap(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := lm.AddrFromLine(0, "src/util.c", 1); !ok {
		t.Fatal("expected util.c line 1 to resolve")
	}

	if _, err := LoadLineMap(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseLineMapErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"bad_json", `{`},
		{"bad_base", `{"module_base": "nope", "files": {}}`},
		{"bad_line", `{"files": {"a.c": {"x": "0x1"}}}`},
		{"zero_line", `{"files": {"a.c": {"0": "0x1"}}}`},
		{"bad_addr", `{"files": {"a.c": {"1": "zzz"}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLineMap([]byte(tc.in)); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestNoneResolver(t *testing.T) {
	var r Resolver = None{}
	if _, ok := r.AddrFromLine(0, "a.c", 1); ok {
		t.Fatal("None resolved an address")
	}
	if _, _, ok := r.LineFromAddr(0, 0x1000); ok {
		t.Fatal("None resolved a line")
	}
}
